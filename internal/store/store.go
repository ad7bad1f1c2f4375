// Package store owns the authoritative user/server collections. Every
// mutation that touches more than one row runs inside a single transaction,
// so membership can never be half-written the way independently flushed
// collections could be.
package store

import (
	"database/sql"
	"errors"
)

var (
	ErrUsernameTaken = errors.New("username_taken")
	ErrUnknownInvite = errors.New("invalid_invite")
	ErrAlreadyMember = errors.New("already_member")
	ErrNotMember     = errors.New("not_member")
	ErrUnknownTheme  = errors.New("unknown_theme")
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// inTx runs fn inside a transaction, rolling back on error.
func (s *Store) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	err = fn(tx)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}

	return tx.Commit()
}
