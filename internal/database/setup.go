package database

import (
	"chatverse-backend/internal/models"
	"database/sql"
	"fmt"
)

// mysql defaults to a case-insensitive collation under utf8mb4, which would
// make "Ada" and "ada" the same user and soften invite code matching. Names
// and invite codes must compare byte-for-byte on both backends, matching
// sqlite's BINARY default.
const mysqlBinaryCollation = "COLLATE utf8mb4_bin"

func setPragmaValues(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return err
	}

	// these next 2 extremely speed up performance of sqlite
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return err
	}

	if _, err := db.Exec("PRAGMA synchronous = normal"); err != nil {
		return err
	}

	return nil
}

func Setup(cfg *models.ConfigFile) (*sql.DB, error) {
	if cfg.SelfContained {
		fmt.Println("Connecting to database sqlite...")
	} else {
		fmt.Println("Connecting to database mysql/mariadb...")
	}

	var db *sql.DB
	var err error
	var collation string

	if cfg.SelfContained {
		db, err = sql.Open("sqlite", "./database.db")
		if err != nil {
			return db, err
		}

		// there can be sqlite busy errors if this is not set to 1
		db.SetMaxOpenConns(1)

		err = setPragmaValues(db)
		if err != nil {
			return db, err
		}
	} else {
		db, err = sql.Open("mysql", fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&timeout=10s", cfg.DbUser, cfg.DbPassword, cfg.DbAddress, cfg.DbPort, cfg.DbDatabase))
		if err != nil {
			return db, err
		}

		db.SetMaxOpenConns(10)
		collation = mysqlBinaryCollation
	}

	err = migrate(db, collation)
	if err != nil {
		return db, err
	}

	return db, nil
}

// Migrate creates missing tables. Store tests call it against in-memory
// sqlite databases.
func Migrate(db *sql.DB) error {
	return migrate(db, "")
}

// migrate takes the collation clause for exact-match string columns, empty
// on sqlite where the name would not resolve and BINARY is already the
// default.
func migrate(db *sql.DB, collation string) error {
	var err error

	_, err = db.Exec(fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS users (
				id BIGINT PRIMARY KEY,
				name VARCHAR(32) %s NOT NULL UNIQUE,
				avatar_url TEXT NOT NULL,
				status VARCHAR(16) NOT NULL,
				level BIGINT NOT NULL,
				xp BIGINT NOT NULL,
				xp_to_next_level BIGINT NOT NULL,
				password BINARY(60) NOT NULL
			);
		`, collation))
	if err != nil {
		return err
	}

	_, err = db.Exec(fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS servers (
				id BIGINT PRIMARY KEY,
				owner_id BIGINT NOT NULL,
				invite_code VARCHAR(8) %s NOT NULL UNIQUE,
				name VARCHAR(64) NOT NULL,
				image_url TEXT NOT NULL,
				theme VARCHAR(16) NOT NULL,
				FOREIGN KEY (owner_id) REFERENCES users(id) ON DELETE CASCADE
			);
		`, collation))
	if err != nil {
		return err
	}

	_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS server_members (
				server_id BIGINT NOT NULL,
				user_id BIGINT NOT NULL,
				since TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				PRIMARY KEY (server_id, user_id),
				FOREIGN KEY (server_id) REFERENCES servers(id) ON DELETE CASCADE,
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			);
		`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS roles (
				id BIGINT PRIMARY KEY,
				server_id BIGINT NOT NULL,
				name VARCHAR(32) NOT NULL,
				color VARCHAR(32) NOT NULL,
				icon VARCHAR(16) NOT NULL,
				tag VARCHAR(16) NOT NULL,
				permissions TEXT NOT NULL,
				FOREIGN KEY (server_id) REFERENCES servers(id) ON DELETE CASCADE
			);
		`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS member_roles (
				server_id BIGINT NOT NULL,
				user_id BIGINT NOT NULL,
				role_id BIGINT NOT NULL,
				PRIMARY KEY (server_id, user_id, role_id),
				FOREIGN KEY (server_id, user_id) REFERENCES server_members(server_id, user_id) ON DELETE CASCADE,
				FOREIGN KEY (role_id) REFERENCES roles(id) ON DELETE CASCADE
			);
		`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS channels (
				id BIGINT PRIMARY KEY,
				server_id BIGINT NOT NULL,
				name VARCHAR(32) NOT NULL,
				FOREIGN KEY (server_id) REFERENCES servers(id) ON DELETE CASCADE
			);
		`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS messages (
				id BIGINT PRIMARY KEY,
				channel_id BIGINT NOT NULL,
				user_id BIGINT NOT NULL,
				content TEXT NOT NULL,
				FOREIGN KEY (channel_id) REFERENCES channels(id) ON DELETE CASCADE,
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			);
		`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS xp_events (
				id BIGINT PRIMARY KEY,
				user_id BIGINT NOT NULL,
				reason VARCHAR(64) NOT NULL,
				amount BIGINT NOT NULL,
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			);
		`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS user_badges (
				user_id BIGINT NOT NULL,
				badge_id VARCHAR(32) NOT NULL,
				PRIMARY KEY (user_id, badge_id),
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			);
		`)
	if err != nil {
		return err
	}

	return nil
}
