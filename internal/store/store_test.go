package store_test

import (
	"chatverse-backend/internal/database"
	"chatverse-backend/internal/models"
	"chatverse-backend/internal/snowflake"
	"chatverse-backend/internal/store"
	"database/sql"
	"sync"
	"testing"

	_ "modernc.org/sqlite"
)

var snowflakeOnce sync.Once

func testStore(t *testing.T) (*store.Store, *sql.DB) {
	t.Helper()

	snowflakeOnce.Do(func() {
		err := snowflake.Setup(0)
		if err != nil {
			t.Fatal(err)
		}
	})

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	db.SetMaxOpenConns(1)

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		t.Fatal(err)
	}

	err = database.Migrate(db)
	if err != nil {
		t.Fatal(err)
	}

	return store.New(db), db
}

func mustCreateUser(t *testing.T, s *store.Store, name string) models.User {
	t.Helper()

	user, err := s.CreateUser(name, []byte("hash"))
	if err != nil {
		t.Fatalf("CreateUser(%q) failed: %v", name, err)
	}
	return user
}

func mustCreateServer(t *testing.T, s *store.Store, ownerID int64, name string) models.Server {
	t.Helper()

	server, err := s.CreateServer(ownerID, name)
	if err != nil {
		t.Fatalf("CreateServer(%q) failed: %v", name, err)
	}
	return server
}
