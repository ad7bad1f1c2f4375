package database

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// Names and invite codes compare byte-for-byte: different casings are
// different values, on every backend.
func TestMigrateExactMatchColumns(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	db.SetMaxOpenConns(1)

	err = migrate(db, "")
	if err != nil {
		t.Fatal(err)
	}

	users := []struct {
		id   int64
		name string
	}{
		{1, "Ada"},
		{2, "ada"},
	}
	for _, u := range users {
		_, err = db.Exec("INSERT INTO users VALUES(?, ?, '', 'online', 1, 0, 50, X'00')", u.id, u.name)
		if err != nil {
			t.Fatalf("Inserting user %q failed: %v", u.name, err)
		}
	}

	var exists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE name = ?)", "aDa").Scan(&exists)
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("Name lookup matched a different casing")
	}

	servers := []struct {
		id   int64
		code string
	}{
		{10, "abc123"},
		{11, "ABC123"},
	}
	for _, s := range servers {
		_, err = db.Exec("INSERT INTO servers VALUES(?, 1, ?, 'Synthwave', '', 'cyan')", s.id, s.code)
		if err != nil {
			t.Fatalf("Inserting server with code %q failed: %v", s.code, err)
		}
	}

	var serverID int64
	err = db.QueryRow("SELECT id FROM servers WHERE invite_code = ?", "abc123").Scan(&serverID)
	if err != nil {
		t.Fatal(err)
	}
	if serverID != 10 {
		t.Errorf("Invite code resolved to server %d, want 10", serverID)
	}
}
