// Package testdb provides an in-memory IMDb store for tests.
//
// The schema mirrors the names/titles/roles tables the service reads in
// production. Queries run for real against SQLite, so parameter binding,
// joins and NULL handling are exercised end to end.
//
//	db := testdb.New(t)
//	testdb.AddPerson(t, db, "nm1", "Tom Hardy", 1977)
package testdb

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

var counter atomic.Int64

// New opens a fresh in-memory database with the IMDb schema applied. The
// pool is capped at one connection so every statement sees the same data.
func New(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		db.Close()
	})

	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("apply schema: %v", err)
		}
	}
	return db
}

func nextID(prefix string) string {
	return fmt.Sprintf("%s%07d", prefix, counter.Add(1))
}

// AddPerson inserts a names row and returns its ID. yearBorn may be nil.
func AddPerson(t *testing.T, db *sql.DB, name string, yearBorn any) string {
	t.Helper()
	id := nextID("nm")
	if _, err := db.Exec(`INSERT INTO names (name_id, name, yearBorn) VALUES (?, ?, ?)`, id, name, yearBorn); err != nil {
		t.Fatalf("insert person %q: %v", name, err)
	}
	return id
}

// AddTitle inserts a titles row and returns its ID.
func AddTitle(t *testing.T, db *sql.DB, title string, year int, genre string) string {
	t.Helper()
	id := nextID("tt")
	if _, err := db.Exec(`INSERT INTO titles (title_id, title, year, genre) VALUES (?, ?, ?, ?)`, id, title, year, genre); err != nil {
		t.Fatalf("insert title %q: %v", title, err)
	}
	return id
}

// AddRole links a person to a title. characters may be nil for a NULL column.
func AddRole(t *testing.T, db *sql.DB, titleID, nameID, category string, characters any) {
	t.Helper()
	if _, err := db.Exec(`INSERT INTO roles (title_id, name_id, category, characters) VALUES (?, ?, ?, ?)`,
		titleID, nameID, category, characters); err != nil {
		t.Fatalf("insert role %s/%s: %v", titleID, nameID, err)
	}
}
