package database

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// schema is the SQLite rendition of the document-manager tables. It is
// applied on every OpenSQLite call; the statements are idempotent. The
// two seed roles give local databases the admin sentinel (role id 1)
// without an external migration step. MySQL deployments manage their
// schema outside the process.
//
// Timestamps are written by the repositories, not by column defaults, so
// the same queries behave identically on both drivers.
const schema = `
CREATE TABLE IF NOT EXISTS roles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL UNIQUE,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	fullname TEXT NOT NULL,
	username TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_digest TEXT NOT NULL,
	role_id INTEGER NOT NULL REFERENCES roles(id),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS documents (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	access TEXT NOT NULL DEFAULT 'private',
	owner_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
INSERT OR IGNORE INTO roles (id, title, created_at, updated_at)
	VALUES (1, 'admin', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
INSERT OR IGNORE INTO roles (id, title, created_at, updated_at)
	VALUES (2, 'user', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
`

// OpenSQLite opens (or creates) a local SQLite database and applies the
// schema. It serves local development and the test suite; production
// runs against MySQL via Open.
func OpenSQLite(path string) (*sql.DB, error) {
	if path == "" {
		path = "docmanager.db"
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	// journal_mode may not be supported in-memory. Ignore errors.
	_, _ = db.Exec(`PRAGMA journal_mode=WAL`)
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
