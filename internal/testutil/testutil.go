// Package testutil provides shared fixtures for the test suites: an
// in-memory SQLite database with the application schema applied, and a
// token helper for exercising authenticated endpoints.
package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/iliyamo/document-manager/internal/database"
	"github.com/iliyamo/document-manager/internal/model"
	"github.com/iliyamo/document-manager/internal/repository"
	"github.com/iliyamo/document-manager/internal/utils"
)

// OpenTestDB opens an in-memory SQLite database with the schema applied.
// The shared cache keeps the database alive across the pool's
// connections. Closed automatically via t.Cleanup.
func OpenTestDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Token signs an identity token for the given claims with a one hour
// TTL, failing the test on error.
func Token(t *testing.T, secret string, cl utils.Claims) string {
	t.Helper()
	s, err := utils.IssueToken(secret, cl, 60)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// SeedUser inserts a user with a hashed password and returns the stored
// record.
func SeedUser(t *testing.T, db *sql.DB, fullname, username, email, password string, roleID uint64) model.User {
	t.Helper()
	digest, err := utils.HashPassword(password, 4) // low cost keeps tests fast
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := model.User{
		Fullname:       fullname,
		Username:       username,
		Email:          email,
		PasswordDigest: digest,
		RoleID:         roleID,
	}
	if err := repository.NewUserRepo(db).Create(context.Background(), &u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedDocument inserts a document for the given owner.
func SeedDocument(t *testing.T, db *sql.DB, title, content, access string, ownerID uint64) model.Document {
	t.Helper()
	d := model.Document{Title: title, Content: content, Access: access, OwnerID: ownerID}
	if err := repository.NewDocumentRepo(db).Create(context.Background(), &d); err != nil {
		t.Fatalf("seed document: %v", err)
	}
	return d
}
