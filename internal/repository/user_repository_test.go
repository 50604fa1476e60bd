package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/iliyamo/document-manager/internal/database"
	"github.com/iliyamo/document-manager/internal/model"
)

func openDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUserRepo_CRUDAndQueries(t *testing.T) {
	db := openDB(t, "userrepo")
	repo := NewUserRepo(db)
	ctx := context.Background()

	u := model.User{Fullname: "Ada Lovelace", Username: "ada", Email: "Ada@Example.com",
		PasswordDigest: "digest", RoleID: 2}
	if err := repo.Create(ctx, &u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 || u.Email != "ada@example.com" {
		t.Fatalf("unexpected created user: %+v", u)
	}

	got, err := repo.GetByEmail(ctx, "ADA@example.com")
	if err != nil || got.ID != u.ID {
		t.Fatalf("get by email: %v %+v", err, got)
	}
	got, err = repo.GetByID(ctx, u.ID)
	if err != nil || got.Username != "ada" {
		t.Fatalf("get by id: %v %+v", err, got)
	}

	if _, err := repo.GetByID(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	got.Fullname = "Ada King"
	got.RoleID = 1
	if err := repo.Update(ctx, &got); err != nil {
		t.Fatalf("update: %v", err)
	}
	again, _ := repo.GetByID(ctx, u.ID)
	if again.Fullname != "Ada King" || again.RoleID != 1 {
		t.Fatalf("update not persisted: %+v", again)
	}

	if err := repo.Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, u.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestUserRepo_CreateDuplicateEmail(t *testing.T) {
	db := openDB(t, "userdup")
	repo := NewUserRepo(db)
	ctx := context.Background()

	a := model.User{Fullname: "A", Username: "a", Email: "dup@example.com", PasswordDigest: "x", RoleID: 2}
	if err := repo.Create(ctx, &a); err != nil {
		t.Fatalf("create: %v", err)
	}
	b := model.User{Fullname: "B", Username: "b", Email: "dup@example.com", PasswordDigest: "y", RoleID: 2}
	if err := repo.Create(ctx, &b); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestUserRepo_FindOrCreate(t *testing.T) {
	db := openDB(t, "userfoc")
	repo := NewUserRepo(db)
	ctx := context.Background()

	u := model.User{Fullname: "Grace", Username: "grace", Email: "grace@example.com",
		PasswordDigest: "d1", RoleID: 2}
	created, err := repo.FindOrCreate(ctx, &u)
	if err != nil || !created {
		t.Fatalf("first find-or-create: created=%v err=%v", created, err)
	}
	firstID := u.ID

	dup := model.User{Fullname: "Other", Username: "other", Email: "grace@example.com",
		PasswordDigest: "d2", RoleID: 2}
	created, err = repo.FindOrCreate(ctx, &dup)
	if err != nil || created {
		t.Fatalf("second find-or-create: created=%v err=%v", created, err)
	}
	if dup.ID != firstID || dup.Username != "grace" {
		t.Fatalf("expected existing record back, got %+v", dup)
	}

	users, err := repo.List(ctx, 10, 0)
	if err != nil || len(users) != 1 {
		t.Fatalf("expected a single record, got %d (err=%v)", len(users), err)
	}
}

func TestUserRepo_ListPagination(t *testing.T) {
	db := openDB(t, "userlist")
	repo := NewUserRepo(db)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		u := model.User{Fullname: "U", Username: "u", Email: string(rune('a'+i)) + "@example.com",
			PasswordDigest: "x", RoleID: 2}
		if err := repo.Create(ctx, &u); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	page, err := repo.List(ctx, 10, 0)
	if err != nil || len(page) != 10 {
		t.Fatalf("first page: len=%d err=%v", len(page), err)
	}
	rest, err := repo.List(ctx, 10, 10)
	if err != nil || len(rest) != 5 {
		t.Fatalf("second page: len=%d err=%v", len(rest), err)
	}
	if page[0].ID >= rest[0].ID {
		t.Fatalf("pages out of order: %d then %d", page[0].ID, rest[0].ID)
	}
}

func TestUserRepo_SearchByUsername(t *testing.T) {
	db := openDB(t, "usersearch")
	repo := NewUserRepo(db)
	ctx := context.Background()

	u := model.User{Fullname: "Linus", Username: "Torvalds", Email: "lt@example.com",
		PasswordDigest: "x", RoleID: 2}
	if err := repo.Create(ctx, &u); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.SearchByUsername(ctx, "torval")
	if err != nil || got == nil || got.ID != u.ID {
		t.Fatalf("case-insensitive partial match failed: %v %+v", err, got)
	}

	none, err := repo.SearchByUsername(ctx, "nobody")
	if err != nil || none != nil {
		t.Fatalf("expected nil result without error, got %v %+v", err, none)
	}
}
