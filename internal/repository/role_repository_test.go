package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/document-manager/internal/model"
)

func TestRoleRepo_SeededRoles(t *testing.T) {
	db := openDB(t, "roleseed")
	repo := NewRoleRepo(db)
	ctx := context.Background()

	admin, err := repo.GetByID(ctx, 1)
	if err != nil || admin.Title != "admin" {
		t.Fatalf("admin seed: %v %+v", err, admin)
	}
	roles, err := repo.List(ctx)
	if err != nil || len(roles) != 2 {
		t.Fatalf("seeded roles: len=%d err=%v", len(roles), err)
	}
}

func TestRoleRepo_CreateUpdateDelete(t *testing.T) {
	db := openDB(t, "rolecrud")
	repo := NewRoleRepo(db)
	ctx := context.Background()

	r := model.Role{Title: "editor"}
	if err := repo.Create(ctx, &r); err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.ID == 0 {
		t.Fatalf("id not populated: %+v", r)
	}

	dup := model.Role{Title: "editor"}
	if err := repo.Create(ctx, &dup); !errors.Is(err, ErrRoleExists) {
		t.Fatalf("expected ErrRoleExists, got %v", err)
	}

	r.Title = "reviewer"
	if err := repo.Update(ctx, &r); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := repo.GetByID(ctx, r.ID)
	if got.Title != "reviewer" {
		t.Fatalf("update not persisted: %+v", got)
	}

	missing := model.Role{ID: 9999, Title: "ghost"}
	if err := repo.Update(ctx, &missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := repo.Delete(ctx, r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, r.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected role gone, got %v", err)
	}
}

func TestRoleRepo_DeleteInUse(t *testing.T) {
	db := openDB(t, "roleinuse")
	repo := NewRoleRepo(db)
	ctx := context.Background()

	u := model.User{Fullname: "U", Username: "u", Email: "u@example.com",
		PasswordDigest: "x", RoleID: 2}
	if err := NewUserRepo(db).Create(ctx, &u); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if err := repo.Delete(ctx, 2); !errors.Is(err, ErrRoleInUse) {
		t.Fatalf("expected ErrRoleInUse, got %v", err)
	}
	// Still present afterwards.
	if _, err := repo.GetByID(ctx, 2); err != nil {
		t.Fatalf("role should remain: %v", err)
	}
}
