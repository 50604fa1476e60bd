package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/document-manager/internal/model"
)

// RoleRepo encapsulates all database queries related to roles.
type RoleRepo struct{ DB *sql.DB }

func NewRoleRepo(db *sql.DB) *RoleRepo { return &RoleRepo{DB: db} }

// Create inserts a role and populates its ID and timestamps. Titles are
// unique; duplicates surface as ErrRoleExists.
func (r *RoleRepo) Create(ctx context.Context, role *model.Role) error {
	role.Title = strings.TrimSpace(role.Title)
	now := time.Now().UTC()
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO roles (title,created_at,updated_at) VALUES (?,?,?)",
		role.Title, now, now)
	if err != nil {
		if isDuplicate(err) {
			return ErrRoleExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	role.ID = uint64(id)
	role.CreatedAt, role.UpdatedAt = now, now
	return nil
}

// GetByID fetches a role by id.
func (r *RoleRepo) GetByID(ctx context.Context, id uint64) (model.Role, error) {
	var role model.Role
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,title,created_at,updated_at FROM roles WHERE id=? LIMIT 1", id).
		Scan(&role.ID, &role.Title, &role.CreatedAt, &role.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Role{}, ErrNotFound
	}
	if err != nil {
		return model.Role{}, err
	}
	return role, nil
}

// List returns all roles ordered by id. The role table stays small, so
// no pagination is applied.
func (r *RoleRepo) List(ctx context.Context) ([]model.Role, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,title,created_at,updated_at FROM roles ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	roles := []model.Role{}
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Title, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// Update renames a role. ErrNotFound when no row matched, ErrRoleExists
// on a duplicate title.
func (r *RoleRepo) Update(ctx context.Context, role *model.Role) error {
	role.Title = strings.TrimSpace(role.Title)
	now := time.Now().UTC()
	res, err := r.DB.ExecContext(ctx,
		"UPDATE roles SET title=?,updated_at=? WHERE id=?", role.Title, now, role.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrRoleExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	role.UpdatedAt = now
	return nil
}

// Delete removes a role that no user references. The reference check is
// an explicit count so the behavior does not depend on driver foreign
// key error text.
func (r *RoleRepo) Delete(ctx context.Context, id uint64) error {
	var n int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE role_id=?", id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrRoleInUse
	}
	res, err := r.DB.ExecContext(ctx, "DELETE FROM roles WHERE id=?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
