package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/document-manager/internal/model"
)

const userColumns = "id,fullname,username,email,password_digest,role_id,created_at,updated_at"

// UserRepo encapsulates all database queries related to users. It holds
// a *sql.DB so both the MySQL and SQLite drivers can back it.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and populates its ID and timestamps. The
// PasswordDigest field must already be hashed by the caller.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	now := time.Now().UTC()
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (fullname,username,email,password_digest,role_id,created_at,updated_at) VALUES (?,?,?,?,?,?,?)",
		u.Fullname, u.Username, u.Email, u.PasswordDigest, u.RoleID, now, now)
	if err != nil {
		if isDuplicate(err) {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	u.CreatedAt, u.UpdatedAt = now, now
	return nil
}

// FindOrCreate returns the existing user with u's email, or inserts u
// when no such user exists. The boolean reports whether a row was
// created. On the find path u is overwritten with the stored record.
func (r *UserRepo) FindOrCreate(ctx context.Context, u *model.User) (bool, error) {
	existing, err := r.GetByEmail(ctx, u.Email)
	if err == nil {
		*u = existing
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, err
	}
	if err := r.Create(ctx, u); err != nil {
		// Lost a race with a concurrent insert: surface the existing row.
		if errors.Is(err, ErrEmailExists) {
			if existing, gerr := r.GetByEmail(ctx, u.Email); gerr == nil {
				*u = existing
				return false, nil
			}
		}
		return false, err
	}
	return true, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// List returns a page of users ordered by id.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update overwrites every mutable column of the user row. Partial
// updates are not supported; callers send the full record.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	now := time.Now().UTC()
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET fullname=?,username=?,email=?,password_digest=?,role_id=?,updated_at=? WHERE id=?",
		u.Fullname, u.Username, u.Email, u.PasswordDigest, u.RoleID, now, u.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrEmailExists
		}
		return err
	}
	u.UpdatedAt = now
	return nil
}

// Delete hard-deletes a user row. ErrNotFound when no row matched.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchByUsername returns the first user whose username contains q,
// compared case-insensitively. A nil user with a nil error means no
// match; the handler serializes that as a null result rather than 404.
func (r *UserRepo) SearchByUsername(ctx context.Context, q string) (*model.User, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	u, err := r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE LOWER(username) LIKE ? ORDER BY id LIMIT 1", pattern))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanUser(row rowScanner, u *model.User) error {
	return row.Scan(&u.ID, &u.Fullname, &u.Username, &u.Email,
		&u.PasswordDigest, &u.RoleID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var u model.User
	if err := scanUser(row, &u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, err
	}
	return u, nil
}
