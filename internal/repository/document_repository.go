package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/document-manager/internal/model"
)

const documentColumns = "id,title,content,access,owner_id,created_at,updated_at"

// DocumentRepo encapsulates all database queries related to documents.
type DocumentRepo struct{ DB *sql.DB }

func NewDocumentRepo(db *sql.DB) *DocumentRepo { return &DocumentRepo{DB: db} }

// Create inserts a document and populates its ID and timestamps.
// An empty access level defaults to private.
func (r *DocumentRepo) Create(ctx context.Context, d *model.Document) error {
	if d.Access == "" {
		d.Access = model.AccessPrivate
	}
	now := time.Now().UTC()
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO documents (title,content,access,owner_id,created_at,updated_at) VALUES (?,?,?,?,?,?)",
		d.Title, d.Content, d.Access, d.OwnerID, now, now)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	d.CreatedAt, d.UpdatedAt = now, now
	return nil
}

// GetByID fetches a document by id.
func (r *DocumentRepo) GetByID(ctx context.Context, id uint64) (model.Document, error) {
	return scanDocRow(r.DB.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE id=? LIMIT 1", id))
}

// List returns a page of documents visible to the viewer: admins see
// everything, other users see their own documents plus public ones.
func (r *DocumentRepo) List(ctx context.Context, viewerID uint64, admin bool, limit, offset int) ([]model.Document, error) {
	query := "SELECT " + documentColumns + " FROM documents"
	args := []any{}
	if !admin {
		query += " WHERE owner_id=? OR access=?"
		args = append(args, viewerID, model.AccessPublic)
	}
	query += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, limit, offset)
	return r.queryDocs(ctx, query, args...)
}

// ListByOwner returns every document owned by the given user.
func (r *DocumentRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Document, error) {
	return r.queryDocs(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE owner_id=? ORDER BY id", ownerID)
}

// Search returns documents whose title contains q, compared
// case-insensitively. Non-admin searches are scoped to the requester's
// own documents.
func (r *DocumentRepo) Search(ctx context.Context, q string, viewerID uint64, admin bool) ([]model.Document, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	query := "SELECT " + documentColumns + " FROM documents WHERE LOWER(title) LIKE ?"
	args := []any{pattern}
	if !admin {
		query += " AND owner_id=?"
		args = append(args, viewerID)
	}
	query += " ORDER BY id"
	return r.queryDocs(ctx, query, args...)
}

// Update overwrites every mutable column of the document row.
func (r *DocumentRepo) Update(ctx context.Context, d *model.Document) error {
	if d.Access == "" {
		d.Access = model.AccessPrivate
	}
	now := time.Now().UTC()
	_, err := r.DB.ExecContext(ctx,
		"UPDATE documents SET title=?,content=?,access=?,updated_at=? WHERE id=?",
		d.Title, d.Content, d.Access, now, d.ID)
	if err != nil {
		return err
	}
	d.UpdatedAt = now
	return nil
}

// Delete hard-deletes a document row. ErrNotFound when no row matched.
func (r *DocumentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM documents WHERE id=?", id)
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

func (r *DocumentRepo) queryDocs(ctx context.Context, query string, args ...any) ([]model.Document, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	docs := []model.Document{}
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.Title, &d.Content, &d.Access, &d.OwnerID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func scanDocRow(row *sql.Row) (model.Document, error) {
	var d model.Document
	err := row.Scan(&d.ID, &d.Title, &d.Content, &d.Access, &d.OwnerID, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Document{}, ErrNotFound
	}
	if err != nil {
		return model.Document{}, err
	}
	return d, nil
}
