package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/document-manager/internal/config"
	"github.com/iliyamo/document-manager/internal/middleware"
	"github.com/iliyamo/document-manager/internal/model"
	"github.com/iliyamo/document-manager/internal/queue"
	"github.com/iliyamo/document-manager/internal/repository"
	queuepublisher "github.com/iliyamo/document-manager/internal/service"
)

// DocumentHandler bundles dependencies for the document endpoints.
type DocumentHandler struct {
	Cfg  config.Config
	Docs *repository.DocumentRepo
}

func NewDocumentHandler(cfg config.Config, d *repository.DocumentRepo) *DocumentHandler {
	return &DocumentHandler{Cfg: cfg, Docs: d}
}

type documentReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Access  string `json:"access"`
}

// validateAccess normalizes the access field. Empty means private.
func validateAccess(access string) (string, bool) {
	access = strings.ToLower(strings.TrimSpace(access))
	switch access {
	case "":
		return model.AccessPrivate, true
	case model.AccessPublic, model.AccessPrivate:
		return access, true
	}
	return "", false
}

// CreateDocument handles POST /api/documents. The owner is always the
// authenticated caller; clients cannot create documents on behalf of
// someone else.
func (h *DocumentHandler) CreateDocument(c echo.Context) error {
	cl, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req documentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "title and content are required"})
	}
	access, ok := validateAccess(req.Access)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "access must be public or private"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	d := model.Document{
		Title:   req.Title,
		Content: req.Content,
		Access:  access,
		OwnerID: cl.UserID,
	}
	if err := h.Docs.Create(ctx, &d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not create document"})
	}

	go func(ev queue.DocumentCreatedEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queuepublisher.PublishDocumentCreated(ctx, ev)
	}(queue.DocumentCreatedEvent{
		DocumentID: d.ID,
		Title:      d.Title,
		Access:     d.Access,
		OwnerID:    d.OwnerID,
		OwnerEmail: cl.Email,
		CreatedAt:  d.CreatedAt.Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{"document": d})
}

// ListDocuments handles GET /api/documents. Admins page through every
// document; everyone else sees their own plus public ones.
func (h *DocumentHandler) ListDocuments(c echo.Context) error {
	cl, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	limit, offset := pageParams(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	docs, err := h.Docs.List(ctx, cl.UserID, cl.RoleID == model.AdminRoleID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"documents": docs})
}

// FindDocument handles GET /api/documents/:id. A private document is
// only visible to its owner or an admin; the denial status mirrors the
// user profile endpoint's 409.
func (h *DocumentHandler) FindDocument(c echo.Context) error {
	cl, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	d, err := h.Docs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Document does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if d.OwnerID != cl.UserID && cl.RoleID != model.AdminRoleID && d.Access != model.AccessPublic {
		return c.JSON(http.StatusConflict, echo.Map{"message": "Document Unauthorised"})
	}
	return c.JSON(http.StatusOK, echo.Map{"document": d})
}

// UpdateDocument handles PUT /api/documents/:id. Owner-or-admin only,
// fields overwritten wholesale like the user update endpoint.
func (h *DocumentHandler) UpdateDocument(c echo.Context) error {
	cl, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req documentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "title and content are required"})
	}
	access, ok := validateAccess(req.Access)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "access must be public or private"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	d, err := h.Docs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Document does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if d.OwnerID != cl.UserID && cl.RoleID != model.AdminRoleID {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Document Unauthorised"})
	}

	d.Title = req.Title
	d.Content = req.Content
	d.Access = access
	if err := h.Docs.Update(ctx, &d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Document updated", "document": d})
}

// DeleteDocument handles DELETE /api/documents/:id, owner-or-admin only.
func (h *DocumentHandler) DeleteDocument(c echo.Context) error {
	cl, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	d, err := h.Docs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Document does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if d.OwnerID != cl.UserID && cl.RoleID != model.AdminRoleID {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Document Unauthorised"})
	}
	if err := h.Docs.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not delete document"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Document successfully deleted"})
}

// SearchDocuments handles GET /api/search/documents?q=. Non-admin
// searches only cover the requester's own documents.
func (h *DocumentHandler) SearchDocuments(c echo.Context) error {
	cl, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Provide a query"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	docs, err := h.Docs.Search(ctx, q, cl.UserID, cl.RoleID == model.AdminRoleID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occured"})
	}
	return c.JSON(http.StatusOK, echo.Map{"documents": docs})
}
