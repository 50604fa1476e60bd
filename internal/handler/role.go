package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/document-manager/internal/config"
	"github.com/iliyamo/document-manager/internal/model"
	"github.com/iliyamo/document-manager/internal/repository"
)

// RoleHandler bundles dependencies for the role endpoints. Mutations
// are admin-only; that is enforced by middleware at route registration,
// not re-checked here.
type RoleHandler struct {
	Cfg   config.Config
	Roles *repository.RoleRepo
}

func NewRoleHandler(cfg config.Config, r *repository.RoleRepo) *RoleHandler {
	return &RoleHandler{Cfg: cfg, Roles: r}
}

type roleReq struct {
	Title string `json:"title"`
}

// CreateRole handles POST /api/roles.
func (h *RoleHandler) CreateRole(c echo.Context) error {
	var req roleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "title is required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	role := model.Role{Title: req.Title}
	if err := h.Roles.Create(ctx, &role); err != nil {
		if errors.Is(err, repository.ErrRoleExists) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "Role already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not create role"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"role": role})
}

// ListRoles handles GET /api/roles.
func (h *RoleHandler) ListRoles(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	roles, err := h.Roles.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"roles": roles})
}

// FindRole handles GET /api/roles/:id.
func (h *RoleHandler) FindRole(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	role, err := h.Roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Role does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"role": role})
}

// UpdateRole handles PUT /api/roles/:id.
func (h *RoleHandler) UpdateRole(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req roleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "title is required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	role := model.Role{ID: id, Title: req.Title}
	if err := h.Roles.Update(ctx, &role); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Role does not exist"})
		case errors.Is(err, repository.ErrRoleExists):
			return c.JSON(http.StatusConflict, echo.Map{"message": "Role already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Role updated", "role": role})
}

// DeleteRole handles DELETE /api/roles/:id. A role still assigned to
// users cannot be deleted.
func (h *RoleHandler) DeleteRole(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Roles.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoleInUse):
			return c.JSON(http.StatusConflict, echo.Map{"message": "Role is still assigned to users"})
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Role does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not delete role"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Role successfully deleted"})
}
