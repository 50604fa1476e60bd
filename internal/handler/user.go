package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/document-manager/internal/config"
	"github.com/iliyamo/document-manager/internal/middleware"
	"github.com/iliyamo/document-manager/internal/model"
	"github.com/iliyamo/document-manager/internal/repository"
	"github.com/iliyamo/document-manager/internal/utils"
)

// UserHandler bundles dependencies for the user endpoints.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
	Docs  *repository.DocumentRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo, d *repository.DocumentRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u, Docs: d}
}

type updateUserReq struct {
	Fullname string      `json:"fullname"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	RoleID   json.Number `json:"roleId"`
}

// ListUsers handles GET /api/users (admin only, enforced by middleware).
// The page size defaults to ten; limit and offset only take effect when
// both are supplied.
func (h *UserHandler) ListUsers(c echo.Context) error {
	limit, offset := pageParams(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// FindUser handles GET /api/users/:id. A profile is only visible to its
// subject or an admin; anyone else gets 409, which existing clients
// treat as "not yours".
func (h *UserHandler) FindUser(c echo.Context) error {
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

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if u.ID != cl.UserID && cl.RoleID != model.AdminRoleID {
		return c.JSON(http.StatusConflict, echo.Map{"message": "User Unauthorised"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}

// UpdateUser handles PUT /api/users/:id. Every field is overwritten
// wholesale; there are no partial patch semantics. The caller must be
// the user themselves (matched by claim email) or an admin. A missing
// roleId keeps the requester's own role id, so a non-admin cannot
// escalate by omission.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	cl, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if !strings.EqualFold(u.Email, cl.Email) && cl.RoleID != model.AdminRoleID {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "User Unauthorised"})
	}

	digest, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "hash password failed"})
	}
	roleID := cl.RoleID
	if req.RoleID.String() != "" {
		if n, err := req.RoleID.Int64(); err == nil && n > 0 {
			roleID = uint64(n)
		}
	}

	u.Fullname = req.Fullname
	u.Username = req.Username
	u.Email = req.Email
	u.PasswordDigest = digest
	u.RoleID = roleID
	if err := h.Users.Update(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "Email already in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "update failed"})
	}

	// The email or role may have changed; hand back a token that matches.
	fresh := claimsFor(u)
	token, err := utils.IssueToken(h.Cfg.JWTSecret, fresh, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "User details Updated",
		"userData": u,
		"token":    token,
	})
}

// DeleteUser handles DELETE /api/users/:id with the same self-or-admin
// rule as update. The record is hard-deleted.
func (h *UserHandler) DeleteUser(c echo.Context) error {
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

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if !strings.EqualFold(u.Email, cl.Email) && cl.RoleID != model.AdminRoleID {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "User Unauthorised"})
	}
	if err := h.Users.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not delete user"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User successfully deleted"})
}

// SearchUsers handles GET /api/search/users?q=. The match is a
// case-insensitive substring on username. No match is a 200 with a null
// body, not a 404; only a missing query is an error.
func (h *UserHandler) SearchUsers(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Provide a query"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.SearchByUsername(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occured"})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": u})
}

// UserDocuments handles GET /api/users/:id/documents. Viewers who are
// neither the owner nor an admin only see the user's public documents.
func (h *UserHandler) UserDocuments(c echo.Context) error {
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

	if _, err := h.Users.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	docs, err := h.Docs.ListByOwner(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if cl.UserID != id && cl.RoleID != model.AdminRoleID {
		visible := []model.Document{}
		for _, d := range docs {
			if d.Access == model.AccessPublic {
				visible = append(visible, d)
			}
		}
		docs = visible
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "success", "documents": docs})
}
