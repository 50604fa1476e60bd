package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/document-manager/internal/config"
	"github.com/iliyamo/document-manager/internal/model"
	"github.com/iliyamo/document-manager/internal/queue"
	"github.com/iliyamo/document-manager/internal/repository"
	queuepublisher "github.com/iliyamo/document-manager/internal/service"
	"github.com/iliyamo/document-manager/internal/utils"
)

// AuthHandler bundles dependencies for login, logout and registration.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerReq struct {
	Fullname string      `json:"fullname"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	RoleID   json.Number `json:"roleId"` // Number distinguishes absent from zero
}

// claimsPart is the userData shape clients receive alongside a token.
type claimsPart struct {
	UserID   uint64 `json:"userId"`
	Email    string `json:"email"`
	RoleID   uint64 `json:"roleId"`
	Fullname string `json:"fullname"`
}

func claimsFor(u model.User) utils.Claims {
	return utils.Claims{UserID: u.ID, Email: u.Email, RoleID: u.RoleID, Fullname: u.Fullname}
}

func partFor(cl utils.Claims) claimsPart {
	return claimsPart{UserID: cl.UserID, Email: cl.Email, RoleID: cl.RoleID, Fullname: cl.Fullname}
}

// Login verifies credentials and returns a signed token. A missing user
// and a wrong password produce the same 401 body so a caller cannot
// tell which emails are registered.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Login failed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordDigest, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Login failed"})
	}

	cl := claimsFor(u)
	token, err := utils.IssueToken(h.Cfg.JWTSecret, cl, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "success",
		"jwt":      token,
		"userData": partFor(cl),
	})
}

// Logout acknowledges the client discarding its token. Tokens are
// self-contained and there is no server-side revocation list, so this
// is a stateless 200.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Logout successful"})
}

// Register validates the submitted fields and performs a find-or-create
// keyed on email. An already registered email answers 409 without
// creating a duplicate or issuing a token.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.Fullname == "" || req.Username == "" || req.Password == "" ||
		req.Email == "" || req.RoleID.String() == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Incomplete details"})
	}
	roleID, err := req.RoleID.Int64()
	if err != nil || roleID <= 0 ||
		strings.TrimSpace(req.Fullname) == "" || strings.TrimSpace(req.Username) == "" ||
		strings.TrimSpace(req.Password) == "" || strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid details"})
	}

	digest, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "hash password failed"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u := model.User{
		Fullname:       req.Fullname,
		Username:       req.Username,
		Email:          req.Email,
		PasswordDigest: digest,
		RoleID:         uint64(roleID),
	}
	created, err := h.Users.FindOrCreate(ctx, &u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "create user failed"})
	}
	if !created {
		return c.JSON(http.StatusConflict, echo.Map{"message": "User already exists"})
	}

	cl := claimsFor(u)
	token, err := utils.IssueToken(h.Cfg.JWTSecret, cl, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "issue token failed"})
	}

	// Audit trail is best-effort; a broker outage never fails the request.
	go func(ev queue.UserRegisteredEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queuepublisher.PublishUserRegistered(ctx, ev)
	}(queue.UserRegisteredEvent{
		UserID:    u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Fullname:  u.Fullname,
		RoleID:    u.RoleID,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{"userData": u, "token": token})
}
