package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/document-manager/internal/config"
	"github.com/iliyamo/document-manager/internal/repository"
	"github.com/iliyamo/document-manager/internal/testutil"
	"github.com/iliyamo/document-manager/internal/utils"
)

var testCfg = config.Config{JWTSecret: "test-secret", AccessTTLMin: 60, BcryptCost: 4}

// jsonCtx builds an echo context carrying a JSON body.
func jsonCtx(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return m
}

func TestRegister_CreatesUserAndToken(t *testing.T) {
	db := testutil.OpenTestDB(t, "reg-ok")
	h := NewAuthHandler(testCfg, repository.NewUserRepo(db))

	c, rec := jsonCtx(http.MethodPost, "/api/users",
		`{"fullname":"Ada Lovelace","username":"ada","email":"ada@example.com","password":"pw123","roleId":2}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	token, _ := body["token"].(string)
	cl, err := utils.VerifyToken(testCfg.JWTSecret, token)
	if err != nil {
		t.Fatalf("returned token invalid: %v", err)
	}
	if cl.Email != "ada@example.com" || cl.RoleID != 2 {
		t.Fatalf("token claims mismatch: %+v", cl)
	}
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	db := testutil.OpenTestDB(t, "reg-dup")
	repo := repository.NewUserRepo(db)
	h := NewAuthHandler(testCfg, repo)
	testutil.SeedUser(t, db, "Ada", "ada", "ada@example.com", "pw123", 2)

	c, rec := jsonCtx(http.MethodPost, "/api/users",
		`{"fullname":"Imposter","username":"imp","email":"ada@example.com","password":"pw456","roleId":2}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	users, err := repo.List(context.Background(), 10, 0)
	if err != nil || len(users) != 1 {
		t.Fatalf("expected a single record, got %d (err=%v)", len(users), err)
	}
}

func TestRegister_InvalidInput(t *testing.T) {
	db := testutil.OpenTestDB(t, "reg-bad")
	repo := repository.NewUserRepo(db)
	h := NewAuthHandler(testCfg, repo)

	cases := []struct {
		name string
		body string
	}{
		{"missing fullname", `{"username":"u","email":"e@x.c","password":"p","roleId":2}`},
		{"missing roleId", `{"fullname":"F","username":"u","email":"e@x.c","password":"p"}`},
		{"blank username", `{"fullname":"F","username":"  ","email":"e@x.c","password":"p","roleId":2}`},
		{"non-numeric roleId", `{"fullname":"F","username":"u","email":"e@x.c","password":"p","roleId":"abc"}`},
		{"zero roleId", `{"fullname":"F","username":"u","email":"e@x.c","password":"p","roleId":0}`},
	}
	for _, tc := range cases {
		c, rec := jsonCtx(http.MethodPost, "/api/users", tc.body)
		if err := h.Register(c); err != nil {
			t.Fatalf("%s: register: %v", tc.name, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.name, rec.Code)
		}
	}
	users, err := repo.List(context.Background(), 10, 0)
	if err != nil || len(users) != 0 {
		t.Fatalf("no record should exist, got %d (err=%v)", len(users), err)
	}
}

func TestLogin_Success(t *testing.T) {
	db := testutil.OpenTestDB(t, "login-ok")
	h := NewAuthHandler(testCfg, repository.NewUserRepo(db))
	u := testutil.SeedUser(t, db, "Ada", "ada", "ada@example.com", "pw123", 2)

	c, rec := jsonCtx(http.MethodPost, "/api/users/login",
		`{"email":"ada@example.com","password":"pw123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	cl, err := utils.VerifyToken(testCfg.JWTSecret, body["jwt"].(string))
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if cl.UserID != u.ID || cl.Email != u.Email || cl.RoleID != u.RoleID {
		t.Fatalf("claims mismatch: %+v vs %+v", cl, u)
	}
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	db := testutil.OpenTestDB(t, "login-bad")
	h := NewAuthHandler(testCfg, repository.NewUserRepo(db))
	testutil.SeedUser(t, db, "Ada", "ada", "ada@example.com", "pw123", 2)

	var bodies []string
	for _, payload := range []string{
		`{"email":"ada@example.com","password":"wrong"}`,
		`{"email":"ghost@example.com","password":"pw123"}`,
	} {
		c, rec := jsonCtx(http.MethodPost, "/api/users/login", payload)
		if err := h.Login(c); err != nil {
			t.Fatalf("login: %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		bodies = append(bodies, rec.Body.String())
	}
	if bodies[0] != bodies[1] {
		t.Fatalf("wrong-password and unknown-email responses differ: %q vs %q", bodies[0], bodies[1])
	}
}

func TestLogout_AlwaysSucceeds(t *testing.T) {
	db := testutil.OpenTestDB(t, "logout")
	h := NewAuthHandler(testCfg, repository.NewUserRepo(db))

	c, rec := jsonCtx(http.MethodPost, "/api/users/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
