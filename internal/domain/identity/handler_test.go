package identity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() *Handler {
	return NewHandler(NewService(newMockUserRepo(), staticIssuer{}))
}

func postJSON(t *testing.T, handler echo.HandlerFunc, path, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, handler(c)
}

func TestRegisterHandler(t *testing.T) {
	h := newTestHandler()

	rec, err := postJSON(t, h.Register, "/api/v1/auth/register",
		`{"name":"Asha","email":"asha@example.com","password":"s3cret"}`)
	if err != nil {
		t.Fatalf("Register handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("response has no token")
	}
	if resp.User.Email != "asha@example.com" {
		t.Errorf("user email = %q", resp.User.Email)
	}
	if strings.Contains(rec.Body.String(), "s3cret") || strings.Contains(rec.Body.String(), "password") {
		t.Error("response leaks password material")
	}
}

func TestRegisterHandlerMissingFields(t *testing.T) {
	h := newTestHandler()

	_, err := postJSON(t, h.Register, "/api/v1/auth/register", `{"email":"a@b.com"}`)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestRegisterHandlerDuplicateEmail(t *testing.T) {
	h := newTestHandler()

	if _, err := postJSON(t, h.Register, "/api/v1/auth/register",
		`{"name":"A","email":"dup@example.com","password":"pw"}`); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := postJSON(t, h.Register, "/api/v1/auth/register",
		`{"name":"B","email":"dup@example.com","password":"pw"}`)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestLoginHandler(t *testing.T) {
	h := newTestHandler()
	if _, err := postJSON(t, h.Register, "/api/v1/auth/register",
		`{"name":"Asha","email":"asha@example.com","password":"s3cret"}`); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	rec, err := postJSON(t, h.Login, "/api/v1/auth/login",
		`{"email":"asha@example.com","password":"s3cret"}`)
	if err != nil {
		t.Fatalf("Login handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestLoginHandlerBadCredentials(t *testing.T) {
	h := newTestHandler()
	if _, err := postJSON(t, h.Register, "/api/v1/auth/register",
		`{"name":"Asha","email":"asha@example.com","password":"s3cret"}`); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for _, body := range []string{
		`{"email":"asha@example.com","password":"wrong"}`,
		`{"email":"nobody@example.com","password":"s3cret"}`,
	} {
		_, err := postJSON(t, h.Login, "/api/v1/auth/login", body)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Errorf("body %s: expected 401 HTTPError, got %v", body, err)
		}
	}
}
