package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/jannysd28/technohu/internal/models"
	"github.com/jannysd28/technohu/internal/store"
)

func newAuthCtx(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func register(t *testing.T, h *Handler, e *echo.Echo, body string) *httptest.ResponseRecorder {
	t.Helper()
	c, rec := newAuthCtx(e, "/api/register", body)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return rec
}

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	h := NewHandler(store.NewMemoryStore())
	e := echo.New()

	rec := register(t, h, e, `{"username":"alice","email":"alice@example.com","password":"hunter22","role":"seller","name":"Alice"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var session SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if session.Token == "" {
		t.Fatal("expected a token in the registration response")
	}
	if session.User.Role != models.RoleSeller {
		t.Fatalf("expected seller role, got %q", session.User.Role)
	}
	if session.User.Status != models.StatusActive {
		t.Fatalf("new sellers start active (unverified), got %q", session.User.Status)
	}
	if strings.Contains(rec.Body.String(), "hunter22") || strings.Contains(rec.Body.String(), "$2a$") {
		t.Fatalf("password material leaked into response: %s", rec.Body.String())
	}

	uid, role, err := ParseToken(session.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if uid != session.User.ID || role != models.RoleSeller {
		t.Fatalf("token claims mismatch: uid=%d role=%q", uid, role)
	}

	// Login by username.
	c, loginRec := newAuthCtx(e, "/api/login", `{"username":"alice","password":"hunter22"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loginRec.Code != http.StatusOK {
		t.Fatalf("login by username: expected 200, got %d: %s", loginRec.Code, loginRec.Body.String())
	}

	// Login by email in the same field.
	c, loginRec = newAuthCtx(e, "/api/login", `{"username":"alice@example.com","password":"hunter22"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loginRec.Code != http.StatusOK {
		t.Fatalf("login by email: expected 200, got %d: %s", loginRec.Code, loginRec.Body.String())
	}

	// Wrong password.
	c, loginRec = newAuthCtx(e, "/api/login", `{"username":"alice","password":"wrong"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loginRec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", loginRec.Code)
	}

	// Unknown user.
	c, loginRec = newAuthCtx(e, "/api/login", `{"username":"nobody","password":"hunter22"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loginRec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user: expected 401, got %d", loginRec.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	h := NewHandler(store.NewMemoryStore())
	e := echo.New()

	if rec := register(t, h, e, `{"username":"alice","email":"alice@example.com","password":"hunter22"}`); rec.Code != http.StatusCreated {
		t.Fatalf("seed registration failed: %d %s", rec.Code, rec.Body.String())
	}

	cases := []struct {
		name string
		body string
	}{
		{"missing username", `{"email":"x@example.com","password":"hunter22"}`},
		{"missing email", `{"username":"x","password":"hunter22"}`},
		{"email without at sign", `{"username":"x","email":"not-an-email","password":"hunter22"}`},
		{"short password", `{"username":"x","email":"x@example.com","password":"12345"}`},
		{"invalid role", `{"username":"x","email":"x@example.com","password":"hunter22","role":"superuser"}`},
		{"duplicate username", `{"username":"alice","email":"other@example.com","password":"hunter22"}`},
		{"duplicate username different case", `{"username":"ALICE","email":"other@example.com","password":"hunter22"}`},
		{"duplicate email", `{"username":"other","email":"alice@example.com","password":"hunter22"}`},
		{"duplicate email different case", `{"username":"other","email":"ALICE@EXAMPLE.COM","password":"hunter22"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := register(t, h, e, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRegisterNeverGrantsAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	h := NewHandler(store.NewMemoryStore())
	e := echo.New()

	rec := register(t, h, e, `{"username":"eve","email":"eve@example.com","password":"hunter22","role":"admin"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var session SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if session.User.Role != models.RoleBuyer {
		t.Fatalf("admin registration must downgrade to buyer, got %q", session.User.Role)
	}
}

func TestMe(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	st := store.NewMemoryStore()
	h := NewHandler(st)
	e := echo.New()

	rec := register(t, h, e, `{"username":"alice","email":"alice@example.com","password":"hunter22"}`)
	var session SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	meRec := httptest.NewRecorder()
	c := e.NewContext(req, meRec)
	c.Set("user_id", session.User.ID)
	if err := h.Me(c); err != nil {
		t.Fatalf("Me: %v", err)
	}
	if meRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", meRec.Code)
	}

	var me models.User
	if err := json.Unmarshal(meRec.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if me.ID != session.User.ID || me.Username != "alice" {
		t.Fatalf("unexpected user: %+v", me)
	}
}
