package marketplace

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/jannysd28/technohu/internal/models"
	"github.com/jannysd28/technohu/internal/store"
)

func newTestHandler() (*Handler, *store.MemoryStore) {
	st := store.NewMemoryStore()
	return NewHandler(st), st
}

func seedUser(t *testing.T, st *store.MemoryStore, username string, role models.Role, status models.SellerStatus) models.User {
	t.Helper()
	u, err := st.CreateUser(context.Background(), models.User{
		Username: username,
		Email:    username + "@example.com",
		Name:     username,
		Role:     role,
		Status:   status,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

// newCtx builds an echo context for a handler call. actorID 0 means
// unauthenticated.
func newCtx(e *echo.Echo, method, target, body string, actorID int64) (echo.Context, *httptest.ResponseRecorder) {
	httpReq := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(httpReq, rec)
	if actorID != 0 {
		c.Set("user_id", actorID)
	}
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
