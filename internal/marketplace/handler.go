package marketplace

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/jannysd28/technohu/internal/models"
	"github.com/jannysd28/technohu/internal/store"
)

// Sentinel errors surfaced by the request lifecycle and the pitch throttle.
var (
	ErrInvalidTransition = errors.New("marketplace: invalid transition")
	ErrQuotaExceeded     = errors.New("marketplace: daily pitch quota exceeded")
)

type Handler struct {
	Store store.Store
}

func NewHandler(s store.Store) *Handler {
	return &Handler{Store: s}
}

// actor resolves the authenticated user set by the JWT middleware into a
// full store record. Entity-level checks need role and verification status,
// which the token alone does not prove fresh.
func (h *Handler) actor(c echo.Context) (models.User, bool) {
	uid, ok := c.Get("user_id").(int64)
	if !ok || uid == 0 {
		return models.User{}, false
	}
	u, err := h.Store.GetUser(c.Request().Context(), uid)
	if err != nil {
		return models.User{}, false
	}
	return u, true
}
