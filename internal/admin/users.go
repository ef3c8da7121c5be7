package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jannysd28/technohu/internal/guard"
	"github.com/jannysd28/technohu/internal/models"
	"github.com/jannysd28/technohu/internal/store"
)

// Handlers here sit behind JWTMiddleware + AdminGuard; the session role
// check is the whole authentication story (no secondary password check).
type Handler struct {
	Store store.Store
}

func NewHandler(s store.Store) *Handler {
	return &Handler{Store: s}
}

// GET /api/admin/users
func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.Store.ListUsers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch users"})
	}
	if users == nil {
		users = []models.User{}
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// PATCH /api/admin/users/:userId/verify — mark a seller as verified.
func (h *Handler) VerifySeller(c echo.Context) error {
	uid, ok := c.Get("user_id").(int64)
	if !ok || uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	targetID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx := c.Request().Context()
	actor, err := h.Store.GetUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	target, err := h.Store.GetUser(ctx, targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch user"})
	}

	if allowed, reason := guard.CanVerifySeller(actor, target); !allowed {
		if reason == guard.ReasonNotSeller {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "only sellers can be verified"})
		}
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden", "reason": reason})
	}

	status := models.StatusVerified
	updated, err := h.Store.UpdateUser(ctx, targetID, store.UserUpdate{Status: &status})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify user"})
	}
	return c.JSON(http.StatusOK, updated)
}
