package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jannysd28/technohu/internal/guard"
	"github.com/jannysd28/technohu/internal/models"
	"github.com/jannysd28/technohu/internal/store"
)

type Handler struct {
	Store store.Store
}

func NewHandler(s store.Store) *Handler {
	return &Handler{Store: s}
}

// GET /api/users/:id — any authenticated user; password never serialized.
func (h *Handler) GetUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	u, err := h.Store.GetUser(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch user"})
	}
	return c.JSON(http.StatusOK, u)
}

type UpdateUserRequest struct {
	Name          *string `json:"name"`
	Role          *string `json:"role"`
	Status        *string `json:"status"`
	StatusMessage *string `json:"status_message"`
	Avatar        *string `json:"avatar"`
	Location      *string `json:"location"`
}

// PATCH /api/users/:id — self-only profile update. Role may move among
// buyer/seller/both; admin and verified are not self-assignable.
func (h *Handler) UpdateUser(c echo.Context) error {
	uid, ok := c.Get("user_id").(int64)
	if !ok || uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx := c.Request().Context()
	actor, err := h.Store.GetUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	var upd store.UserUpdate
	upd.Name = req.Name
	upd.StatusMessage = req.StatusMessage
	upd.Avatar = req.Avatar
	upd.Location = req.Location
	if req.Role != nil {
		role, err := models.ParseRole(*req.Role)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		upd.Role = &role
	}
	if req.Status != nil {
		status, err := models.ParseSellerStatus(*req.Status)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		upd.Status = &status
	}

	if allowed, reason := guard.CanUpdateUser(actor, id, upd.Role, upd.Status); !allowed {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden", "reason": reason})
	}

	updated, err := h.Store.UpdateUser(ctx, id, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update user"})
	}
	return c.JSON(http.StatusOK, updated)
}

// GET /api/sellers?status= — public seller directory (roles seller/both).
func (h *Handler) GetSellers(c echo.Context) error {
	var filter store.SellerFilter
	if raw := c.QueryParam("status"); raw != "" {
		status, err := models.ParseSellerStatus(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		filter.Status = status
	}

	sellers, err := h.Store.ListSellers(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch sellers"})
	}
	if sellers == nil {
		sellers = []models.User{}
	}
	return c.JSON(http.StatusOK, sellers)
}
