package marketplace

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jannysd28/technohu/internal/guard"
	"github.com/jannysd28/technohu/internal/models"
	"github.com/jannysd28/technohu/internal/store"
)

// DailyPitchQuota bounds outbound pitches per seller per UTC calendar day.
const DailyPitchQuota = 5

// startOfUTCDay returns UTC midnight of t's day. The quota window resets
// there; the boundary itself counts toward the new day.
func startOfUTCDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type CreatePitchRequest struct {
	BuyerID int64  `json:"buyer_id"`
	Message string `json:"message"`
}

// createPitch enforces the quota and creates the pitch. The count and the
// insert are two store operations; a race between two concurrent attempts
// at the limit is accepted at this scale.
func (h *Handler) createPitch(ctx context.Context, actor models.User, buyerID int64, message string) (models.Pitch, error) {
	count, err := h.Store.CountPitchesSince(ctx, actor.ID, startOfUTCDay(time.Now()))
	if err != nil {
		return models.Pitch{}, err
	}
	if count >= DailyPitchQuota {
		return models.Pitch{}, ErrQuotaExceeded
	}
	return h.Store.CreatePitch(ctx, models.Pitch{
		SellerID: actor.ID,
		BuyerID:  buyerID,
		Message:  message,
	})
}

// POST /api/pitches — verified sellers only, quota-checked.
func (h *Handler) CreatePitch(c echo.Context) error {
	actor, ok := h.actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if allowed, reason := guard.CanCreatePitch(actor); !allowed {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only verified sellers can send pitches", "reason": reason})
	}

	var req CreatePitchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "message is required"})
	}

	ctx := c.Request().Context()
	if _, err := h.Store.GetUser(ctx, req.BuyerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "buyer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch buyer"})
	}

	pitch, err := h.createPitch(ctx, actor, req.BuyerID, req.Message)
	if err != nil {
		if errors.Is(err, ErrQuotaExceeded) {
			return c.JSON(http.StatusForbidden, echo.Map{
				"error":  "daily pitch limit reached",
				"reason": "quota_exceeded",
				"limit":  DailyPitchQuota,
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create pitch"})
	}
	return c.JSON(http.StatusCreated, pitch)
}

// GET /api/pitches?buyerId=&sellerId= — participants and admins only.
func (h *Handler) GetPitches(c echo.Context) error {
	actor, ok := h.actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	filter, err := participantFilter(c, actor)
	if err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return c.JSON(httpErr.Code, echo.Map{"error": httpErr.Message})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	pitches, err := h.Store.ListPitches(c.Request().Context(), store.PitchFilter(filter))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch pitches"})
	}
	if pitches == nil {
		pitches = []models.Pitch{}
	}
	return c.JSON(http.StatusOK, pitches)
}
