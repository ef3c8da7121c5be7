package marketplace

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jannysd28/technohu/internal/models"
	"github.com/jannysd28/technohu/internal/store"
)

// CommissionRatePercent is the fixed platform fee on completed requests.
const CommissionRatePercent = 10

// CommissionCents is the single commission formula; every place that
// reports earnings or spend goes through it.
func CommissionCents(priceCents int64) int64 {
	return priceCents * CommissionRatePercent / 100
}

// CompletedTotals sums priceCents over completed requests matched by the
// filter. Computed on read, never stored.
func CompletedTotals(ctx context.Context, s store.Store, f store.RequestFilter) (total int64, commission int64, err error) {
	requests, err := s.ListRequests(ctx, f)
	if err != nil {
		return 0, 0, err
	}
	for _, r := range requests {
		if r.Status == models.RequestCompleted {
			total += r.PriceCents
			commission += CommissionCents(r.PriceCents)
		}
	}
	return total, commission, nil
}

// GET /api/sellers/:id/earnings — the seller themselves or an admin.
func (h *Handler) GetSellerEarnings(c echo.Context) error {
	return h.completedTotals(c, "seller")
}

// GET /api/buyers/:id/spending — the buyer themselves or an admin.
func (h *Handler) GetBuyerSpending(c echo.Context) error {
	return h.completedTotals(c, "buyer")
}

func (h *Handler) completedTotals(c echo.Context, side string) error {
	actor, ok := h.actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if actor.ID != id && actor.Role != models.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	ctx := c.Request().Context()
	if _, err := h.Store.GetUser(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch user"})
	}

	var f store.RequestFilter
	if side == "seller" {
		f.SellerID = id
	} else {
		f.BuyerID = id
	}
	total, commission, err := CompletedTotals(ctx, h.Store, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not compute totals"})
	}

	if side == "seller" {
		return c.JSON(http.StatusOK, echo.Map{
			"seller_id":          id,
			"total_earned_cents": total,
			"commission_cents":   commission,
			"net_cents":          total - commission,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"buyer_id":          id,
		"total_spent_cents": total,
	})
}
