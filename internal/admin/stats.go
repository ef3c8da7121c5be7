package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jannysd28/technohu/internal/marketplace"
	"github.com/jannysd28/technohu/internal/store"
)

// GET /api/admin/stats — entity counts plus completed volume and the
// platform's commission take, all computed on read.
func (h *Handler) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.Store.ListUsers(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch stats"})
	}
	projects, err := h.Store.ListProjects(ctx, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch stats"})
	}
	requests, err := h.Store.ListRequests(ctx, store.RequestFilter{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch stats"})
	}
	pitches, err := h.Store.ListPitches(ctx, store.PitchFilter{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch stats"})
	}

	completedVolume, commission, err := marketplace.CompletedTotals(ctx, h.Store, store.RequestFilter{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch stats"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"users":                  len(users),
		"projects":               len(projects),
		"requests":               len(requests),
		"pitches":                len(pitches),
		"completed_volume_cents": completedVolume,
		"commission_cents":       commission,
	})
}
