package marketplace

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jannysd28/technohu/internal/models"
	"github.com/jannysd28/technohu/internal/store"
)

type CreateRatingRequest struct {
	SellerID  int64  `json:"seller_id"`
	ProjectID int64  `json:"project_id"`
	RequestID int64  `json:"request_id"`
	Rating    int    `json:"rating"`
	Review    string `json:"review"`
}

// POST /api/ratings — a buyer reviews a seller, optionally against a
// project or a completed request.
func (h *Handler) CreateRating(c echo.Context) error {
	actor, ok := h.actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req CreateRatingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}
	if req.SellerID == actor.ID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "you cannot rate yourself"})
	}

	ctx := c.Request().Context()
	if _, err := h.Store.GetUser(ctx, req.SellerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seller not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch seller"})
	}

	rating, err := h.Store.CreateRating(ctx, models.Rating{
		BuyerID:   actor.ID,
		SellerID:  req.SellerID,
		ProjectID: req.ProjectID,
		RequestID: req.RequestID,
		Rating:    req.Rating,
		Review:    req.Review,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create rating"})
	}
	return c.JSON(http.StatusCreated, rating)
}

// GET /api/ratings/:sellerId — public.
func (h *Handler) GetSellerRatings(c echo.Context) error {
	sellerID, err := strconv.ParseInt(c.Param("sellerId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seller id"})
	}

	ratings, err := h.Store.ListRatingsBySeller(c.Request().Context(), sellerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch ratings"})
	}
	if ratings == nil {
		ratings = []models.Rating{}
	}
	return c.JSON(http.StatusOK, ratings)
}
