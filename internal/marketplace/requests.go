package marketplace

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jannysd28/technohu/internal/guard"
	"github.com/jannysd28/technohu/internal/models"
	"github.com/jannysd28/technohu/internal/store"
)

type CreateRequestRequest struct {
	SellerID    int64  `json:"seller_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
}

// POST /api/requests — any authenticated user may commission a seller.
func (h *Handler) CreateRequest(c echo.Context) error {
	actor, ok := h.actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req CreateRequestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if req.PriceCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be positive"})
	}
	if req.SellerID == actor.ID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "you cannot send a request to yourself"})
	}

	ctx := c.Request().Context()
	if _, err := h.Store.GetUser(ctx, req.SellerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seller not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch seller"})
	}

	request, err := h.Store.CreateRequest(ctx, models.Request{
		BuyerID:     actor.ID,
		SellerID:    req.SellerID,
		Title:       req.Title,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Status:      models.RequestPending,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create request"})
	}
	return c.JSON(http.StatusCreated, request)
}

// GET /api/requests?buyerId=&sellerId= — participants and admins only.
func (h *Handler) GetRequests(c echo.Context) error {
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

	requests, err := h.Store.ListRequests(c.Request().Context(), store.RequestFilter(filter))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch requests"})
	}
	if requests == nil {
		requests = []models.Request{}
	}
	return c.JSON(http.StatusOK, requests)
}

// participantFilter parses buyerId/sellerId query params and enforces that
// non-admins only ever scope queries to themselves. With neither param set,
// non-admins see requests where they are a party on either side.
type partyFilter struct {
	BuyerID  int64
	SellerID int64
}

func participantFilter(c echo.Context, actor models.User) (partyFilter, error) {
	var f partyFilter
	if raw := c.QueryParam("buyerId"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid buyerId")
		}
		f.BuyerID = v
	}
	if raw := c.QueryParam("sellerId"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid sellerId")
		}
		f.SellerID = v
	}

	if actor.Role == models.RoleAdmin {
		return f, nil
	}
	if f.BuyerID != 0 && f.BuyerID != actor.ID {
		return f, echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if f.SellerID != 0 && f.SellerID != actor.ID {
		return f, echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if f.BuyerID == 0 && f.SellerID == 0 {
		// Default to the actor's own side of the marketplace.
		if actor.Role.CanSell() {
			f.SellerID = actor.ID
		} else {
			f.BuyerID = actor.ID
		}
	}
	return f, nil
}

// transition runs one lifecycle step under the guard. The request is
// re-read and checked before the single status write, and nothing is
// written when the guard denies, so a failed attempt leaves state intact.
func (h *Handler) transition(ctx context.Context, actor models.User, requestID int64, next models.RequestStatus) (models.Request, error) {
	request, err := h.Store.GetRequest(ctx, requestID)
	if err != nil {
		return models.Request{}, err
	}
	if allowed, _ := guard.CanMutateRequestStatus(actor, request, next); !allowed {
		return models.Request{}, ErrInvalidTransition
	}
	return h.Store.UpdateRequestStatus(ctx, requestID, next)
}

func (h *Handler) mutateRequest(c echo.Context, next models.RequestStatus) error {
	actor, ok := h.actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request id"})
	}

	request, err := h.transition(c.Request().Context(), actor, id, next)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "request not found"})
		case errors.Is(err, ErrInvalidTransition):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid transition", "reason": guard.ReasonInvalidTransition})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update request"})
	}
	return c.JSON(http.StatusOK, request)
}

// POST /api/requests/:id/accept — seller accepts a pending request.
func (h *Handler) AcceptRequest(c echo.Context) error {
	return h.mutateRequest(c, models.RequestAccepted)
}

// POST /api/requests/:id/reject — seller rejects a pending request.
func (h *Handler) RejectRequest(c echo.Context) error {
	return h.mutateRequest(c, models.RequestRejected)
}

// POST /api/requests/:id/complete — buyer accepts delivery.
func (h *Handler) CompleteRequest(c echo.Context) error {
	return h.mutateRequest(c, models.RequestCompleted)
}
