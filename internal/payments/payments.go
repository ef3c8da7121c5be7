// Package payments wraps the external payment collaborator. The core only
// ever asks it to charge an amount and hand back a reference; capture,
// refunds and webhooks belong to the provider.
package payments

import (
	"context"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jannysd28/technohu/internal/models"
	"github.com/jannysd28/technohu/internal/store"
)

// Gateway is the opaque payment capability.
type Gateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency, description string) (reference string, err error)
}

// MockGateway issues provider-style references without contacting anyone.
// Stands in until a real provider is wired up.
type MockGateway struct{}

func (MockGateway) CreateIntent(_ context.Context, _ int64, _ string, _ string) (string, error) {
	return "pi_" + uuid.New().String(), nil
}

type Handler struct {
	Store   store.Store
	Gateway Gateway
}

func NewHandler(s store.Store, g Gateway) *Handler {
	return &Handler{Store: s, Gateway: g}
}

type CreateIntentRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	ProjectID   int64  `json:"project_id"`
	RequestID   int64  `json:"request_id"`
	Description string `json:"description"`
}

// POST /api/payments/create-intent
func (h *Handler) CreateIntent(c echo.Context) error {
	uid, ok := c.Get("user_id").(int64)
	if !ok || uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req CreateIntentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.AmountCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be positive"})
	}
	if req.Currency == "" {
		req.Currency = "usd"
	}

	ctx := c.Request().Context()
	reference, err := h.Gateway.CreateIntent(ctx, req.AmountCents, req.Currency, req.Description)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment processing failed"})
	}

	payment, err := h.Store.CreatePayment(ctx, models.Payment{
		BuyerID:     uid,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		ProjectID:   req.ProjectID,
		RequestID:   req.RequestID,
		Reference:   reference,
		Status:      models.PaymentPending,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not record payment"})
	}

	paymentURL := os.Getenv("MOCK_PAYMENT_URL")
	if paymentURL == "" {
		paymentURL = "https://pay.technohu.dev/mock/" + reference
	}

	return c.JSON(http.StatusOK, echo.Map{
		"payment":     payment,
		"payment_url": paymentURL,
	})
}
