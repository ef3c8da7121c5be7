package models

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment records an intent handed to the external payment gateway. The
// gateway is an opaque collaborator; only its reference is kept here.
type Payment struct {
	ID          int64         `json:"id"`
	BuyerID     int64         `json:"buyer_id"`
	SellerID    int64         `json:"seller_id,omitempty"`
	AmountCents int64         `json:"amount_cents"`
	Currency    string        `json:"currency"`
	ProjectID   int64         `json:"project_id,omitempty"`
	RequestID   int64         `json:"request_id,omitempty"`
	Reference   string        `json:"reference"` // provider payment id
	Status      PaymentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}
