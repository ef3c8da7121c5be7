package models

import "time"

// RequestStatus is the lifecycle state of a custom job request.
// pending is initial; rejected and completed are terminal.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAccepted  RequestStatus = "accepted"
	RequestRejected  RequestStatus = "rejected"
	RequestCompleted RequestStatus = "completed"
)

// Terminal reports whether no further transition is allowed from s.
func (s RequestStatus) Terminal() bool {
	return s == RequestRejected || s == RequestCompleted
}

// Request is a buyer's custom job ask directed at one seller.
type Request struct {
	ID          int64         `json:"id"`
	BuyerID     int64         `json:"buyer_id"`
	SellerID    int64         `json:"seller_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	PriceCents  int64         `json:"price_cents"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}
