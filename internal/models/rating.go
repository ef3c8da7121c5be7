package models

import "time"

// Rating is a buyer's review of a seller, optionally tied to a project or
// a completed request.
type Rating struct {
	ID        int64     `json:"id"`
	BuyerID   int64     `json:"buyer_id"`
	SellerID  int64     `json:"seller_id"`
	ProjectID int64     `json:"project_id,omitempty"`
	RequestID int64     `json:"request_id,omitempty"`
	Rating    int       `json:"rating"` // 1-5
	Review    string    `json:"review,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
