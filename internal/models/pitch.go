package models

import "time"

// Pitch is a seller-initiated outreach message to a buyer. Never mutated.
type Pitch struct {
	ID        int64     `json:"id"`
	SellerID  int64     `json:"seller_id"`
	BuyerID   int64     `json:"buyer_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
