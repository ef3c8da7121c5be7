package models

import "time"

type UploadStatus string

const (
	UploadPending  UploadStatus = "pending"
	UploadApproved UploadStatus = "approved"
)

// Upload is a delivered work artifact tied to an accepted request.
type Upload struct {
	ID        int64        `json:"id"`
	RequestID int64        `json:"request_id"`
	SellerID  int64        `json:"seller_id"`
	BuyerID   int64        `json:"buyer_id"`
	FileName  string       `json:"file_name"`
	FilePath  string       `json:"file_path"` // opaque handle into file storage
	Status    UploadStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}
