package store

import (
	"context"
	"errors"
	"time"

	"github.com/jannysd28/technohu/internal/models"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("store: not found")

// SellerFilter narrows ListSellers. Zero value means no filtering.
type SellerFilter struct {
	Status models.SellerStatus
}

// RequestFilter narrows ListRequests. Zero ids mean no filtering.
type RequestFilter struct {
	BuyerID  int64
	SellerID int64
}

// PitchFilter narrows ListPitches. Zero ids mean no filtering.
type PitchFilter struct {
	BuyerID  int64
	SellerID int64
}

// UserUpdate is a shallow partial update of mutable profile fields. Nil
// pointers leave the stored value untouched. Role and status changes go
// through here as well; callers validate them before reaching the store.
type UserUpdate struct {
	Name          *string
	Role          *models.Role
	Status        *models.SellerStatus
	StatusMessage *string
	Avatar        *string
	Location      *string
}

// Store is the entity store: keyed collections with store-owned identifier
// generation, point lookups and predicate-filtered scans. Scans are
// unordered; callers sort. Every update replaces the stored value in one
// indivisible step, so readers never observe a half-merged record.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateUser(ctx context.Context, id int64, upd UserUpdate) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListSellers(ctx context.Context, f SellerFilter) ([]models.User, error)

	// Projects
	CreateProject(ctx context.Context, p models.Project) (models.Project, error)
	GetProject(ctx context.Context, id int64) (models.Project, error)
	ListProjects(ctx context.Context, sellerID int64) ([]models.Project, error)

	// Requests
	CreateRequest(ctx context.Context, r models.Request) (models.Request, error)
	GetRequest(ctx context.Context, id int64) (models.Request, error)
	ListRequests(ctx context.Context, f RequestFilter) ([]models.Request, error)
	UpdateRequestStatus(ctx context.Context, id int64, status models.RequestStatus) (models.Request, error)

	// Pitches
	CreatePitch(ctx context.Context, p models.Pitch) (models.Pitch, error)
	ListPitches(ctx context.Context, f PitchFilter) ([]models.Pitch, error)
	CountPitchesSince(ctx context.Context, sellerID int64, since time.Time) (int, error)

	// Ratings
	CreateRating(ctx context.Context, r models.Rating) (models.Rating, error)
	ListRatingsBySeller(ctx context.Context, sellerID int64) ([]models.Rating, error)

	// Uploads
	CreateUpload(ctx context.Context, u models.Upload) (models.Upload, error)
	ListUploadsByRequest(ctx context.Context, requestID int64) ([]models.Upload, error)

	// Payments
	CreatePayment(ctx context.Context, p models.Payment) (models.Payment, error)
}
