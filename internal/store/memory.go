package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jannysd28/technohu/internal/models"
)

// MemoryStore keeps every collection in a map keyed by auto-incrementing
// int64 ids. Entities are stored and returned by value, so callers never
// hold a mutable handle into the store. Demo-scale: lookups by anything
// other than id are linear scans.
type MemoryStore struct {
	mu sync.RWMutex

	users    map[int64]models.User
	projects map[int64]models.Project
	requests map[int64]models.Request
	pitches  map[int64]models.Pitch
	ratings  map[int64]models.Rating
	uploads  map[int64]models.Upload
	payments map[int64]models.Payment

	nextUserID    int64
	nextProjectID int64
	nextRequestID int64
	nextPitchID   int64
	nextRatingID  int64
	nextUploadID  int64
	nextPaymentID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[int64]models.User),
		projects: make(map[int64]models.Project),
		requests: make(map[int64]models.Request),
		pitches:  make(map[int64]models.Pitch),
		ratings:  make(map[int64]models.Rating),
		uploads:  make(map[int64]models.Upload),
		payments: make(map[int64]models.Payment),

		nextUserID:    1,
		nextProjectID: 1,
		nextRequestID: 1,
		nextPitchID:   1,
		nextRatingID:  1,
		nextUploadID:  1,
		nextPaymentID: 1,
	}
}

// Users

func (s *MemoryStore) CreateUser(_ context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.nextUserID
	s.nextUserID++
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *MemoryStore) GetUser(_ context.Context, id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemoryStore) UpdateUser(_ context.Context, id int64, upd UserUpdate) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}

	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.Status != nil {
		u.Status = *upd.Status
	}
	if upd.StatusMessage != nil {
		u.StatusMessage = *upd.StatusMessage
	}
	if upd.Avatar != nil {
		u.Avatar = *upd.Avatar
	}
	if upd.Location != nil {
		u.Location = *upd.Location
	}

	// Single replace of the stored value; readers see old or new, never a mix.
	s.users[id] = u
	return u, nil
}

func (s *MemoryStore) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *MemoryStore) ListSellers(_ context.Context, f SellerFilter) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.User
	for _, u := range s.users {
		if !u.Role.CanSell() {
			continue
		}
		if f.Status != "" && u.Status != f.Status {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

// Projects

func (s *MemoryStore) CreateProject(_ context.Context, p models.Project) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextProjectID
	s.nextProjectID++
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	s.projects[p.ID] = p
	return p, nil
}

func (s *MemoryStore) GetProject(_ context.Context, id int64) (models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return models.Project{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) ListProjects(_ context.Context, sellerID int64) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Project
	for _, p := range s.projects {
		if sellerID != 0 && p.SellerID != sellerID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Requests

func (s *MemoryStore) CreateRequest(_ context.Context, r models.Request) (models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.nextRequestID
	s.nextRequestID++
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	s.requests[r.ID] = r
	return r, nil
}

func (s *MemoryStore) GetRequest(_ context.Context, id int64) (models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.requests[id]
	if !ok {
		return models.Request{}, ErrNotFound
	}
	return r, nil
}

func (s *MemoryStore) ListRequests(_ context.Context, f RequestFilter) ([]models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Request
	for _, r := range s.requests {
		if f.BuyerID != 0 && r.BuyerID != f.BuyerID {
			continue
		}
		if f.SellerID != 0 && r.SellerID != f.SellerID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *MemoryStore) UpdateRequestStatus(_ context.Context, id int64, status models.RequestStatus) (models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[id]
	if !ok {
		return models.Request{}, ErrNotFound
	}
	r.Status = status
	s.requests[id] = r
	return r, nil
}

// Pitches

func (s *MemoryStore) CreatePitch(_ context.Context, p models.Pitch) (models.Pitch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextPitchID
	s.nextPitchID++
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	s.pitches[p.ID] = p
	return p, nil
}

func (s *MemoryStore) ListPitches(_ context.Context, f PitchFilter) ([]models.Pitch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Pitch
	for _, p := range s.pitches {
		if f.BuyerID != 0 && p.BuyerID != f.BuyerID {
			continue
		}
		if f.SellerID != 0 && p.SellerID != f.SellerID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *MemoryStore) CountPitchesSince(_ context.Context, sellerID int64, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, p := range s.pitches {
		if p.SellerID == sellerID && !p.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

// Ratings

func (s *MemoryStore) CreateRating(_ context.Context, r models.Rating) (models.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.nextRatingID
	s.nextRatingID++
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	s.ratings[r.ID] = r
	return r, nil
}

func (s *MemoryStore) ListRatingsBySeller(_ context.Context, sellerID int64) ([]models.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Rating
	for _, r := range s.ratings {
		if r.SellerID == sellerID {
			out = append(out, r)
		}
	}
	return out, nil
}

// Uploads

func (s *MemoryStore) CreateUpload(_ context.Context, u models.Upload) (models.Upload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.nextUploadID
	s.nextUploadID++
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	s.uploads[u.ID] = u
	return u, nil
}

func (s *MemoryStore) ListUploadsByRequest(_ context.Context, requestID int64) ([]models.Upload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Upload
	for _, u := range s.uploads {
		if u.RequestID == requestID {
			out = append(out, u)
		}
	}
	return out, nil
}

// Payments

func (s *MemoryStore) CreatePayment(_ context.Context, p models.Payment) (models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextPaymentID
	s.nextPaymentID++
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	s.payments[p.ID] = p
	return p, nil
}
