package marketplace

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jannysd28/technohu/internal/models"
)

func TestPitchQuota(t *testing.T) {
	h, st := newTestHandler()
	e := echo.New()

	seller := seedUser(t, st, "alice", models.RoleSeller, models.StatusVerified)
	buyer := seedUser(t, st, "bob", models.RoleBuyer, models.StatusActive)

	body := fmt.Sprintf(`{"buyer_id":%d,"message":"I can build this for you"}`, buyer.ID)

	for i := 0; i < DailyPitchQuota; i++ {
		c, rec := newCtx(e, http.MethodPost, "/api/pitches", body, seller.ID)
		if err := h.CreatePitch(c); err != nil {
			t.Fatalf("CreatePitch #%d: %v", i+1, err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("pitch #%d: expected 201, got %d: %s", i+1, rec.Code, rec.Body.String())
		}
	}

	// The sixth pitch of the day is refused and nothing is stored.
	c, rec := newCtx(e, http.MethodPost, "/api/pitches", body, seller.ID)
	if err := h.CreatePitch(c); err != nil {
		t.Fatalf("CreatePitch over quota: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 over quota, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody(t, rec)
	if resp["reason"] != "quota_exceeded" {
		t.Fatalf("expected quota_exceeded reason, got %v", resp["reason"])
	}
	if int(resp["limit"].(float64)) != DailyPitchQuota {
		t.Fatalf("expected limit %d in response, got %v", DailyPitchQuota, resp["limit"])
	}

	count, err := st.CountPitchesSince(context.Background(), seller.ID, startOfUTCDay(time.Now()))
	if err != nil {
		t.Fatalf("CountPitchesSince: %v", err)
	}
	if count != DailyPitchQuota {
		t.Fatalf("refused pitch must not be stored: count %d", count)
	}
}

func TestPitchQuotaResetsAtUTCMidnight(t *testing.T) {
	h, st := newTestHandler()
	e := echo.New()

	seller := seedUser(t, st, "alice", models.RoleSeller, models.StatusVerified)
	buyer := seedUser(t, st, "bob", models.RoleBuyer, models.StatusActive)

	// Fill yesterday's quota. The store keeps caller-supplied timestamps.
	yesterday := startOfUTCDay(time.Now()).Add(-6 * time.Hour)
	for i := 0; i < DailyPitchQuota; i++ {
		if _, err := st.CreatePitch(context.Background(), models.Pitch{
			SellerID:  seller.ID,
			BuyerID:   buyer.ID,
			Message:   "yesterday",
			CreatedAt: yesterday,
		}); err != nil {
			t.Fatalf("seed pitch: %v", err)
		}
	}

	body := fmt.Sprintf(`{"buyer_id":%d,"message":"new day"}`, buyer.ID)
	c, rec := newCtx(e, http.MethodPost, "/api/pitches", body, seller.ID)
	if err := h.CreatePitch(c); err != nil {
		t.Fatalf("CreatePitch: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("yesterday's pitches must not count today: got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPitchQuotaIsPerSeller(t *testing.T) {
	h, st := newTestHandler()
	e := echo.New()

	alice := seedUser(t, st, "alice", models.RoleSeller, models.StatusVerified)
	dan := seedUser(t, st, "dan", models.RoleSeller, models.StatusVerified)
	buyer := seedUser(t, st, "bob", models.RoleBuyer, models.StatusActive)

	for i := 0; i < DailyPitchQuota; i++ {
		if _, err := st.CreatePitch(context.Background(), models.Pitch{SellerID: alice.ID, BuyerID: buyer.ID, Message: "m"}); err != nil {
			t.Fatalf("seed pitch: %v", err)
		}
	}

	body := fmt.Sprintf(`{"buyer_id":%d,"message":"hello"}`, buyer.ID)
	c, rec := newCtx(e, http.MethodPost, "/api/pitches", body, dan.ID)
	if err := h.CreatePitch(c); err != nil {
		t.Fatalf("CreatePitch: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("another seller's quota must not apply: got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPitchRequiresVerifiedSeller(t *testing.T) {
	h, st := newTestHandler()
	e := echo.New()
	buyer := seedUser(t, st, "bob", models.RoleBuyer, models.StatusActive)

	cases := []struct {
		name   string
		role   models.Role
		status models.SellerStatus
		reason string
	}{
		{"unverified seller", models.RoleSeller, models.StatusActive, "seller_not_verified"},
		{"buyer", models.RoleBuyer, models.StatusActive, "not_a_seller"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actor := seedUser(t, st, tc.name, tc.role, tc.status)
			body := fmt.Sprintf(`{"buyer_id":%d,"message":"hi"}`, buyer.ID)
			c, rec := newCtx(e, http.MethodPost, "/api/pitches", body, actor.ID)
			if err := h.CreatePitch(c); err != nil {
				t.Fatalf("CreatePitch: %v", err)
			}
			if rec.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
			}
			if resp := decodeBody(t, rec); resp["reason"] != tc.reason {
				t.Fatalf("expected reason %q, got %v", tc.reason, resp["reason"])
			}
		})
	}
}

func TestPitchValidation(t *testing.T) {
	h, st := newTestHandler()
	e := echo.New()
	seller := seedUser(t, st, "alice", models.RoleSeller, models.StatusVerified)

	t.Run("empty message", func(t *testing.T) {
		c, rec := newCtx(e, http.MethodPost, "/api/pitches", `{"buyer_id":1,"message":""}`, seller.ID)
		if err := h.CreatePitch(c); err != nil {
			t.Fatalf("CreatePitch: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("unknown buyer", func(t *testing.T) {
		c, rec := newCtx(e, http.MethodPost, "/api/pitches", `{"buyer_id":404,"message":"hi"}`, seller.ID)
		if err := h.CreatePitch(c); err != nil {
			t.Fatalf("CreatePitch: %v", err)
		}
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestGetPitchesScoping(t *testing.T) {
	h, st := newTestHandler()
	e := echo.New()

	seller := seedUser(t, st, "alice", models.RoleSeller, models.StatusVerified)
	buyer := seedUser(t, st, "bob", models.RoleBuyer, models.StatusActive)
	other := seedUser(t, st, "carol", models.RoleBuyer, models.StatusActive)

	st.CreatePitch(context.Background(), models.Pitch{SellerID: seller.ID, BuyerID: buyer.ID, Message: "m1"})
	st.CreatePitch(context.Background(), models.Pitch{SellerID: seller.ID, BuyerID: other.ID, Message: "m2"})

	c, rec := newCtx(e, http.MethodGet, "/api/pitches", "", buyer.ID)
	if err := h.GetPitches(c); err != nil {
		t.Fatalf("GetPitches: %v", err)
	}
	var got []models.Pitch
	decodeInto(t, rec, &got)
	if len(got) != 1 || got[0].BuyerID != buyer.ID {
		t.Fatalf("buyer must only see pitches addressed to them, got %+v", got)
	}

	c, rec = newCtx(e, http.MethodGet, "/api/pitches", "", seller.ID)
	if err := h.GetPitches(c); err != nil {
		t.Fatalf("GetPitches: %v", err)
	}
	got = nil
	decodeInto(t, rec, &got)
	if len(got) != 2 {
		t.Fatalf("seller must see both outbound pitches, got %d", len(got))
	}
}
