package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSessionLifecycle(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			user, _ := s.CreateUser(ctx, testVolunteer("mario", "RSSMRA85T10A562S"))

			expires := time.Now().Add(24 * time.Hour)
			if err := s.CreateSession(ctx, "abc123", user.ID, expires); err != nil {
				t.Fatalf("CreateSession: %v", err)
			}

			session, err := s.GetSession(ctx, "abc123")
			if err != nil {
				t.Fatalf("GetSession: %v", err)
			}
			if session.UserID != user.ID {
				t.Errorf("expected user id %d, got %d", user.ID, session.UserID)
			}

			if err := s.DeleteSession(ctx, "abc123"); err != nil {
				t.Fatalf("DeleteSession: %v", err)
			}
			if _, err := s.GetSession(ctx, "abc123"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound after delete, got %v", err)
			}

			// Logout is idempotent.
			if err := s.DeleteSession(ctx, "abc123"); err != nil {
				t.Errorf("expected repeated delete to succeed, got %v", err)
			}
		})
	}
}

func TestExpiredSessionsPurged(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			user, _ := s.CreateUser(ctx, testVolunteer("mario", "RSSMRA85T10A562S"))

			s.CreateSession(ctx, "stale", user.ID, time.Now().Add(-time.Hour))
			// A later create opportunistically purges expired rows.
			s.CreateSession(ctx, "fresh", user.ID, time.Now().Add(time.Hour))

			if _, err := s.GetSession(ctx, "stale"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected stale session purged, got %v", err)
			}
			if _, err := s.GetSession(ctx, "fresh"); err != nil {
				t.Errorf("fresh session missing: %v", err)
			}
		})
	}
}

func TestRecentQrCodesLimit(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			user, _ := s.CreateUser(ctx, testVolunteer("mario", "RSSMRA85T10A562S"))
			vehicle, _ := s.CreateVehicle(ctx, "CRI 433 AF 151201", "CRI 433 AF")

			for i := 0; i < 3; i++ {
				if _, err := s.CreateQrCode(ctx, vehicle.ID, "https://example.org/checkin", user.ID); err != nil {
					t.Fatalf("CreateQrCode: %v", err)
				}
			}

			codes, err := s.ListRecentQrCodes(ctx, 2)
			if err != nil {
				t.Fatalf("ListRecentQrCodes: %v", err)
			}
			if len(codes) != 2 {
				t.Fatalf("expected 2 codes, got %d", len(codes))
			}
			if codes[0].ID < codes[1].ID {
				t.Error("expected newest first")
			}
			if codes[0].VehicleCode != "CRI 433 AF 151201" {
				t.Errorf("expected joined vehicle code, got %q", codes[0].VehicleCode)
			}
		})
	}
}
