package service

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/tourism-service/internal/domain"
)

type stubBookingRepo struct {
	inserted []*domain.Booking
}

func (s *stubBookingRepo) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	out := make([]domain.Booking, 0)
	for _, b := range s.inserted {
		if b.Email == email {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *stubBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return nil, nil
}

func (s *stubBookingRepo) Insert(ctx context.Context, booking *domain.Booking) (string, error) {
	s.inserted = append(s.inserted, booking)
	return "booking-1", nil
}

func (s *stubBookingRepo) Delete(ctx context.Context, id string) (int64, error) { return 1, nil }

type stubWishlistRepo struct{}

func (s *stubWishlistRepo) ListByEmail(ctx context.Context, email string) ([]domain.WishlistItem, error) {
	return nil, nil
}

func (s *stubWishlistRepo) GetByID(ctx context.Context, id string) (*domain.WishlistItem, error) {
	return nil, nil
}

func (s *stubWishlistRepo) Insert(ctx context.Context, item *domain.WishlistItem) (string, error) {
	return "wish-1", nil
}

func (s *stubWishlistRepo) Delete(ctx context.Context, id string) (int64, error) { return 1, nil }

func TestCreateBookingAssignsReferenceAndPendingStatus(t *testing.T) {
	repo := &stubBookingRepo{}
	svc := NewTripService(repo, &stubWishlistRepo{}, nil, zap.NewNop())

	id, reference, err := svc.CreateBooking(context.Background(), BookingInput{
		Email:        "a@x.com",
		PackageTitle: "Reef Dive",
		Price:        199.0,
	})
	if err != nil {
		t.Fatalf("create booking failed: %v", err)
	}
	if id != "booking-1" {
		t.Fatalf("unexpected id %q", id)
	}
	if !strings.HasPrefix(reference, "BKG-") || len(reference) != len("BKG-")+8 {
		t.Fatalf("unexpected reference %q", reference)
	}
	if repo.inserted[0].Status != domain.BookingStatusPending {
		t.Fatalf("expected pending status, got %q", repo.inserted[0].Status)
	}
}

func TestCreateBookingRequiresOwnerEmail(t *testing.T) {
	svc := NewTripService(&stubBookingRepo{}, &stubWishlistRepo{}, nil, zap.NewNop())

	if _, _, err := svc.CreateBooking(context.Background(), BookingInput{PackageTitle: "Reef Dive"}); err == nil {
		t.Fatalf("expected a validation error without an owner email")
	}
}

func TestListBookingsScopesToOwner(t *testing.T) {
	repo := &stubBookingRepo{}
	svc := NewTripService(repo, &stubWishlistRepo{}, nil, zap.NewNop())

	for _, email := range []string{"a@x.com", "b@x.com", "a@x.com"} {
		if _, _, err := svc.CreateBooking(context.Background(), BookingInput{Email: email}); err != nil {
			t.Fatalf("create booking failed: %v", err)
		}
	}

	bookings, err := svc.ListBookings(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("expected two bookings for a@x.com, got %d", len(bookings))
	}
	for _, b := range bookings {
		if b.Email != "a@x.com" {
			t.Fatalf("listing leaked booking owned by %q", b.Email)
		}
	}
}
