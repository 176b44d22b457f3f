package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/tourism-service/internal/domain"
	"github.com/spec-kit/tourism-service/internal/events"
	"github.com/spec-kit/tourism-service/internal/repository"
	apperrors "github.com/spec-kit/tourism-service/pkg/util"
)

// TripService manages bookings and wishlist entries, the two owner-scoped
// collections.
type TripService struct {
	bookings   repository.BookingRepository
	wishlist   repository.WishlistRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewTripService constructs the service.
func NewTripService(bookings repository.BookingRepository, wishlist repository.WishlistRepository, dispatcher events.Dispatcher, logger *zap.Logger) *TripService {
	return &TripService{bookings: bookings, wishlist: wishlist, dispatcher: dispatcher, logger: logger}
}

// BookingInput carries a booking submission.
type BookingInput struct {
	PackageID    string
	PackageTitle string
	Email        string
	TravelerName string
	GuideName    string
	TourDate     string
	Price        float64
}

// CreateBooking persists a pending booking with a generated reference code.
func (s *TripService) CreateBooking(ctx context.Context, input BookingInput) (string, string, error) {
	if input.Email == "" {
		return "", "", apperrors.NewValidationError("email required")
	}

	booking := &domain.Booking{
		Reference:    newBookingReference(),
		PackageID:    input.PackageID,
		PackageTitle: input.PackageTitle,
		Email:        input.Email,
		TravelerName: input.TravelerName,
		GuideName:    input.GuideName,
		TourDate:     input.TourDate,
		Price:        input.Price,
		Status:       domain.BookingStatusPending,
		CreatedAt:    time.Now(),
	}
	id, err := s.bookings.Insert(ctx, booking)
	if err != nil {
		return "", "", storageErr(err)
	}

	s.publish(ctx, events.EventBookingCreated, map[string]any{
		"id":        id,
		"reference": booking.Reference,
		"email":     input.Email,
	})
	return id, booking.Reference, nil
}

// ListBookings returns bookings owned by email.
func (s *TripService) ListBookings(ctx context.Context, email string) ([]domain.Booking, error) {
	bookings, err := s.bookings.ListByEmail(ctx, email)
	if err != nil {
		return nil, storageErr(err)
	}
	return bookings, nil
}

// GetBooking fetches one booking by id; a miss returns nil.
func (s *TripService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	return booking, nil
}

// DeleteBooking removes a booking by id.
func (s *TripService) DeleteBooking(ctx context.Context, id string) (int64, error) {
	deleted, err := s.bookings.Delete(ctx, id)
	if err != nil {
		return 0, storageErr(err)
	}
	return deleted, nil
}

// WishlistInput carries a wishlist submission.
type WishlistInput struct {
	PackageID    string
	PackageTitle string
	Price        float64
	Image        string
	Email        string
}

// AddWishlistItem persists a wishlist entry for the owning traveler.
func (s *TripService) AddWishlistItem(ctx context.Context, input WishlistInput) (string, error) {
	if input.Email == "" {
		return "", apperrors.NewValidationError("email required")
	}

	item := &domain.WishlistItem{
		PackageID:    input.PackageID,
		PackageTitle: input.PackageTitle,
		Price:        input.Price,
		Image:        input.Image,
		Email:        input.Email,
		CreatedAt:    time.Now(),
	}
	id, err := s.wishlist.Insert(ctx, item)
	if err != nil {
		return "", storageErr(err)
	}

	s.publish(ctx, events.EventWishlistAdded, map[string]any{"id": id, "email": input.Email})
	return id, nil
}

// ListWishlist returns wishlist entries owned by email.
func (s *TripService) ListWishlist(ctx context.Context, email string) ([]domain.WishlistItem, error) {
	items, err := s.wishlist.ListByEmail(ctx, email)
	if err != nil {
		return nil, storageErr(err)
	}
	return items, nil
}

// GetWishlistItem fetches one entry by id; a miss returns nil.
func (s *TripService) GetWishlistItem(ctx context.Context, id string) (*domain.WishlistItem, error) {
	item, err := s.wishlist.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	return item, nil
}

// DeleteWishlistItem removes an entry by id.
func (s *TripService) DeleteWishlistItem(ctx context.Context, id string) (int64, error) {
	deleted, err := s.wishlist.Delete(ctx, id)
	if err != nil {
		return 0, storageErr(err)
	}
	return deleted, nil
}

func (s *TripService) publish(ctx context.Context, eventType events.EventType, payload map[string]any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now(),
		Payload:    payload,
	})
}

func newBookingReference() string {
	return "BKG-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
