package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tourism-service/internal/api/dto"
	"github.com/spec-kit/tourism-service/internal/service"
	apperrors "github.com/spec-kit/tourism-service/pkg/util"
)

// TripsHandler serves bookings and wishlist entries.
type TripsHandler struct {
	trips *service.TripService
}

// NewTripsHandler constructs handler.
func NewTripsHandler(tripService *service.TripService) *TripsHandler {
	return &TripsHandler{trips: tripService}
}

// ListBookings handles GET /bookings?email=. The listing is scoped to the
// owner email from the query.
func (h *TripsHandler) ListBookings(c *fiber.Ctx) error {
	bookings, err := h.trips.ListBookings(c.Context(), c.Query("email"))
	if err != nil {
		return err
	}
	return c.JSON(bookings)
}

// GetBooking handles GET /bookings/:id.
func (h *TripsHandler) GetBooking(c *fiber.Ctx) error {
	booking, err := h.trips.GetBooking(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if booking == nil {
		return c.JSON(nil)
	}
	return c.JSON(booking)
}

// CreateBooking handles POST /bookings.
func (h *TripsHandler) CreateBooking(c *fiber.Ctx) error {
	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	id, reference, err := h.trips.CreateBooking(c.Context(), service.BookingInput{
		PackageID:    req.PackageID,
		PackageTitle: req.PackageTitle,
		Email:        req.Email,
		TravelerName: req.TravelerName,
		GuideName:    req.GuideName,
		TourDate:     req.TourDate,
		Price:        req.Price,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.BookingCreatedResponse{InsertedID: id, Reference: reference})
}

// DeleteBooking handles DELETE /bookings/:id.
func (h *TripsHandler) DeleteBooking(c *fiber.Ctx) error {
	deleted, err := h.trips.DeleteBooking(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.DeleteResponse{DeletedCount: deleted})
}

// ListWishlist handles GET /wishlist?email=.
func (h *TripsHandler) ListWishlist(c *fiber.Ctx) error {
	items, err := h.trips.ListWishlist(c.Context(), c.Query("email"))
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// GetWishlistItem handles GET /wishlist/:id.
func (h *TripsHandler) GetWishlistItem(c *fiber.Ctx) error {
	item, err := h.trips.GetWishlistItem(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if item == nil {
		return c.JSON(nil)
	}
	return c.JSON(item)
}

// AddWishlistItem handles POST /wishlist.
func (h *TripsHandler) AddWishlistItem(c *fiber.Ctx) error {
	var req dto.AddWishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	id, err := h.trips.AddWishlistItem(c.Context(), service.WishlistInput{
		PackageID:    req.PackageID,
		PackageTitle: req.PackageTitle,
		Price:        req.Price,
		Image:        req.Image,
		Email:        req.Email,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.InsertResponse{InsertedID: &id})
}

// DeleteWishlistItem handles DELETE /wishlist/:id.
func (h *TripsHandler) DeleteWishlistItem(c *fiber.Ctx) error {
	deleted, err := h.trips.DeleteWishlistItem(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.DeleteResponse{DeletedCount: deleted})
}
