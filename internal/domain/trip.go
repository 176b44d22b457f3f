package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingStatus tracks a booking's lifecycle.
type BookingStatus string

const (
	BookingStatusPending BookingStatus = "pending"
)

// Booking records a traveler's reservation of a package. Email is the
// ownership anchor used for owner-scoped listing.
type Booking struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Reference    string             `bson:"reference" json:"reference"`
	PackageID    string             `bson:"packageId,omitempty" json:"packageId,omitempty"`
	PackageTitle string             `bson:"packageTitle,omitempty" json:"packageTitle,omitempty"`
	Email        string             `bson:"email" json:"email"`
	TravelerName string             `bson:"travelerName,omitempty" json:"travelerName,omitempty"`
	GuideName    string             `bson:"guideName,omitempty" json:"guideName,omitempty"`
	TourDate     string             `bson:"tourDate,omitempty" json:"tourDate,omitempty"`
	Price        float64            `bson:"price" json:"price"`
	Status       BookingStatus      `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// WishlistItem bookmarks a package for a traveler, owned by Email.
type WishlistItem struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PackageID    string             `bson:"packageId,omitempty" json:"packageId,omitempty"`
	PackageTitle string             `bson:"packageTitle,omitempty" json:"packageTitle,omitempty"`
	Price        float64            `bson:"price" json:"price"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Email        string             `bson:"email" json:"email"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
