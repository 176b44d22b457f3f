package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/tourism-service/internal/domain"
	"github.com/spec-kit/tourism-service/internal/persistence"
)

// BookingRepository defines persistence access for bookings.
type BookingRepository interface {
	ListByEmail(ctx context.Context, email string) ([]domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Insert(ctx context.Context, booking *domain.Booking) (string, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type bookingRepository struct {
	coll *mongo.Collection
}

// NewBookingRepository returns a Mongo-backed implementation.
func NewBookingRepository(store *persistence.Mongo) BookingRepository {
	return &bookingRepository{coll: store.Collection(persistence.CollectionBookings)}
}

// ListByEmail scopes results to the owning traveler. An empty email matches
// only documents with an empty owner, never the whole collection.
func (r *bookingRepository) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	bookings := make([]domain.Booking, 0)
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var booking domain.Booking
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Insert(ctx context.Context, booking *domain.Booking) (string, error) {
	res, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		return "", err
	}
	return insertedHex(res), nil
}

func (r *bookingRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return 0, err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
