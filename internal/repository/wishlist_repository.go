package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/tourism-service/internal/domain"
	"github.com/spec-kit/tourism-service/internal/persistence"
)

// WishlistRepository defines persistence access for wishlist entries.
type WishlistRepository interface {
	ListByEmail(ctx context.Context, email string) ([]domain.WishlistItem, error)
	GetByID(ctx context.Context, id string) (*domain.WishlistItem, error)
	Insert(ctx context.Context, item *domain.WishlistItem) (string, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type wishlistRepository struct {
	coll *mongo.Collection
}

// NewWishlistRepository returns a Mongo-backed implementation.
func NewWishlistRepository(store *persistence.Mongo) WishlistRepository {
	return &wishlistRepository{coll: store.Collection(persistence.CollectionWishlist)}
}

func (r *wishlistRepository) ListByEmail(ctx context.Context, email string) ([]domain.WishlistItem, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	items := make([]domain.WishlistItem, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *wishlistRepository) GetByID(ctx context.Context, id string) (*domain.WishlistItem, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var item domain.WishlistItem
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *wishlistRepository) Insert(ctx context.Context, item *domain.WishlistItem) (string, error) {
	res, err := r.coll.InsertOne(ctx, item)
	if err != nil {
		return "", err
	}
	return insertedHex(res), nil
}

func (r *wishlistRepository) Delete(ctx context.Context, id string) (int64, error) {
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
