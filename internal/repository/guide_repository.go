package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/tourism-service/internal/domain"
	"github.com/spec-kit/tourism-service/internal/persistence"
)

// GuideRepository defines read access to guide profiles.
type GuideRepository interface {
	List(ctx context.Context) ([]domain.Guide, error)
}

type guideRepository struct {
	coll *mongo.Collection
}

// NewGuideRepository returns a Mongo-backed implementation.
func NewGuideRepository(store *persistence.Mongo) GuideRepository {
	return &guideRepository{coll: store.Collection(persistence.CollectionGuides)}
}

func (r *guideRepository) List(ctx context.Context) ([]domain.Guide, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	guides := make([]domain.Guide, 0)
	if err := cursor.All(ctx, &guides); err != nil {
		return nil, err
	}
	return guides, nil
}
