package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/tourism-service/internal/domain"
	"github.com/spec-kit/tourism-service/internal/persistence"
)

// StoryRepository defines persistence access for trip stories.
type StoryRepository interface {
	List(ctx context.Context) ([]domain.Story, error)
	GetByID(ctx context.Context, id string) (*domain.Story, error)
	Insert(ctx context.Context, story *domain.Story) (string, error)
}

type storyRepository struct {
	coll *mongo.Collection
}

// NewStoryRepository returns a Mongo-backed implementation.
func NewStoryRepository(store *persistence.Mongo) StoryRepository {
	return &storyRepository{coll: store.Collection(persistence.CollectionStories)}
}

func (r *storyRepository) List(ctx context.Context) ([]domain.Story, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	stories := make([]domain.Story, 0)
	if err := cursor.All(ctx, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

func (r *storyRepository) GetByID(ctx context.Context, id string) (*domain.Story, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var story domain.Story
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&story); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &story, nil
}

func (r *storyRepository) Insert(ctx context.Context, story *domain.Story) (string, error) {
	res, err := r.coll.InsertOne(ctx, story)
	if err != nil {
		return "", err
	}
	return insertedHex(res), nil
}
