package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/tourism-service/internal/domain"
	"github.com/spec-kit/tourism-service/internal/persistence"
)

// PackageRepository defines read access to the tour package catalog.
type PackageRepository interface {
	List(ctx context.Context) ([]domain.Package, error)
	GetByID(ctx context.Context, id string) (*domain.Package, error)
}

type packageRepository struct {
	coll *mongo.Collection
}

// NewPackageRepository returns a Mongo-backed implementation.
func NewPackageRepository(store *persistence.Mongo) PackageRepository {
	return &packageRepository{coll: store.Collection(persistence.CollectionPackages)}
}

func (r *packageRepository) List(ctx context.Context) ([]domain.Package, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	packages := make([]domain.Package, 0)
	if err := cursor.All(ctx, &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *packageRepository) GetByID(ctx context.Context, id string) (*domain.Package, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var pkg domain.Package
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&pkg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &pkg, nil
}
