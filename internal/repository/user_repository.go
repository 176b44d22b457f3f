package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/tourism-service/internal/domain"
	"github.com/spec-kit/tourism-service/internal/persistence"
)

// UserRepository defines persistence access for user records.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (string, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (matched int64, modified int64, err error)
	Delete(ctx context.Context, id string) (int64, error)
	ResolveRole(ctx context.Context, email string) (domain.Role, error)
}

type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository returns a Mongo-backed implementation.
func NewUserRepository(store *persistence.Mongo) UserRepository {
	return &userRepository{coll: store.Collection(persistence.CollectionUsers)}
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var user domain.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Insert(ctx context.Context, user *domain.User) (string, error) {
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateEmail
		}
		return "", err
	}
	return insertedHex(res), nil
}

func (r *userRepository) UpdateRole(ctx context.Context, id string, role domain.Role) (int64, int64, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return 0, 0, err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) (int64, error) {
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

// ResolveRole is the fresh per-request role lookup used by the role guards.
// A missing record resolves to RoleNone, not an error.
func (r *userRepository) ResolveRole(ctx context.Context, email string) (domain.Role, error) {
	user, err := r.GetByEmail(ctx, email)
	if err != nil {
		return domain.RoleNone, err
	}
	if user == nil {
		return domain.RoleNone, nil
	}
	return user.Role, nil
}
