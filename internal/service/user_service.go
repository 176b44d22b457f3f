package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/tourism-service/internal/domain"
	"github.com/spec-kit/tourism-service/internal/events"
	"github.com/spec-kit/tourism-service/internal/repository"
	apperrors "github.com/spec-kit/tourism-service/pkg/util"
)

// UserService manages the user collection.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *UserService {
	return &UserService{users: users, dispatcher: dispatcher, logger: logger}
}

// RegisterInput carries a registration payload.
type RegisterInput struct {
	Name     string
	PhotoURL string
	Email    string
}

// Register creates a user record unless one exists for the email. The
// pre-check gives the friendly "already exists" answer; the unique index on
// users.email settles the race when two registrations pass it concurrently,
// and a lost race collapses to the same no-op outcome.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (string, bool, error) {
	if input.Email == "" {
		return "", false, apperrors.NewValidationError("email required")
	}

	existing, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return "", false, storageErr(err)
	}
	if existing != nil {
		return "", false, nil
	}

	user := &domain.User{
		Name:      input.Name,
		PhotoURL:  input.PhotoURL,
		Email:     input.Email,
		Role:      domain.RoleTraveler,
		CreatedAt: time.Now(),
	}
	id, err := s.users.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", false, nil
		}
		return "", false, storageErr(err)
	}

	s.publish(ctx, events.EventUserRegistered, map[string]any{"email": input.Email, "id": id})
	return id, true, nil
}

// List returns every user record.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return users, nil
}

// Get fetches one user by id; a miss returns nil.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	return user, nil
}

// ChangeRole sets the role on a user record.
func (s *UserService) ChangeRole(ctx context.Context, id string, role domain.Role) (int64, int64, error) {
	if !role.Valid() {
		return 0, 0, apperrors.NewValidationError("invalid role")
	}
	matched, modified, err := s.users.UpdateRole(ctx, id, role)
	if err != nil {
		return 0, 0, storageErr(err)
	}
	if matched == 0 {
		return 0, 0, apperrors.NewNotFound("user")
	}

	s.publish(ctx, events.EventRoleChanged, map[string]any{"id": id, "role": string(role)})
	return matched, modified, nil
}

// Delete removes a user record by id.
func (s *UserService) Delete(ctx context.Context, id string) (int64, error) {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return 0, storageErr(err)
	}
	return deleted, nil
}

func (s *UserService) publish(ctx context.Context, eventType events.EventType, payload map[string]any) {
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
