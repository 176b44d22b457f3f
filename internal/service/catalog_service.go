package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/tourism-service/internal/domain"
	"github.com/spec-kit/tourism-service/internal/events"
	"github.com/spec-kit/tourism-service/internal/persistence"
	"github.com/spec-kit/tourism-service/internal/repository"
	apperrors "github.com/spec-kit/tourism-service/pkg/util"
)

const (
	cacheKeyPackages = "catalog:packages"
	cacheKeyGuides   = "catalog:guides"
)

// CatalogService serves packages, guides and stories. Packages and guides
// are immutable through the API, so their list results go through a
// best-effort redis cache.
type CatalogService struct {
	packages   repository.PackageRepository
	guides     repository.GuideRepository
	stories    repository.StoryRepository
	cache      *persistence.Redis
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewCatalogService constructs the service.
func NewCatalogService(
	packages repository.PackageRepository,
	guides repository.GuideRepository,
	stories repository.StoryRepository,
	cache *persistence.Redis,
	cacheTTL time.Duration,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		packages:   packages,
		guides:     guides,
		stories:    stories,
		cache:      cache,
		cacheTTL:   cacheTTL,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// ListPackages returns the tour package catalog, cache first.
func (s *CatalogService) ListPackages(ctx context.Context) ([]domain.Package, error) {
	if payload, ok := s.cache.CacheGet(ctx, cacheKeyPackages); ok {
		var packages []domain.Package
		if err := json.Unmarshal(payload, &packages); err == nil {
			return packages, nil
		}
	}

	packages, err := s.packages.List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	if payload, err := json.Marshal(packages); err == nil {
		s.cache.CacheSet(ctx, cacheKeyPackages, payload, s.cacheTTL)
	}
	return packages, nil
}

// GetPackage fetches one package by id; a miss returns nil.
func (s *CatalogService) GetPackage(ctx context.Context, id string) (*domain.Package, error) {
	pkg, err := s.packages.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	return pkg, nil
}

// ListGuides returns all guide profiles, cache first.
func (s *CatalogService) ListGuides(ctx context.Context) ([]domain.Guide, error) {
	if payload, ok := s.cache.CacheGet(ctx, cacheKeyGuides); ok {
		var guides []domain.Guide
		if err := json.Unmarshal(payload, &guides); err == nil {
			return guides, nil
		}
	}

	guides, err := s.guides.List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	if payload, err := json.Marshal(guides); err == nil {
		s.cache.CacheSet(ctx, cacheKeyGuides, payload, s.cacheTTL)
	}
	return guides, nil
}

// ListStories returns all stories.
func (s *CatalogService) ListStories(ctx context.Context) ([]domain.Story, error) {
	stories, err := s.stories.List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return stories, nil
}

// GetStory fetches one story by id; a miss returns nil.
func (s *CatalogService) GetStory(ctx context.Context, id string) (*domain.Story, error) {
	story, err := s.stories.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	return story, nil
}

// StoryInput carries a story submission.
type StoryInput struct {
	Title      string
	Content    string
	AuthorName string
}

// CreateStory persists a story attributed to the verified caller. The author
// email comes from the token, never from the body.
func (s *CatalogService) CreateStory(ctx context.Context, authorEmail string, input StoryInput) (string, error) {
	if input.Title == "" || input.Content == "" {
		return "", apperrors.NewValidationError("title and content required")
	}

	story := &domain.Story{
		Title:       input.Title,
		Content:     input.Content,
		AuthorName:  input.AuthorName,
		AuthorEmail: authorEmail,
		CreatedAt:   time.Now(),
	}
	id, err := s.stories.Insert(ctx, story)
	if err != nil {
		return "", storageErr(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:         uuid.NewString(),
			Type:       events.EventStoryPublished,
			OccurredAt: time.Now(),
			Payload:    map[string]any{"id": id, "author": authorEmail},
		})
	}
	return id, nil
}
