package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tourism-service/internal/api/dto"
	"github.com/spec-kit/tourism-service/internal/service"
	apperrors "github.com/spec-kit/tourism-service/pkg/util"
)

// CatalogHandler serves packages, guides and stories.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalogService}
}

// ListPackages handles GET /packages.
func (h *CatalogHandler) ListPackages(c *fiber.Ctx) error {
	packages, err := h.catalog.ListPackages(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(packages)
}

// GetPackage handles GET /packages/:id.
func (h *CatalogHandler) GetPackage(c *fiber.Ctx) error {
	pkg, err := h.catalog.GetPackage(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if pkg == nil {
		return c.JSON(nil)
	}
	return c.JSON(pkg)
}

// ListGuides handles GET /guides.
func (h *CatalogHandler) ListGuides(c *fiber.Ctx) error {
	guides, err := h.catalog.ListGuides(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(guides)
}

// ListStories handles GET /stories.
func (h *CatalogHandler) ListStories(c *fiber.Ctx) error {
	stories, err := h.catalog.ListStories(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(stories)
}

// GetStory handles GET /stories/:id.
func (h *CatalogHandler) GetStory(c *fiber.Ctx) error {
	story, err := h.catalog.GetStory(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if story == nil {
		return c.JSON(nil)
	}
	return c.JSON(story)
}

// CreateStory handles POST /stories (authenticated). Authorship is stamped
// from the verified token.
func (h *CatalogHandler) CreateStory(c *fiber.Ctx) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}

	var req dto.CreateStoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	id, err := h.catalog.CreateStory(c.Context(), claims.Email, service.StoryInput{
		Title:      req.Title,
		Content:    req.Content,
		AuthorName: req.AuthorName,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.InsertResponse{InsertedID: &id})
}
