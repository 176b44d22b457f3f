package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tourism-service/internal/api/dto"
	"github.com/spec-kit/tourism-service/internal/auth"
	"github.com/spec-kit/tourism-service/internal/domain"
	"github.com/spec-kit/tourism-service/internal/service"
	apperrors "github.com/spec-kit/tourism-service/pkg/util"
)

// UsersHandler manages the user collection endpoints.
type UsersHandler struct {
	users *service.UserService
	auth  *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService, authService *service.AuthService) *UsersHandler {
	return &UsersHandler{users: userService, auth: authService}
}

// List handles GET /users (admin only).
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// Get handles GET /users/:id. A miss responds with a null body.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if user == nil {
		return c.JSON(nil)
	}
	return c.JSON(user)
}

// Register handles POST /users. Registration is idempotent by email: a
// duplicate reports "already exists" with a null insertedId.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	id, created, err := h.users.Register(c.Context(), service.RegisterInput{
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}
	if !created {
		return c.JSON(dto.InsertResponse{InsertedID: nil, Message: "user already exists"})
	}
	return c.Status(http.StatusCreated).JSON(dto.InsertResponse{InsertedID: &id})
}

// IsAdmin handles GET /users/admin/:email (self only).
func (h *UsersHandler) IsAdmin(c *fiber.Ctx) error {
	isAdmin, err := h.auth.HasRole(c.Context(), c.Params("email"), domain.RoleAdmin)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"admin": isAdmin})
}

// IsGuide handles GET /users/guide/:email (self only).
func (h *UsersHandler) IsGuide(c *fiber.Ctx) error {
	isGuide, err := h.auth.HasRole(c.Context(), c.Params("email"), domain.RoleGuide)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"guide": isGuide})
}

// PromoteAdmin handles PATCH /users/admin/:id (admin only).
func (h *UsersHandler) PromoteAdmin(c *fiber.Ctx) error {
	return h.changeRole(c, domain.RoleAdmin)
}

// PromoteGuide handles PATCH /users/guide/:id (admin only).
func (h *UsersHandler) PromoteGuide(c *fiber.Ctx) error {
	return h.changeRole(c, domain.RoleGuide)
}

func (h *UsersHandler) changeRole(c *fiber.Ctx, role domain.Role) error {
	matched, modified, err := h.users.ChangeRole(c.Context(), c.Params("id"), role)
	if err != nil {
		return err
	}
	return c.JSON(dto.UpdateResponse{MatchedCount: matched, ModifiedCount: modified})
}

// Delete handles DELETE /users/:id (admin only).
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	deleted, err := h.users.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.DeleteResponse{DeletedCount: deleted})
}

// caller returns the verified claims; handlers behind guards always have them.
func caller(c *fiber.Ctx) (*auth.Claims, error) {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("unauthorized access")
	}
	return claims, nil
}
