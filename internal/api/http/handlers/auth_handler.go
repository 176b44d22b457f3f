package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tourism-service/internal/api/dto"
	"github.com/spec-kit/tourism-service/internal/service"
	apperrors "github.com/spec-kit/tourism-service/pkg/util"
)

// AuthHandler exposes the bootstrap token issuance endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// IssueToken handles POST /auth/token. It signs whatever identity claim the
// caller presents; role gates re-resolve the real role from the store on
// every protected request, so an inflated claim buys nothing.
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	token, expiresAt, err := h.auth.IssueToken(req.Email, req.Role)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(dto.TokenResponse{Token: token, ExpiresAt: expiresAt})
}
