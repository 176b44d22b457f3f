package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tourism-service/internal/domain"
	apperrors "github.com/spec-kit/tourism-service/pkg/util"
)

// RoleResolver looks up the current role for a verified email. Missing user
// records resolve to RoleNone.
type RoleResolver interface {
	ResolveRole(ctx context.Context, email string) (domain.Role, error)
}

// RequireAuthenticated ensures the bearer middleware verified a token.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := ClaimsFromContext(c); !ok {
			return apperrors.NewUnauthorized("unauthorized access")
		}
		return c.Next()
	}
}

// RequireRole ensures the caller's stored role matches the required one.
// The lookup is fresh per request; a role change takes effect on the next
// request after it lands, regardless of what the token claims.
func RequireRole(resolver RoleResolver, required domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("unauthorized access")
		}
		role, err := resolver.ResolveRole(c.Context(), claims.Email)
		if err != nil {
			return apperrors.NewStorageUnavailable(err)
		}
		if role != required {
			return apperrors.NewForbidden("forbidden access")
		}
		return c.Next()
	}
}

// RequireSelf ensures the email path parameter matches the token identity,
// so one caller cannot probe another's role.
func RequireSelf(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("unauthorized access")
		}
		if c.Params(param) != claims.Email {
			return apperrors.NewForbidden("forbidden access")
		}
		return c.Next()
	}
}
