package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tourism-service/internal/api/http/handlers"
	"github.com/spec-kit/tourism-service/internal/auth"
	"github.com/spec-kit/tourism-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Catalog        *handlers.CatalogHandler
	Trips          *handlers.TripsHandler
	AuthMiddleware *auth.Middleware
	Roles          auth.RoleResolver
}

// RegisterRoutes wires HTTP routes. Guard chains are declared per route in a
// fixed order: token verification always precedes role and ownership checks.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	requireAdmin := auth.RequireRole(cfg.Roles, domain.RoleAdmin)
	verify := cfg.AuthMiddleware.Handle

	app.Get("/", cfg.Health.Root)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/token", cfg.Auth.IssueToken)

	app.Get("/users", verify, requireAdmin, cfg.Users.List)
	app.Post("/users", cfg.Users.Register)
	app.Get("/users/admin/:email", verify, auth.RequireSelf("email"), cfg.Users.IsAdmin)
	app.Get("/users/guide/:email", verify, auth.RequireSelf("email"), cfg.Users.IsGuide)
	app.Patch("/users/admin/:id", verify, requireAdmin, cfg.Users.PromoteAdmin)
	app.Patch("/users/guide/:id", verify, requireAdmin, cfg.Users.PromoteGuide)
	app.Get("/users/:id", cfg.Users.Get)
	app.Delete("/users/:id", verify, requireAdmin, cfg.Users.Delete)

	app.Get("/packages", cfg.Catalog.ListPackages)
	app.Get("/packages/:id", cfg.Catalog.GetPackage)

	app.Get("/guides", cfg.Catalog.ListGuides)

	app.Get("/stories", cfg.Catalog.ListStories)
	app.Post("/stories", verify, auth.RequireAuthenticated(), cfg.Catalog.CreateStory)
	app.Get("/stories/:id", cfg.Catalog.GetStory)

	app.Get("/bookings", cfg.Trips.ListBookings)
	app.Post("/bookings", cfg.Trips.CreateBooking)
	app.Get("/bookings/:id", cfg.Trips.GetBooking)
	app.Delete("/bookings/:id", cfg.Trips.DeleteBooking)

	app.Get("/wishlist", cfg.Trips.ListWishlist)
	app.Post("/wishlist", cfg.Trips.AddWishlistItem)
	app.Get("/wishlist/:id", cfg.Trips.GetWishlistItem)
	app.Delete("/wishlist/:id", cfg.Trips.DeleteWishlistItem)
}
