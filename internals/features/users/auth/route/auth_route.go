// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"collegeaccounts_backend/internals/features/users/auth/controller"
	"collegeaccounts_backend/internals/features/users/auth/service"
	rateLimiter "collegeaccounts_backend/internals/middlewares"
)

// AuthRoutes: login publik (rate limited), sisanya butuh token.
// Base: /api/auth
func AuthRoutes(api fiber.Router, svc *service.AuthService, protected fiber.Handler, storage fiber.Storage) {
	h := controller.NewAuthController(svc)

	g := api.Group("/auth")
	g.Post("/login", rateLimiter.LoginRateLimiter(storage), h.Login)
	g.Post("/logout", protected, h.Logout)
	g.Get("/me", protected, h.Me)
	g.Post("/change-password", protected, h.ChangePassword)
}
