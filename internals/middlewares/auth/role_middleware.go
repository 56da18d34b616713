package auth

import (
	"slices"

	"github.com/gofiber/fiber/v2"
)

// OnlyRoles meloloskan request bila role dari AuthJWT ("userRole") ada di roles.
func OnlyRoles(forbiddenMessage string, roles ...string) fiber.Handler {
	if forbiddenMessage == "" {
		forbiddenMessage = "Forbidden: you are not authorized to access this resource"
	}
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("userRole").(string)
		if !ok || role == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}
		if !slices.Contains(roles, role) {
			return fiber.NewError(fiber.StatusForbidden, forbiddenMessage)
		}
		return c.Next()
	}
}
