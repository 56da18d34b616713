package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"collegeaccounts_backend/internals/features/users/user/controller"
	"collegeaccounts_backend/internals/features/users/user/model"
	authMw "collegeaccounts_backend/internals/middlewares/auth"
)

// UserRoutes: r sudah di belakang AuthJWT; semua endpoint khusus admin.
// Base: /api/users
func UserRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger) {
	h := controller.NewUserController(db, log)

	g := r.Group("/users", authMw.OnlyRoles("Only administrators can manage users", model.RoleAdmin))
	g.Get("/", h.List)
	g.Get("/:id", h.Get)
	g.Patch("/:id", h.UpdateAccess)
	g.Post("/:id/reset-password", h.ResetPassword)
}
