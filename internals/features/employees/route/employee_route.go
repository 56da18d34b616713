package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"collegeaccounts_backend/internals/features/employees/controller"
	"collegeaccounts_backend/internals/features/employees/service"
	"collegeaccounts_backend/internals/helpers/cache"
)

// EmployeeRoutes: r sudah di belakang AuthJWT.
// Base: /api/employees
func EmployeeRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger, store cache.Store) {
	h := controller.NewEmployeeController(service.NewEmployeeService(db, log, store))

	g := r.Group("/employees")
	g.Get("/categories", h.Categories)
	g.Get("/:category", h.List)
	g.Post("/:category", h.Create)
	g.Get("/:category/:id", h.Get)
	g.Put("/:category/:id", h.Update)
	g.Delete("/:category/:id", h.Delete)
}
