package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"collegeaccounts_backend/internals/features/dashboard/controller"
	"collegeaccounts_backend/internals/features/dashboard/service"
	"collegeaccounts_backend/internals/helpers/cache"
)

// DashboardRoutes: r sudah di belakang AuthJWT.
// Base: /api/dashboard
func DashboardRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger, store cache.Store, ttl time.Duration) {
	h := controller.NewDashboardController(service.NewDashboardService(db, log, store, ttl))

	g := r.Group("/dashboard")
	g.Get("/summary", h.Summary)
}
