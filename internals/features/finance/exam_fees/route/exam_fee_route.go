package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"collegeaccounts_backend/internals/features/finance/exam_fees/controller"
	"collegeaccounts_backend/internals/features/finance/exam_fees/service"
	"collegeaccounts_backend/internals/helpers/cache"
)

// ExamFeeRoutes: r sudah di belakang AuthJWT.
// Base: /api/exams
func ExamFeeRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger, store cache.Store) {
	h := controller.NewExamFeeController(service.NewExamFeeService(db, log, store))

	g := r.Group("/exams")
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Post("/preview", h.Preview)
	g.Get("/catalog", h.Catalog)
	g.Get("/export", h.Export)
	g.Get("/:id", h.Get)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}
