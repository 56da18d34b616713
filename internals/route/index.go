package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"collegeaccounts_backend/internals/configs"
	dashboardRoute "collegeaccounts_backend/internals/features/dashboard/route"
	employeeRoute "collegeaccounts_backend/internals/features/employees/route"
	examFeeRoute "collegeaccounts_backend/internals/features/finance/exam_fees/route"
	authRoute "collegeaccounts_backend/internals/features/users/auth/route"
	authService "collegeaccounts_backend/internals/features/users/auth/service"
	userRoute "collegeaccounts_backend/internals/features/users/user/route"
	"collegeaccounts_backend/internals/helpers/cache"
	"collegeaccounts_backend/internals/middlewares"
	authMw "collegeaccounts_backend/internals/middlewares/auth"
)

// SetupRoutes memasang semua route. Hanya /api/auth/login yang publik,
// sisanya di belakang AuthJWT (token yang sudah logout ditolak).
func SetupRoutes(app *fiber.App, db *gorm.DB, log *zap.Logger, store cache.Store) {
	BaseRoutes(app, db)

	auth := authService.NewAuthService(db, log, configs.JWTSecret, configs.JWTAccessTTL)
	protected := authMw.AuthJWT(authMw.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		BlacklistChecker:    auth.IsRevoked,
		AllowCookieFallback: true,
	})

	api := app.Group("/api")

	log.Info("mounting auth routes")
	authRoute.AuthRoutes(api, auth, protected, middlewares.LimiterStorage(store))

	api.Use("/exams", protected)
	api.Use("/employees", protected)
	api.Use("/dashboard", protected)
	api.Use("/users", protected)

	log.Info("mounting exam fee routes")
	examFeeRoute.ExamFeeRoutes(api, db, log.Named("exam_fees"), store)

	log.Info("mounting employee routes")
	employeeRoute.EmployeeRoutes(api, db, log.Named("employees"), store)

	log.Info("mounting dashboard routes")
	dashboardRoute.DashboardRoutes(api, db, log.Named("dashboard"), store, configs.DashboardCacheTTL)

	log.Info("mounting user admin routes")
	userRoute.UserRoutes(api, db, log.Named("users"))
}
