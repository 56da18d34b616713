package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"collegeaccounts_backend/internals/configs"
	"collegeaccounts_backend/internals/helpers/cache"
	"collegeaccounts_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global (urutan penting:
// recover paling luar, lalu request-id/log, cors, limiter).
func SetupMiddlewares(app *fiber.App, log *zap.Logger, store cache.Store) {
	app.Use(RecoveryMiddleware(log))
	app.Use(logger.RequestLogger(log.Named("http"), configs.GetEnvDuration("REQUEST_TIMEOUT", 5*time.Second)))
	app.Use(CorsMiddleware(configs.CORSOrigins))
	app.Use(GlobalRateLimiter(LimiterStorage(store)))
}
