package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"collegeaccounts_backend/internals/helpers/cache"
)

// LimiterStorage: counter limiter dibagi lewat redis kalau ada;
// nil = memory bawaan fiber (Nop tidak menyimpan apa pun, jadi tidak dipakai).
func LimiterStorage(store cache.Store) fiber.Storage {
	if rs, ok := store.(*cache.RedisStore); ok && rs != nil {
		return rs
	}
	return nil
}

func tooMany(message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"success":    false,
			"message":    message,
			"error_code": "TOO_MANY_REQUESTS",
		})
	}
}

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter(storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "rl:global:" + c.IP()
		},
		Storage:      storage,
		LimitReached: tooMany("Too many requests. Please try again later."),
	})
}

// Rate limiter untuk login route (lebih ketat)
func LoginRateLimiter(storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "rl:login:" + c.IP()
		},
		Storage:      storage,
		LimitReached: tooMany("Too many login attempts. Please wait a moment."),
	})
}
