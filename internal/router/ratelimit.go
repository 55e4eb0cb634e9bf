package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/aQ-codes/expense-tracker-backend/internal/respond"
)

// RateLimitAuth limits the credential endpoints per client IP.
func RateLimitAuth(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return respond.Fail(c, fiber.StatusTooManyRequests, "Too many requests. Please try again later.")
		},
	})
}
