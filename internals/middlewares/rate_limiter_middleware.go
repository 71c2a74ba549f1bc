package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "quizcourse_backend/internals/helpers"
)

func newLimiter(max int, exp time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: exp,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter for every endpoint
func GlobalRateLimiter() fiber.Handler {
	return newLimiter(100, time.Minute, "Muitas requisições. Tente novamente mais tarde.")
}

// Stricter limiter for login routes
func LoginRateLimiter() fiber.Handler {
	return newLimiter(5, time.Minute, "Muitas tentativas de login. Aguarde alguns instantes.")
}

func RegisterRateLimiter() fiber.Handler {
	return newLimiter(3, 5*time.Minute, "Muitas tentativas de cadastro. Aguarde alguns minutos.")
}
