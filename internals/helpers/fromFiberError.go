package helper

import "github.com/gofiber/fiber/v2"

// FromFiberError renders a *fiber.Error (from services, middlewares or
// fiber itself, e.g. 404 route / 405) with the standard error body.
func FromFiberError(c *fiber.Ctx, fe *fiber.Error) error {
	return JsonError(c, fe.Code, fe.Message)
}
