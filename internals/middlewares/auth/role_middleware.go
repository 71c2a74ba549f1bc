package auth

import (
	"github.com/gofiber/fiber/v2"

	helperAuth "quizcourse_backend/internals/helpers/auth"
)

// RoleMiddlewareWithCustomError lets the request through only for allowedRoles
// (admin always passes). Must run after AuthMiddleware.
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := helperAuth.CallerFromCtx(c)
		if err != nil {
			return err
		}

		decision := helperAuth.Evaluate(helperAuth.Policy{
			CallerID:   caller.ID,
			CallerRole: caller.Role,
			Roles:      allowedRoles,
		})
		if decision.Allowed() {
			return c.Next()
		}

		if customForbiddenMessage == "" {
			customForbiddenMessage = helperAuth.MsgForbidden
		}
		return fiber.NewError(fiber.StatusForbidden, customForbiddenMessage)
	}
}

func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}
