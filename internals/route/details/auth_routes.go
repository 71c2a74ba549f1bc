package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "quizcourse_backend/internals/features/users/auth/route"
)

// AuthRoutes mounts /auth (login/register are public, the rest authenticates itself).
func AuthRoutes(app fiber.Router, db *gorm.DB) {
	authRoute.AuthRoutes(app, db)
}
