package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notificationRoute "quizcourse_backend/internals/features/notifications/route"
	userRoute "quizcourse_backend/internals/features/users/user/route"
)

// UserRoutes mounts account-scoped resources on the authenticated /api group.
func UserRoutes(api fiber.Router, db *gorm.DB) {
	userRoute.UserRoutes(api, db)
	notificationRoute.NotificationRoutes(api, db)
}
