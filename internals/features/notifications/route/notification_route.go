package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizcourse_backend/internals/constants"
	"quizcourse_backend/internals/features/notifications/controller"
	authMiddleware "quizcourse_backend/internals/middlewares/auth"
)

func NotificationRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewNotificationController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("o envio de notificações"), constants.RoleAdmin)

	g := r.Group("/notifications")
	g.Get("/", ctrl.List)
	g.Patch("/read-all", ctrl.ReadAll) // before /:id
	g.Get("/:id", ctrl.GetByID)
	g.Post("/", adminOnly, ctrl.Create)
	g.Patch("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
