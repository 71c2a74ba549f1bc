package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizcourse_backend/internals/constants"
	userController "quizcourse_backend/internals/features/users/user/controller"
	authMiddleware "quizcourse_backend/internals/middlewares/auth"
)

// UserRoutes mounts /users on an authenticated router.
func UserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("a gestão de usuários"), constants.RoleAdmin)

	users := r.Group("/users")
	users.Get("/", adminOnly, ctrl.List)          // GET    /api/users?role=&is_active=&q=
	users.Post("/", adminOnly, ctrl.Create)       // POST   /api/users
	users.Get("/:id", ctrl.GetByID)               // GET    /api/users/:id
	users.Patch("/:id", ctrl.Update)              // PATCH  /api/users/:id
	users.Patch("/:id/avatar", ctrl.UploadAvatar) // PATCH  /api/users/:id/avatar (multipart)
	users.Delete("/:id", adminOnly, ctrl.Delete)  // DELETE /api/users/:id
}
