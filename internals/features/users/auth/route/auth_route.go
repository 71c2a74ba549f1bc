package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/users/auth/controller"
	rateLimiter "quizcourse_backend/internals/middlewares"
	authMiddleware "quizcourse_backend/internals/middlewares/auth"
)

// AuthRoutes mounts /auth. Register and login are public and rate limited;
// the rest require a valid token.
func AuthRoutes(app fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	publicAuth := app.Group("/auth")
	publicAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	publicAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	publicAuth.Post("/login-google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)

	protectedAuth := app.Group("/auth", authMiddleware.AuthMiddleware(db))
	protectedAuth.Post("/logout", authController.Logout)
	protectedAuth.Get("/me", authController.Me)
	protectedAuth.Post("/change-password", authController.ChangePassword)
}
