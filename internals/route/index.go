package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMiddleware "quizcourse_backend/internals/middlewares/auth"
	routeDetails "quizcourse_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes mounts every route. Everything under /api requires a valid token.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	log.Println("[INFO] Setting up PRIVATE group...")
	api := app.Group("/api", authMiddleware.AuthMiddleware(db))

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserRoutes(api, db)

	log.Println("[INFO] Mounting Question routes...")
	routeDetails.QuestionRoutes(api, db)

	log.Println("[INFO] Mounting Course routes...")
	routeDetails.CourseRoutes(api, db)
}
