package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseRoute "quizcourse_backend/internals/features/courses/route"
)

func CourseRoutes(api fiber.Router, db *gorm.DB) {
	courseRoute.CourseRoutes(api, db)
}
