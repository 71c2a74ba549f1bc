package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	questionRoute "quizcourse_backend/internals/features/questions/route"
	taxonomyRoute "quizcourse_backend/internals/features/taxonomy/route"
)

// QuestionRoutes mounts the question bank and its classification tables.
func QuestionRoutes(api fiber.Router, db *gorm.DB) {
	taxonomyRoute.TaxonomyRoutes(api, db)
	questionRoute.QuestionRoutes(api, db)
}
