package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizcourse_backend/internals/constants"
	"quizcourse_backend/internals/features/questions/controller"
	authMiddleware "quizcourse_backend/internals/middlewares/auth"
)

// QuestionRoutes mounts questions, answers, answer-attempts and favorite-questions.
func QuestionRoutes(r fiber.Router, db *gorm.DB) {
	teacherOrAdmin := authMiddleware.OnlyRoles(
		constants.RoleErrorTeacher("a criação de questões"),
		constants.TeacherAndAbove...,
	)

	qc := controller.NewQuestionController(db)
	questions := r.Group("/questions")
	questions.Get("/", qc.List)
	questions.Get("/:id", qc.GetByID)
	questions.Post("/", teacherOrAdmin, qc.Create)
	questions.Patch("/:id", qc.Update)
	questions.Delete("/:id", qc.Delete)

	ac := controller.NewAnswerController(db)
	answers := r.Group("/answers")
	answers.Get("/", ac.List)
	answers.Get("/:id", ac.GetByID)
	answers.Post("/", ac.Create)
	answers.Patch("/:id", ac.Update)
	answers.Delete("/:id", ac.Delete)

	tc := controller.NewAttemptController(db)
	attempts := r.Group("/answer-attempts")
	attempts.Get("/", tc.List)
	attempts.Get("/:id", tc.GetByID)
	attempts.Post("/", tc.Create)
	attempts.Patch("/:id", tc.Update)
	attempts.Delete("/:id", tc.Delete)

	fc := controller.NewFavoriteController(db)
	favorites := r.Group("/favorite-questions")
	favorites.Get("/", fc.List)
	favorites.Get("/:id", fc.GetByID)
	favorites.Post("/", fc.Create)
	favorites.Delete("/:id", fc.Delete)
}
