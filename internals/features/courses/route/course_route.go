package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizcourse_backend/internals/constants"
	"quizcourse_backend/internals/features/courses/controller"
	authMiddleware "quizcourse_backend/internals/middlewares/auth"
)

// CourseRoutes mounts courses and the learning resources hanging off them.
func CourseRoutes(r fiber.Router, db *gorm.DB) {
	teacherOrAdmin := authMiddleware.OnlyRoles(
		constants.RoleErrorTeacher("a criação de cursos"),
		constants.TeacherAndAbove...,
	)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("a remoção de matrículas"), constants.RoleAdmin)

	cc := controller.NewCourseController(db)
	courses := r.Group("/courses")
	courses.Get("/", cc.List)
	courses.Get("/:id", cc.GetByID)
	courses.Get("/:id/rating", cc.Rating)
	courses.Post("/", teacherOrAdmin, cc.Create)
	courses.Patch("/:id", cc.Update)
	courses.Patch("/:id/thumbnail", cc.UploadThumbnail)
	courses.Delete("/:id", cc.Delete)

	mc := controller.NewModuleController(db)
	modules := r.Group("/modules")
	modules.Get("/", mc.List)
	modules.Get("/:id", mc.GetByID)
	modules.Post("/", mc.Create)
	modules.Patch("/:id", mc.Update)
	modules.Delete("/:id", mc.Delete)

	lc := controller.NewLessonController(db)
	lessons := r.Group("/lessons")
	lessons.Get("/", lc.List)
	lessons.Get("/:id", lc.GetByID)
	lessons.Post("/", lc.Create)
	lessons.Patch("/:id", lc.Update)
	lessons.Delete("/:id", lc.Delete)

	ec := controller.NewEnrollmentController(db)
	enrollments := r.Group("/enrollments")
	enrollments.Get("/", ec.List)
	enrollments.Get("/:id", ec.GetByID)
	enrollments.Post("/", ec.Create)
	enrollments.Patch("/:id", ec.Update)
	enrollments.Delete("/:id", adminOnly, ec.Delete)

	pc := controller.NewProgressController(db)
	progress := r.Group("/progress")
	progress.Get("/", pc.List)
	progress.Get("/:id", pc.GetByID)
	progress.Post("/", pc.Create)
	progress.Patch("/:id", pc.Update)
	progress.Delete("/:id", pc.Delete)

	rc := controller.NewReviewController(db)
	reviews := r.Group("/reviews")
	reviews.Get("/", rc.List)
	reviews.Get("/:id", rc.GetByID)
	reviews.Post("/", rc.Create)
	reviews.Patch("/:id", rc.Update)
	reviews.Delete("/:id", rc.Delete)
}
