package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/courses/dto"
	"quizcourse_backend/internals/features/courses/service"
	helper "quizcourse_backend/internals/helpers"
	helperAuth "quizcourse_backend/internals/helpers/auth"
)

type CourseController struct {
	Svc *service.CourseService
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{Svc: service.NewCourseService(db)}
}

// GET /api/courses?instructor_id=&technology_id=&level=&is_published=&q=
func (cc *CourseController) List(c *fiber.Ctx) error {
	var q dto.ListCoursesQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	p, err := helper.ParseListParams(c, dto.CourseSortColumns, "created_at")
	if err != nil {
		return err
	}
	rows, total, err := cc.Svc.List(c.UserContext(), q, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, rows, total)
}

func (cc *CourseController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	row, err := cc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, row)
}

// GET /api/courses/:id/rating
func (cc *CourseController) Rating(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	out, err := cc.Svc.Rating(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, out)
}

// POST /api/courses (teacher/admin)
func (cc *CourseController) Create(c *fiber.Ctx) error {
	var body dto.CreateCourseRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	instructorID, err := helperAuth.ResolveSubject(c, cc.Svc.DB, helper.ParseOptionalUUIDPtr(body.CourseInstructorID))
	if err != nil {
		return err
	}
	row, err := cc.Svc.Create(c.UserContext(), instructorID, body)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, row)
}

// PATCH /api/courses/:id (instructor/admin)
func (cc *CourseController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	current, err := cc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, current.CourseInstructorID); err != nil {
		return err
	}
	var body dto.UpdateCourseRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	row, err := cc.Svc.Update(c.UserContext(), id, body)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, row)
}

// PATCH /api/courses/:id/thumbnail (instructor/admin, multipart field "thumbnail")
func (cc *CourseController) UploadThumbnail(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	current, err := cc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, current.CourseInstructorID); err != nil {
		return err
	}

	fh, err := c.FormFile("thumbnail")
	if err != nil {
		return helper.NewValidationError(helper.FieldError{Field: "thumbnail", Message: "Arquivo de imagem é obrigatório."})
	}
	url, err := helper.SaveImageAsWebP(fh, "thumbnails")
	if err != nil {
		return err
	}
	updated, old, err := cc.Svc.SetThumbnail(c.UserContext(), id, url)
	if err != nil {
		helper.RemoveUploaded(url)
		return err
	}
	helper.RemoveUploaded(old)
	return helper.JsonUpdated(c, updated)
}

// DELETE /api/courses/:id (instructor/admin)
func (cc *CourseController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	current, err := cc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, current.CourseInstructorID); err != nil {
		return err
	}
	if err := cc.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	if current.CourseThumbnailURL != nil {
		helper.RemoveUploaded(*current.CourseThumbnailURL)
	}
	return helper.JsonDeleted(c, service.MsgCourseDeleted)
}
