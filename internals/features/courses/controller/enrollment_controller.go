package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/courses/dto"
	"quizcourse_backend/internals/features/courses/service"
	helper "quizcourse_backend/internals/helpers"
	helperAuth "quizcourse_backend/internals/helpers/auth"
)

type EnrollmentController struct {
	Svc *service.EnrollmentService
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{Svc: service.NewEnrollmentService(db)}
}

// GET /api/enrollments (scoped to caller unless admin)
func (ec *EnrollmentController) List(c *fiber.Ctx) error {
	var q dto.ListEnrollmentsQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	owner, err := helperAuth.ResolveOwnerFilter(c, helper.ParseOptionalUUID(q.UserID))
	if err != nil {
		return err
	}
	p, err := helper.ParseListParams(c, dto.EnrollmentSortColumns, "enrolled_at")
	if err != nil {
		return err
	}
	rows, total, err := ec.Svc.List(c.UserContext(), owner, q, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, rows, total)
}

func (ec *EnrollmentController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	row, err := ec.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, row.EnrollmentUserID); err != nil {
		return err
	}
	return helper.JsonOK(c, row)
}

func (ec *EnrollmentController) Create(c *fiber.Ctx) error {
	var body dto.CreateEnrollmentRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	userID, err := helperAuth.ResolveSubject(c, ec.Svc.DB, helper.ParseOptionalUUIDPtr(body.EnrollmentUserID))
	if err != nil {
		return err
	}
	row, err := ec.Svc.Create(c.UserContext(), userID, body)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, row)
}

// PATCH /api/enrollments/:id (owner/admin, status only)
func (ec *EnrollmentController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	current, err := ec.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, current.EnrollmentUserID); err != nil {
		return err
	}
	var body dto.UpdateEnrollmentRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	row, err := ec.Svc.Update(c.UserContext(), id, body)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, row)
}

// DELETE /api/enrollments/:id (admin)
func (ec *EnrollmentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	if err := ec.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, service.MsgEnrollmentDeleted)
}
