package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/courses/dto"
	"quizcourse_backend/internals/features/courses/service"
	helper "quizcourse_backend/internals/helpers"
	helperAuth "quizcourse_backend/internals/helpers/auth"
)

type ProgressController struct {
	Svc *service.ProgressService
}

func NewProgressController(db *gorm.DB) *ProgressController {
	return &ProgressController{Svc: service.NewProgressService(db)}
}

// GET /api/progress (scoped to caller unless admin)
func (pc *ProgressController) List(c *fiber.Ctx) error {
	var q dto.ListProgressQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	owner, err := helperAuth.ResolveOwnerFilter(c, helper.ParseOptionalUUID(q.UserID))
	if err != nil {
		return err
	}
	p, err := helper.ParseListParams(c, dto.ProgressSortColumns, "updated_at")
	if err != nil {
		return err
	}
	rows, total, err := pc.Svc.List(c.UserContext(), owner, q, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, rows, total)
}

func (pc *ProgressController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	row, err := pc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, row.ProgressUserID); err != nil {
		return err
	}
	return helper.JsonOK(c, row)
}

func (pc *ProgressController) Create(c *fiber.Ctx) error {
	var body dto.CreateProgressRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	userID, err := helperAuth.ResolveSubject(c, pc.Svc.DB, helper.ParseOptionalUUIDPtr(body.ProgressUserID))
	if err != nil {
		return err
	}
	row, err := pc.Svc.Create(c.UserContext(), userID, body)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, row)
}

func (pc *ProgressController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	current, err := pc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, current.ProgressUserID); err != nil {
		return err
	}
	var body dto.UpdateProgressRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	row, err := pc.Svc.Update(c.UserContext(), current, body)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, row)
}

func (pc *ProgressController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	current, err := pc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, current.ProgressUserID); err != nil {
		return err
	}
	if err := pc.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, service.MsgProgressDeleted)
}
