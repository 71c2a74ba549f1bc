package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/questions/dto"
	"quizcourse_backend/internals/features/questions/service"
	helper "quizcourse_backend/internals/helpers"
	helperAuth "quizcourse_backend/internals/helpers/auth"
)

type AnswerController struct {
	Svc *service.AnswerService
}

func NewAnswerController(db *gorm.DB) *AnswerController {
	return &AnswerController{Svc: service.NewAnswerService(db)}
}

// GET /api/answers (scoped to caller unless admin)
func (ac *AnswerController) List(c *fiber.Ctx) error {
	var q dto.ListAnswersQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	owner, err := helperAuth.ResolveOwnerFilter(c, helper.ParseOptionalUUID(q.UserID))
	if err != nil {
		return err
	}
	p, err := helper.ParseListParams(c, dto.AnswerSortColumns, "created_at")
	if err != nil {
		return err
	}
	rows, total, err := ac.Svc.List(c.UserContext(), owner, q, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, rows, total)
}

func (ac *AnswerController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	row, err := ac.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, row.AnswerUserID); err != nil {
		return err
	}
	return helper.JsonOK(c, row)
}

// POST /api/answers
func (ac *AnswerController) Create(c *fiber.Ctx) error {
	var body dto.CreateAnswerRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	userID, err := helperAuth.ResolveSubject(c, ac.Svc.DB, helper.ParseOptionalUUIDPtr(body.AnswerUserID))
	if err != nil {
		return err
	}
	row, err := ac.Svc.Create(c.UserContext(), userID, body)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, row)
}

func (ac *AnswerController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	current, err := ac.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, current.AnswerUserID); err != nil {
		return err
	}
	var body dto.UpdateAnswerRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	row, err := ac.Svc.Update(c.UserContext(), current, body)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, row)
}

func (ac *AnswerController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	current, err := ac.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, current.AnswerUserID); err != nil {
		return err
	}
	if err := ac.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, service.MsgAnswerDeleted)
}
