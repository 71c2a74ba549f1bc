package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/questions/dto"
	"quizcourse_backend/internals/features/questions/service"
	helper "quizcourse_backend/internals/helpers"
	helperAuth "quizcourse_backend/internals/helpers/auth"
)

type AttemptController struct {
	Svc *service.AttemptService
}

func NewAttemptController(db *gorm.DB) *AttemptController {
	return &AttemptController{Svc: service.NewAttemptService(db)}
}

// GET /api/answer-attempts (scoped to caller unless admin)
func (ac *AttemptController) List(c *fiber.Ctx) error {
	var q dto.ListAttemptsQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	owner, err := helperAuth.ResolveOwnerFilter(c, helper.ParseOptionalUUID(q.UserID))
	if err != nil {
		return err
	}
	p, err := helper.ParseListParams(c, dto.AttemptSortColumns, "created_at")
	if err != nil {
		return err
	}
	rows, total, err := ac.Svc.List(c.UserContext(), owner, q, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, rows, total)
}

func (ac *AttemptController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	row, err := ac.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, row.AttemptUserID); err != nil {
		return err
	}
	return helper.JsonOK(c, row)
}

// POST /api/answer-attempts
// The answer must exist and belong to the caller (admins may file for anyone).
func (ac *AttemptController) Create(c *fiber.Ctx) error {
	var body dto.CreateAttemptRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	answer, err := ac.Svc.Answer(c.UserContext(), body.AttemptAnswerID)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, answer.AnswerUserID); err != nil {
		return err
	}
	row, err := ac.Svc.Create(c.UserContext(), answer, body)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, row)
}

func (ac *AttemptController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	current, err := ac.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, current.AttemptUserID); err != nil {
		return err
	}
	var body dto.UpdateAttemptRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	row, err := ac.Svc.Update(c.UserContext(), current, body)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, row)
}

func (ac *AttemptController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	current, err := ac.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, current.AttemptUserID); err != nil {
		return err
	}
	if err := ac.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, service.MsgAttemptDeleted)
}
