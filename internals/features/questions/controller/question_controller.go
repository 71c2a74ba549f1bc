package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/questions/dto"
	"quizcourse_backend/internals/features/questions/service"
	helper "quizcourse_backend/internals/helpers"
	helperAuth "quizcourse_backend/internals/helpers/auth"
)

type QuestionController struct {
	Svc *service.QuestionService
}

func NewQuestionController(db *gorm.DB) *QuestionController {
	return &QuestionController{Svc: service.NewQuestionService(db)}
}

// GET /api/questions
func (qc *QuestionController) List(c *fiber.Ctx) error {
	var q dto.ListQuestionsQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	p, err := helper.ParseListParams(c, dto.QuestionSortColumns, "created_at")
	if err != nil {
		return err
	}
	rows, total, err := qc.Svc.List(c.UserContext(), q, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, rows, total)
}

// GET /api/questions/:id
func (qc *QuestionController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	row, err := qc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, row)
}

// POST /api/questions (teacher/admin)
func (qc *QuestionController) Create(c *fiber.Ctx) error {
	var body dto.CreateQuestionRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	authorID, err := helperAuth.ResolveSubject(c, qc.Svc.DB, helper.ParseOptionalUUIDPtr(body.QuestionAuthorID))
	if err != nil {
		return err
	}
	row, err := qc.Svc.Create(c.UserContext(), authorID, body)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, row)
}

// PATCH /api/questions/:id (author/admin)
func (qc *QuestionController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	current, err := qc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, current.QuestionAuthorID); err != nil {
		return err
	}
	var body dto.UpdateQuestionRequest
	parseErr := helper.ParseBody(c, &body)
	if err := helper.MergeFieldErrors(parseErr, service.UpdateOptionErrors(current, &body)...); err != nil {
		return err
	}
	row, err := qc.Svc.Update(c.UserContext(), current, body)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, row)
}

// DELETE /api/questions/:id (author/admin)
func (qc *QuestionController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	current, err := qc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, current.QuestionAuthorID); err != nil {
		return err
	}
	if err := qc.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, service.MsgQuestionDeleted)
}
