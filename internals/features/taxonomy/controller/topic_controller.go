package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/taxonomy/dto"
	"quizcourse_backend/internals/features/taxonomy/service"
	helper "quizcourse_backend/internals/helpers"
)

type TopicController struct {
	Svc *service.TopicService
}

func NewTopicController(db *gorm.DB) *TopicController {
	return &TopicController{Svc: service.NewTopicService(db)}
}

// GET /api/topics?q=
func (ctl *TopicController) List(c *fiber.Ctx) error {
	var q dto.ListTaxonomyQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	p, err := helper.ParseListParams(c, dto.TopicSortColumns, "name")
	if err != nil {
		return err
	}
	rows, total, err := ctl.Svc.List(c.UserContext(), q, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, rows, total)
}

// GET /api/topics/:id
func (ctl *TopicController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	row, err := ctl.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, row)
}

// POST /api/topics (admin)
func (ctl *TopicController) Create(c *fiber.Ctx) error {
	var body dto.CreateTopicRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	row, err := ctl.Svc.Create(c.UserContext(), body)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, row)
}

// PATCH /api/topics/:id (admin)
func (ctl *TopicController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	if _, err := ctl.Svc.FindByID(c.UserContext(), id); err != nil {
		return err
	}
	var body dto.UpdateTopicRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	row, err := ctl.Svc.Update(c.UserContext(), id, body)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, row)
}

// DELETE /api/topics/:id (admin)
func (ctl *TopicController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, service.MsgTopicDeleted)
}
