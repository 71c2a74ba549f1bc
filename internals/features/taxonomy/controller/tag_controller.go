package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/taxonomy/dto"
	"quizcourse_backend/internals/features/taxonomy/service"
	helper "quizcourse_backend/internals/helpers"
)

type TagController struct {
	Svc *service.TagService
}

func NewTagController(db *gorm.DB) *TagController {
	return &TagController{Svc: service.NewTagService(db)}
}

// GET /api/tags?q=
func (ctl *TagController) List(c *fiber.Ctx) error {
	var q dto.ListTaxonomyQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	p, err := helper.ParseListParams(c, dto.TagSortColumns, "name")
	if err != nil {
		return err
	}
	rows, total, err := ctl.Svc.List(c.UserContext(), q, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, rows, total)
}

// GET /api/tags/:id
func (ctl *TagController) GetByID(c *fiber.Ctx) error {
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

// POST /api/tags (admin)
func (ctl *TagController) Create(c *fiber.Ctx) error {
	var body dto.CreateTagRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	row, err := ctl.Svc.Create(c.UserContext(), body)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, row)
}

// PATCH /api/tags/:id (admin)
func (ctl *TagController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	if _, err := ctl.Svc.FindByID(c.UserContext(), id); err != nil {
		return err
	}
	var body dto.UpdateTagRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	row, err := ctl.Svc.Update(c.UserContext(), id, body)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, row)
}

// DELETE /api/tags/:id (admin)
func (ctl *TagController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, service.MsgTagDeleted)
}
