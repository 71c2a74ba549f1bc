package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/taxonomy/dto"
	"quizcourse_backend/internals/features/taxonomy/service"
	helper "quizcourse_backend/internals/helpers"
)

type TechnologyController struct {
	Svc *service.TechnologyService
}

func NewTechnologyController(db *gorm.DB) *TechnologyController {
	return &TechnologyController{Svc: service.NewTechnologyService(db)}
}

// GET /api/technologies?q=
func (ctl *TechnologyController) List(c *fiber.Ctx) error {
	var q dto.ListTaxonomyQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	p, err := helper.ParseListParams(c, dto.TechnologySortColumns, "name")
	if err != nil {
		return err
	}
	rows, total, err := ctl.Svc.List(c.UserContext(), q, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, rows, total)
}

// GET /api/technologies/:id
func (ctl *TechnologyController) GetByID(c *fiber.Ctx) error {
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

// POST /api/technologies (admin)
func (ctl *TechnologyController) Create(c *fiber.Ctx) error {
	var body dto.CreateTechnologyRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	row, err := ctl.Svc.Create(c.UserContext(), body)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, row)
}

// PATCH /api/technologies/:id (admin)
func (ctl *TechnologyController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	if _, err := ctl.Svc.FindByID(c.UserContext(), id); err != nil {
		return err
	}
	var body dto.UpdateTechnologyRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	row, err := ctl.Svc.Update(c.UserContext(), id, body)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, row)
}

// DELETE /api/technologies/:id (admin)
func (ctl *TechnologyController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, service.MsgTechnologyDeleted)
}
