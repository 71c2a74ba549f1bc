package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/taxonomy/dto"
	"quizcourse_backend/internals/features/taxonomy/service"
	helper "quizcourse_backend/internals/helpers"
)

type BancaController struct {
	Svc *service.BancaService
}

func NewBancaController(db *gorm.DB) *BancaController {
	return &BancaController{Svc: service.NewBancaService(db)}
}

// GET /api/bancas?q=
func (ctl *BancaController) List(c *fiber.Ctx) error {
	var q dto.ListTaxonomyQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	p, err := helper.ParseListParams(c, dto.BancaSortColumns, "name")
	if err != nil {
		return err
	}
	rows, total, err := ctl.Svc.List(c.UserContext(), q, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, rows, total)
}

// GET /api/bancas/:id
func (ctl *BancaController) GetByID(c *fiber.Ctx) error {
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

// POST /api/bancas (admin)
func (ctl *BancaController) Create(c *fiber.Ctx) error {
	var body dto.CreateBancaRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	row, err := ctl.Svc.Create(c.UserContext(), body)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, row)
}

// PATCH /api/bancas/:id (admin)
func (ctl *BancaController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	if _, err := ctl.Svc.FindByID(c.UserContext(), id); err != nil {
		return err
	}
	var body dto.UpdateBancaRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	row, err := ctl.Svc.Update(c.UserContext(), id, body)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, row)
}

// DELETE /api/bancas/:id (admin)
func (ctl *BancaController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, service.MsgBancaDeleted)
}
