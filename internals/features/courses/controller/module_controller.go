package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/courses/dto"
	"quizcourse_backend/internals/features/courses/model"
	"quizcourse_backend/internals/features/courses/service"
	helper "quizcourse_backend/internals/helpers"
	helperAuth "quizcourse_backend/internals/helpers/auth"
)

type ModuleController struct {
	Svc *service.ModuleService
}

func NewModuleController(db *gorm.DB) *ModuleController {
	return &ModuleController{Svc: service.NewModuleService(db)}
}

// GET /api/modules?course_id=
func (mc *ModuleController) List(c *fiber.Ctx) error {
	var q dto.ListModulesQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	p, err := helper.ParseListParams(c, dto.ModuleSortColumns, "order")
	if err != nil {
		return err
	}
	if c.Query("order") == "" {
		p.Order = "asc"
	}
	rows, total, err := mc.Svc.List(c.UserContext(), q, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, rows, total)
}

func (mc *ModuleController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	row, err := mc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, row)
}

// POST /api/modules (course instructor/admin)
func (mc *ModuleController) Create(c *fiber.Ctx) error {
	var body dto.CreateModuleRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	courseID, err := helper.ParseUUIDField("module_course_id", body.ModuleCourseID)
	if err != nil {
		return err
	}
	course, err := mc.Svc.Courses.FindByID(c.UserContext(), courseID)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, course.CourseInstructorID); err != nil {
		return err
	}
	row, err := mc.Svc.Create(c.UserContext(), course, body)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, row)
}

// loadOwned fetches the module and checks the caller owns its course.
func (mc *ModuleController) loadOwned(c *fiber.Ctx) (*model.ModuleModel, error) {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return nil, err
	}
	current, err := mc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return nil, err
	}
	owner, err := mc.Svc.Instructor(c.UserContext(), current)
	if err != nil {
		return nil, err
	}
	if err := helperAuth.Authorize(c, owner); err != nil {
		return nil, err
	}
	return current, nil
}

func (mc *ModuleController) Update(c *fiber.Ctx) error {
	current, err := mc.loadOwned(c)
	if err != nil {
		return err
	}
	var body dto.UpdateModuleRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	row, err := mc.Svc.Update(c.UserContext(), current.ModuleID, body)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, row)
}

func (mc *ModuleController) Delete(c *fiber.Ctx) error {
	current, err := mc.loadOwned(c)
	if err != nil {
		return err
	}
	if err := mc.Svc.Delete(c.UserContext(), current.ModuleID); err != nil {
		return err
	}
	return helper.JsonDeleted(c, service.MsgModuleDeleted)
}
