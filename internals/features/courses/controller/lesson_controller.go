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

type LessonController struct {
	Svc *service.LessonService
}

func NewLessonController(db *gorm.DB) *LessonController {
	return &LessonController{Svc: service.NewLessonService(db)}
}

// GET /api/lessons?module_id=
func (lc *LessonController) List(c *fiber.Ctx) error {
	var q dto.ListLessonsQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	p, err := helper.ParseListParams(c, dto.LessonSortColumns, "order")
	if err != nil {
		return err
	}
	if c.Query("order") == "" {
		p.Order = "asc"
	}
	rows, total, err := lc.Svc.List(c.UserContext(), q, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, rows, total)
}

func (lc *LessonController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	row, err := lc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, row)
}

// POST /api/lessons (instructor of the module's course, or admin)
func (lc *LessonController) Create(c *fiber.Ctx) error {
	var body dto.CreateLessonRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	moduleID, err := helper.ParseUUIDField("lesson_module_id", body.LessonModuleID)
	if err != nil {
		return err
	}
	mod, err := lc.Svc.Modules.FindByID(c.UserContext(), moduleID)
	if err != nil {
		return err
	}
	owner, err := lc.Svc.Modules.Instructor(c.UserContext(), mod)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, owner); err != nil {
		return err
	}
	row, err := lc.Svc.Create(c.UserContext(), mod, body)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, row)
}

func (lc *LessonController) loadOwned(c *fiber.Ctx) (*model.LessonModel, error) {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return nil, err
	}
	current, err := lc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return nil, err
	}
	owner, err := lc.Svc.Instructor(c.UserContext(), current)
	if err != nil {
		return nil, err
	}
	if err := helperAuth.Authorize(c, owner); err != nil {
		return nil, err
	}
	return current, nil
}

func (lc *LessonController) Update(c *fiber.Ctx) error {
	current, err := lc.loadOwned(c)
	if err != nil {
		return err
	}
	var body dto.UpdateLessonRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	row, err := lc.Svc.Update(c.UserContext(), current.LessonID, body)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, row)
}

func (lc *LessonController) Delete(c *fiber.Ctx) error {
	current, err := lc.loadOwned(c)
	if err != nil {
		return err
	}
	if err := lc.Svc.Delete(c.UserContext(), current.LessonID); err != nil {
		return err
	}
	return helper.JsonDeleted(c, service.MsgLessonDeleted)
}
