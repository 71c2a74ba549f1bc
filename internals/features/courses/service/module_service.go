package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/courses/dto"
	"quizcourse_backend/internals/features/courses/model"
	helper "quizcourse_backend/internals/helpers"
)

const (
	MsgModuleNotFound = "Módulo não encontrado."
	MsgModuleDeleted  = "Módulo removido com sucesso."
)

type ModuleService struct {
	DB      *gorm.DB
	Courses *CourseService
}

func NewModuleService(db *gorm.DB) *ModuleService {
	return &ModuleService{DB: db, Courses: NewCourseService(db)}
}

func (s *ModuleService) List(ctx context.Context, q dto.ListModulesQuery, p helper.ListParams) ([]model.ModuleModel, int64, error) {
	base := s.DB.WithContext(ctx).Model(&model.ModuleModel{})
	if id := helper.ParseOptionalUUID(q.CourseID); id != nil {
		base = base.Where("module_course_id = ?", *id)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.ModuleModel
	if err := p.Apply(base).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *ModuleService) FindByID(ctx context.Context, id uuid.UUID) (*model.ModuleModel, error) {
	return helper.FindByID[model.ModuleModel](ctx, s.DB, id, MsgModuleNotFound)
}

// Instructor returns the owner of the module's course.
func (s *ModuleService) Instructor(ctx context.Context, m *model.ModuleModel) (uuid.UUID, error) {
	course, err := s.Courses.FindByID(ctx, m.ModuleCourseID)
	if err != nil {
		return uuid.Nil, err
	}
	return course.CourseInstructorID, nil
}

func (s *ModuleService) Create(ctx context.Context, course *model.CourseModel, req dto.CreateModuleRequest) (*model.ModuleModel, error) {
	m := model.ModuleModel{
		ModuleCourseID: course.CourseID,
		ModuleTitle:    req.ModuleTitle,
	}
	if req.ModuleDescription != nil && *req.ModuleDescription != "" {
		m.ModuleDescription = req.ModuleDescription
	}
	if req.ModuleOrder != nil {
		m.ModuleOrder = *req.ModuleOrder
	} else {
		last := -1
		if err := s.DB.WithContext(ctx).Model(&model.ModuleModel{}).
			Where("module_course_id = ?", course.CourseID).
			Select("COALESCE(MAX(module_order), -1)").Scan(&last).Error; err != nil {
			return nil, err
		}
		m.ModuleOrder = last + 1
	}
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *ModuleService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateModuleRequest) (*model.ModuleModel, error) {
	if err := helper.UpdateByID[model.ModuleModel](ctx, s.DB, id, req.ToUpdates(), MsgModuleNotFound); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// Delete drops the module with its lessons and their progress rows.
func (s *ModuleService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM progress WHERE progress_lesson_id IN (SELECT lesson_id FROM lessons WHERE lesson_module_id = ?)", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM lessons WHERE lesson_module_id = ?", id).Error; err != nil {
			return err
		}
		return helper.DeleteByID[model.ModuleModel](ctx, tx, id, MsgModuleNotFound)
	})
}
