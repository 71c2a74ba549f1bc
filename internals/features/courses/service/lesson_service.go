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
	MsgLessonNotFound = "Aula não encontrada."
	MsgLessonDeleted  = "Aula removida com sucesso."
)

type LessonService struct {
	DB      *gorm.DB
	Modules *ModuleService
}

func NewLessonService(db *gorm.DB) *LessonService {
	return &LessonService{DB: db, Modules: NewModuleService(db)}
}

func (s *LessonService) List(ctx context.Context, q dto.ListLessonsQuery, p helper.ListParams) ([]model.LessonModel, int64, error) {
	base := s.DB.WithContext(ctx).Model(&model.LessonModel{})
	if id := helper.ParseOptionalUUID(q.ModuleID); id != nil {
		base = base.Where("lesson_module_id = ?", *id)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.LessonModel
	if err := p.Apply(base).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *LessonService) FindByID(ctx context.Context, id uuid.UUID) (*model.LessonModel, error) {
	return helper.FindByID[model.LessonModel](ctx, s.DB, id, MsgLessonNotFound)
}

// Instructor resolves lesson -> module -> course owner.
func (s *LessonService) Instructor(ctx context.Context, l *model.LessonModel) (uuid.UUID, error) {
	mod, err := s.Modules.FindByID(ctx, l.LessonModuleID)
	if err != nil {
		return uuid.Nil, err
	}
	return s.Modules.Instructor(ctx, mod)
}

func (s *LessonService) Create(ctx context.Context, mod *model.ModuleModel, req dto.CreateLessonRequest) (*model.LessonModel, error) {
	m, err := req.ToModel(mod.ModuleID)
	if err != nil {
		return nil, err
	}
	if req.LessonOrder == nil {
		last := -1
		if err := s.DB.WithContext(ctx).Model(&model.LessonModel{}).
			Where("lesson_module_id = ?", mod.ModuleID).
			Select("COALESCE(MAX(lesson_order), -1)").Scan(&last).Error; err != nil {
			return nil, err
		}
		m.LessonOrder = last + 1
	}
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *LessonService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateLessonRequest) (*model.LessonModel, error) {
	updates, err := req.ToUpdates()
	if err != nil {
		return nil, err
	}
	if err := helper.UpdateByID[model.LessonModel](ctx, s.DB, id, updates, MsgLessonNotFound); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

func (s *LessonService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("progress_lesson_id = ?", id).Delete(&model.ProgressModel{}).Error; err != nil {
			return err
		}
		return helper.DeleteByID[model.LessonModel](ctx, tx, id, MsgLessonNotFound)
	})
}
