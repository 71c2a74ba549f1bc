package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/courses/dto"
	"quizcourse_backend/internals/features/courses/model"
	helper "quizcourse_backend/internals/helpers"
)

const (
	MsgProgressNotFound  = "Progresso não encontrado."
	MsgProgressDeleted   = "Progresso removido com sucesso."
	MsgProgressDuplicate = "Já existe progresso registrado para esta aula."
)

type ProgressService struct {
	DB      *gorm.DB
	Lessons *LessonService
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{DB: db, Lessons: NewLessonService(db)}
}

func (s *ProgressService) List(ctx context.Context, ownerID *uuid.UUID, q dto.ListProgressQuery, p helper.ListParams) ([]model.ProgressModel, int64, error) {
	base := s.DB.WithContext(ctx).Model(&model.ProgressModel{})
	if ownerID != nil {
		base = base.Where("progress_user_id = ?", *ownerID)
	}
	if id := helper.ParseOptionalUUID(q.LessonID); id != nil {
		base = base.Where("progress_lesson_id = ?", *id)
	}
	if q.IsCompleted != nil {
		base = base.Where("progress_is_completed = ?", *q.IsCompleted)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.ProgressModel
	if err := p.Apply(base).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *ProgressService) FindByID(ctx context.Context, id uuid.UUID) (*model.ProgressModel, error) {
	return helper.FindByID[model.ProgressModel](ctx, s.DB, id, MsgProgressNotFound)
}

func (s *ProgressService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateProgressRequest) (*model.ProgressModel, error) {
	lessonID := helper.ParseOptionalUUID(req.ProgressLessonID)
	if lessonID == nil {
		return nil, helper.NotFound(MsgLessonNotFound)
	}
	if _, err := s.Lessons.FindByID(ctx, *lessonID); err != nil {
		return nil, err
	}
	p := model.ProgressModel{
		ProgressUserID:   userID,
		ProgressLessonID: *lessonID,
	}
	if req.ProgressWatchedSec != nil {
		p.ProgressWatchedSec = *req.ProgressWatchedSec
	}
	if req.ProgressIsCompleted != nil && *req.ProgressIsCompleted {
		now := time.Now()
		p.ProgressIsCompleted = true
		p.ProgressCompletedAt = &now
	}
	if err := s.DB.WithContext(ctx).Create(&p).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, helper.Conflict(MsgProgressDuplicate)
		}
		return nil, err
	}
	return &p, nil
}

func (s *ProgressService) Update(ctx context.Context, current *model.ProgressModel, req dto.UpdateProgressRequest) (*model.ProgressModel, error) {
	updates := map[string]any{}
	if req.ProgressWatchedSec != nil {
		updates["progress_watched_sec"] = *req.ProgressWatchedSec
	}
	if req.ProgressIsCompleted != nil {
		updates["progress_is_completed"] = *req.ProgressIsCompleted
		switch {
		case *req.ProgressIsCompleted && !current.ProgressIsCompleted:
			updates["progress_completed_at"] = time.Now()
		case !*req.ProgressIsCompleted:
			updates["progress_completed_at"] = nil
		}
	}
	if err := helper.UpdateByID[model.ProgressModel](ctx, s.DB, current.ProgressID, updates, MsgProgressNotFound); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, current.ProgressID)
}

func (s *ProgressService) Delete(ctx context.Context, id uuid.UUID) error {
	return helper.DeleteByID[model.ProgressModel](ctx, s.DB, id, MsgProgressNotFound)
}
