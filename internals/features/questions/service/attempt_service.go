package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/questions/dto"
	"quizcourse_backend/internals/features/questions/model"
	helper "quizcourse_backend/internals/helpers"
)

const (
	MsgAttemptNotFound = "Tentativa não encontrada."
	MsgAttemptDeleted  = "Tentativa removida com sucesso."
)

type AttemptService struct {
	DB      *gorm.DB
	Answers *AnswerService
}

func NewAttemptService(db *gorm.DB) *AttemptService {
	return &AttemptService{DB: db, Answers: NewAnswerService(db)}
}

func (s *AttemptService) List(ctx context.Context, ownerID *uuid.UUID, q dto.ListAttemptsQuery, p helper.ListParams) ([]model.AnswerAttemptModel, int64, error) {
	base := s.DB.WithContext(ctx).Model(&model.AnswerAttemptModel{})
	if ownerID != nil {
		base = base.Where("attempt_user_id = ?", *ownerID)
	}
	if id := helper.ParseOptionalUUID(q.AnswerID); id != nil {
		base = base.Where("attempt_answer_id = ?", *id)
	}
	if q.IsCorrect != nil {
		base = base.Where("attempt_is_correct = ?", *q.IsCorrect)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.AnswerAttemptModel
	if err := p.Apply(base).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *AttemptService) FindByID(ctx context.Context, id uuid.UUID) (*model.AnswerAttemptModel, error) {
	return helper.FindByID[model.AnswerAttemptModel](ctx, s.DB, id, MsgAttemptNotFound)
}

// Answer loads the answer an attempt is filed under ("Resposta não encontrada." when missing).
func (s *AttemptService) Answer(ctx context.Context, raw string) (*model.AnswerModel, error) {
	id := helper.ParseOptionalUUID(raw)
	if id == nil {
		return nil, helper.NotFound(MsgAnswerNotFound)
	}
	return s.Answers.FindByID(ctx, *id)
}

// Create stores an attempt for an answer the caller was already authorised on.
func (s *AttemptService) Create(ctx context.Context, answer *model.AnswerModel, req dto.CreateAttemptRequest) (*model.AnswerAttemptModel, error) {
	question, err := s.Answers.question(ctx, answer.AnswerQuestionID)
	if err != nil {
		return nil, err
	}
	optionID := ptrUUID(req.AttemptOptionID)
	correct, err := grade(ctx, s.DB, question, optionID, req.AttemptText, "attempt_option_id", "attempt_text")
	if err != nil {
		return nil, err
	}

	a := model.AnswerAttemptModel{
		AttemptAnswerID:     answer.AnswerID,
		AttemptUserID:       answer.AnswerUserID,
		AttemptOptionID:     optionID,
		AttemptIsCorrect:    correct,
		AttemptTimeSpentSec: req.AttemptTimeSpentSec,
	}
	if req.AttemptText != nil && *req.AttemptText != "" {
		a.AttemptText = req.AttemptText
	}
	if err := s.DB.WithContext(ctx).Create(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AttemptService) Update(ctx context.Context, current *model.AnswerAttemptModel, req dto.UpdateAttemptRequest) (*model.AnswerAttemptModel, error) {
	updates := map[string]any{}
	if req.AttemptTimeSpentSec != nil {
		updates["attempt_time_spent_sec"] = *req.AttemptTimeSpentSec
	}

	if req.AttemptOptionID != nil || req.AttemptText != nil {
		answer, err := s.Answers.FindByID(ctx, current.AttemptAnswerID)
		if err != nil {
			return nil, err
		}
		question, err := s.Answers.question(ctx, answer.AnswerQuestionID)
		if err != nil {
			return nil, err
		}
		optionID := current.AttemptOptionID
		if req.AttemptOptionID != nil {
			optionID = helper.ParseOptionalUUID(*req.AttemptOptionID)
			updates["attempt_option_id"] = uuidOrNil(optionID)
		}
		text := current.AttemptText
		if req.AttemptText != nil {
			text = req.AttemptText
			updates["attempt_text"] = stringOrNil(text)
		}
		correct, err := grade(ctx, s.DB, question, optionID, text, "attempt_option_id", "attempt_text")
		if err != nil {
			return nil, err
		}
		updates["attempt_is_correct"] = correct
	}

	if err := helper.UpdateByID[model.AnswerAttemptModel](ctx, s.DB, current.AttemptID, updates, MsgAttemptNotFound); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, current.AttemptID)
}

func (s *AttemptService) Delete(ctx context.Context, id uuid.UUID) error {
	return helper.DeleteByID[model.AnswerAttemptModel](ctx, s.DB, id, MsgAttemptNotFound)
}
