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
	MsgAnswerNotFound  = "Resposta não encontrada."
	MsgAnswerDeleted   = "Resposta removida com sucesso."
	MsgAnswerDuplicate = "Você já respondeu esta questão. Atualize a resposta existente."
)

type AnswerService struct {
	DB *gorm.DB
}

func NewAnswerService(db *gorm.DB) *AnswerService {
	return &AnswerService{DB: db}
}

// ownerID is already resolved by the caller (nil = all users, admin only).
func (s *AnswerService) List(ctx context.Context, ownerID *uuid.UUID, q dto.ListAnswersQuery, p helper.ListParams) ([]model.AnswerModel, int64, error) {
	base := s.DB.WithContext(ctx).Model(&model.AnswerModel{})
	if ownerID != nil {
		base = base.Where("answer_user_id = ?", *ownerID)
	}
	if id := helper.ParseOptionalUUID(q.QuestionID); id != nil {
		base = base.Where("answer_question_id = ?", *id)
	}
	if q.IsCorrect != nil {
		base = base.Where("answer_is_correct = ?", *q.IsCorrect)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.AnswerModel
	if err := p.Apply(base).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *AnswerService) FindByID(ctx context.Context, id uuid.UUID) (*model.AnswerModel, error) {
	return helper.FindByID[model.AnswerModel](ctx, s.DB, id, MsgAnswerNotFound)
}

// grade resolves the chosen option against the question and returns correctness.
// Essay questions need text and are never auto-graded.
func grade(ctx context.Context, db *gorm.DB, question *model.QuestionModel, optionID *uuid.UUID, text *string, optionField, textField string) (bool, error) {
	if question.QuestionType == model.QuestionTypeEssay {
		if text == nil || *text == "" {
			return false, helper.NewValidationError(helper.FieldError{Field: textField, Message: "Informe o texto da resposta para questões dissertativas."})
		}
		return false, nil
	}
	if optionID == nil {
		return false, helper.NewValidationError(helper.FieldError{Field: optionField, Message: "Selecione uma alternativa."})
	}
	opt, err := optionOf(ctx, db, question.QuestionID, optionID, optionField)
	if err != nil {
		return false, err
	}
	return opt.OptionIsCorrect, nil
}

func (s *AnswerService) question(ctx context.Context, id uuid.UUID) (*model.QuestionModel, error) {
	return helper.FindByID[model.QuestionModel](ctx, s.DB, id, MsgQuestionNotFound)
}

func (s *AnswerService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateAnswerRequest) (*model.AnswerModel, error) {
	questionID, err := uuid.Parse(req.AnswerQuestionID)
	if err != nil {
		return nil, helper.NewValidationError(helper.FieldError{Field: "answer_question_id", Message: "answer_question_id deve ser um UUID válido."})
	}
	question, err := s.question(ctx, questionID)
	if err != nil {
		return nil, err
	}
	optionID := ptrUUID(req.AnswerOptionID)
	correct, err := grade(ctx, s.DB, question, optionID, req.AnswerText, "answer_option_id", "answer_text")
	if err != nil {
		return nil, err
	}

	a := model.AnswerModel{
		AnswerUserID:     userID,
		AnswerQuestionID: questionID,
		AnswerOptionID:   optionID,
		AnswerIsCorrect:  correct,
	}
	if req.AnswerText != nil && *req.AnswerText != "" {
		a.AnswerText = req.AnswerText
	}
	if err := s.DB.WithContext(ctx).Create(&a).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, helper.Conflict(MsgAnswerDuplicate)
		}
		return nil, err
	}
	return &a, nil
}

// Update regrades the answer whenever the option or text changes.
func (s *AnswerService) Update(ctx context.Context, current *model.AnswerModel, req dto.UpdateAnswerRequest) (*model.AnswerModel, error) {
	if req.AnswerOptionID == nil && req.AnswerText == nil {
		return current, nil
	}
	question, err := s.question(ctx, current.AnswerQuestionID)
	if err != nil {
		return nil, err
	}

	optionID := current.AnswerOptionID
	if req.AnswerOptionID != nil {
		optionID = helper.ParseOptionalUUID(*req.AnswerOptionID)
	}
	text := current.AnswerText
	if req.AnswerText != nil {
		text = req.AnswerText
	}
	correct, err := grade(ctx, s.DB, question, optionID, text, "answer_option_id", "answer_text")
	if err != nil {
		return nil, err
	}

	updates := map[string]any{"answer_is_correct": correct}
	if req.AnswerOptionID != nil {
		updates["answer_option_id"] = uuidOrNil(optionID)
	}
	if req.AnswerText != nil {
		updates["answer_text"] = stringOrNil(text)
	}
	if err := helper.UpdateByID[model.AnswerModel](ctx, s.DB, current.AnswerID, updates, MsgAnswerNotFound); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, current.AnswerID)
}

// Delete drops the answer together with its attempts.
func (s *AnswerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attempt_answer_id = ?", id).Delete(&model.AnswerAttemptModel{}).Error; err != nil {
			return err
		}
		return helper.DeleteByID[model.AnswerModel](ctx, tx, id, MsgAnswerNotFound)
	})
}

func uuidOrNil(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}

func stringOrNil(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
