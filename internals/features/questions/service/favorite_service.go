package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/questions/dto"
	"quizcourse_backend/internals/features/questions/model"
	helper "quizcourse_backend/internals/helpers"
)

const (
	MsgFavoriteNotFound = "Favorito não encontrado."
	MsgFavoriteDeleted  = "Questão removida dos favoritos."
)

type FavoriteService struct {
	DB *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{DB: db}
}

func (s *FavoriteService) List(ctx context.Context, ownerID *uuid.UUID, q dto.ListFavoritesQuery, p helper.ListParams) ([]model.FavoriteQuestionModel, int64, error) {
	base := s.DB.WithContext(ctx).Model(&model.FavoriteQuestionModel{})
	if ownerID != nil {
		base = base.Where("favorite_user_id = ?", *ownerID)
	}
	if id := helper.ParseOptionalUUID(q.QuestionID); id != nil {
		base = base.Where("favorite_question_id = ?", *id)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.FavoriteQuestionModel
	if err := p.Apply(base).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *FavoriteService) FindByID(ctx context.Context, id uuid.UUID) (*model.FavoriteQuestionModel, error) {
	return helper.FindByID[model.FavoriteQuestionModel](ctx, s.DB, id, MsgFavoriteNotFound)
}

// Create is idempotent: favouriting twice returns the existing row with created=false.
func (s *FavoriteService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateFavoriteRequest) (*model.FavoriteQuestionModel, bool, error) {
	questionID, err := uuid.Parse(req.FavoriteQuestionID)
	if err != nil {
		return nil, false, helper.NewValidationError(helper.FieldError{Field: "favorite_question_id", Message: "favorite_question_id deve ser um UUID válido."})
	}
	if err := ensureOne(ctx, s.DB, model.QuestionModel{}.TableName(), "question_id", &questionID, MsgQuestionNotFound); err != nil {
		return nil, false, err
	}

	var existing model.FavoriteQuestionModel
	err = s.DB.WithContext(ctx).
		Where("favorite_user_id = ? AND favorite_question_id = ?", userID, questionID).
		Take(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	f := model.FavoriteQuestionModel{FavoriteUserID: userID, FavoriteQuestionID: questionID}
	if err := s.DB.WithContext(ctx).Create(&f).Error; err != nil {
		// concurrent insert of the same pair
		if helper.IsUniqueViolation(err) {
			if err := s.DB.WithContext(ctx).
				Where("favorite_user_id = ? AND favorite_question_id = ?", userID, questionID).
				Take(&existing).Error; err != nil {
				return nil, false, err
			}
			return &existing, false, nil
		}
		return nil, false, err
	}
	return &f, true, nil
}

func (s *FavoriteService) Delete(ctx context.Context, id uuid.UUID) error {
	return helper.DeleteByID[model.FavoriteQuestionModel](ctx, s.DB, id, MsgFavoriteNotFound)
}
