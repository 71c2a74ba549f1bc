package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/taxonomy/dto"
	"quizcourse_backend/internals/features/taxonomy/model"
	helper "quizcourse_backend/internals/helpers"
)

const (
	MsgBancaNotFound  = "Banca não encontrada."
	MsgBancaDeleted   = "Banca removida com sucesso."
	MsgBancaDuplicate = "Já existe uma banca com este nome."
)

type BancaService struct {
	DB *gorm.DB
}

func NewBancaService(db *gorm.DB) *BancaService {
	return &BancaService{DB: db}
}

func (s *BancaService) List(ctx context.Context, q dto.ListTaxonomyQuery, p helper.ListParams) ([]model.BancaModel, int64, error) {
	return listNamed[model.BancaModel](ctx, s.DB, "banca_name", q.Q, p)
}

func (s *BancaService) FindByID(ctx context.Context, id uuid.UUID) (*model.BancaModel, error) {
	return helper.FindByID[model.BancaModel](ctx, s.DB, id, MsgBancaNotFound)
}

func (s *BancaService) Create(ctx context.Context, req dto.CreateBancaRequest) (*model.BancaModel, error) {
	m := model.BancaModel{BancaName: req.BancaName}
	if req.BancaAcronym != nil && *req.BancaAcronym != "" {
		m.BancaAcronym = req.BancaAcronym
	}
	if req.BancaWebsite != nil && *req.BancaWebsite != "" {
		m.BancaWebsite = req.BancaWebsite
	}
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, helper.Conflict(MsgBancaDuplicate)
		}
		return nil, err
	}
	return &m, nil
}

func (s *BancaService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateBancaRequest) (*model.BancaModel, error) {
	if err := helper.UpdateByID[model.BancaModel](ctx, s.DB, id, req.ToUpdates(), MsgBancaNotFound); err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, helper.Conflict(MsgBancaDuplicate)
		}
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// Delete detaches questions from the banca (question_banca_id = NULL).
func (s *BancaService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("UPDATE questions SET question_banca_id = NULL WHERE question_banca_id = ?", id).Error; err != nil {
			return err
		}
		return helper.DeleteByID[model.BancaModel](ctx, tx, id, MsgBancaNotFound)
	})
}
