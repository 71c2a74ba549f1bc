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
	MsgTechnologyNotFound = "Tecnologia não encontrada."
	MsgTechnologyDeleted  = "Tecnologia removida com sucesso."
)

type TechnologyService struct {
	DB *gorm.DB
}

func NewTechnologyService(db *gorm.DB) *TechnologyService {
	return &TechnologyService{DB: db}
}

func (s *TechnologyService) List(ctx context.Context, q dto.ListTaxonomyQuery, p helper.ListParams) ([]model.TechnologyModel, int64, error) {
	return listNamed[model.TechnologyModel](ctx, s.DB, "technology_name", q.Q, p)
}

func (s *TechnologyService) FindByID(ctx context.Context, id uuid.UUID) (*model.TechnologyModel, error) {
	return helper.FindByID[model.TechnologyModel](ctx, s.DB, id, MsgTechnologyNotFound)
}

func (s *TechnologyService) Create(ctx context.Context, req dto.CreateTechnologyRequest) (*model.TechnologyModel, error) {
	preferred := ""
	if req.TechnologySlug != nil {
		preferred = *req.TechnologySlug
	}
	slug, err := uniqueSlug(ctx, s.DB, "technologies", "technology_slug", preferred, req.TechnologyName, "technology_id", uuid.Nil)
	if err != nil {
		return nil, err
	}
	m := model.TechnologyModel{
		TechnologyName: req.TechnologyName,
		TechnologySlug: slug,
	}
	if req.TechnologyIconURL != nil && *req.TechnologyIconURL != "" {
		m.TechnologyIconURL = req.TechnologyIconURL
	}
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *TechnologyService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateTechnologyRequest) (*model.TechnologyModel, error) {
	updates := req.ToUpdates()
	if req.TechnologySlug != nil {
		slug, err := uniqueSlug(ctx, s.DB, "technologies", "technology_slug", *req.TechnologySlug, "", "technology_id", id)
		if err != nil {
			return nil, err
		}
		updates["technology_slug"] = slug
	}
	if err := helper.UpdateByID[model.TechnologyModel](ctx, s.DB, id, updates, MsgTechnologyNotFound); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// Delete unlinks questions and courses that point at the technology.
func (s *TechnologyService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM question_technologies WHERE technology_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("UPDATE courses SET course_technology_id = NULL WHERE course_technology_id = ?", id).Error; err != nil {
			return err
		}
		return helper.DeleteByID[model.TechnologyModel](ctx, tx, id, MsgTechnologyNotFound)
	})
}
