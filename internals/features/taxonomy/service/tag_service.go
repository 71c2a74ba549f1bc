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
	MsgTagNotFound = "Tag não encontrada."
	MsgTagDeleted  = "Tag removida com sucesso."
)

type TagService struct {
	DB *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{DB: db}
}

func (s *TagService) List(ctx context.Context, q dto.ListTaxonomyQuery, p helper.ListParams) ([]model.TagModel, int64, error) {
	return listNamed[model.TagModel](ctx, s.DB, "tag_name", q.Q, p)
}

func (s *TagService) FindByID(ctx context.Context, id uuid.UUID) (*model.TagModel, error) {
	return helper.FindByID[model.TagModel](ctx, s.DB, id, MsgTagNotFound)
}

func (s *TagService) Create(ctx context.Context, req dto.CreateTagRequest) (*model.TagModel, error) {
	preferred := ""
	if req.TagSlug != nil {
		preferred = *req.TagSlug
	}
	slug, err := uniqueSlug(ctx, s.DB, "tags", "tag_slug", preferred, req.TagName, "tag_id", uuid.Nil)
	if err != nil {
		return nil, err
	}
	m := model.TagModel{TagName: req.TagName, TagSlug: slug}
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *TagService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateTagRequest) (*model.TagModel, error) {
	updates := req.ToUpdates()
	if req.TagSlug != nil {
		slug, err := uniqueSlug(ctx, s.DB, "tags", "tag_slug", *req.TagSlug, "", "tag_id", id)
		if err != nil {
			return nil, err
		}
		updates["tag_slug"] = slug
	}
	if err := helper.UpdateByID[model.TagModel](ctx, s.DB, id, updates, MsgTagNotFound); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// Delete unlinks the tag from questions first.
func (s *TagService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM question_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return helper.DeleteByID[model.TagModel](ctx, tx, id, MsgTagNotFound)
	})
}
