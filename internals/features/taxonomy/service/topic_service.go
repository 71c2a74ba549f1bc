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
	MsgTopicNotFound = "Tópico não encontrado."
	MsgTopicDeleted  = "Tópico removido com sucesso."
)

type TopicService struct {
	DB *gorm.DB
}

func NewTopicService(db *gorm.DB) *TopicService {
	return &TopicService{DB: db}
}

func (s *TopicService) List(ctx context.Context, q dto.ListTaxonomyQuery, p helper.ListParams) ([]model.TopicModel, int64, error) {
	return listNamed[model.TopicModel](ctx, s.DB, "topic_name", q.Q, p)
}

func (s *TopicService) FindByID(ctx context.Context, id uuid.UUID) (*model.TopicModel, error) {
	return helper.FindByID[model.TopicModel](ctx, s.DB, id, MsgTopicNotFound)
}

func (s *TopicService) Create(ctx context.Context, req dto.CreateTopicRequest) (*model.TopicModel, error) {
	preferred := ""
	if req.TopicSlug != nil {
		preferred = *req.TopicSlug
	}
	slug, err := uniqueSlug(ctx, s.DB, "topics", "topic_slug", preferred, req.TopicName, "topic_id", uuid.Nil)
	if err != nil {
		return nil, err
	}
	m := model.TopicModel{TopicName: req.TopicName, TopicSlug: slug}
	if req.TopicDescription != nil && *req.TopicDescription != "" {
		m.TopicDescription = req.TopicDescription
	}
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *TopicService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateTopicRequest) (*model.TopicModel, error) {
	updates := req.ToUpdates()
	if req.TopicSlug != nil {
		slug, err := uniqueSlug(ctx, s.DB, "topics", "topic_slug", *req.TopicSlug, "", "topic_id", id)
		if err != nil {
			return nil, err
		}
		updates["topic_slug"] = slug
	}
	if err := helper.UpdateByID[model.TopicModel](ctx, s.DB, id, updates, MsgTopicNotFound); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// Delete detaches questions from the topic (question_topic_id = NULL).
func (s *TopicService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("UPDATE questions SET question_topic_id = NULL WHERE question_topic_id = ?", id).Error; err != nil {
			return err
		}
		return helper.DeleteByID[model.TopicModel](ctx, tx, id, MsgTopicNotFound)
	})
}
