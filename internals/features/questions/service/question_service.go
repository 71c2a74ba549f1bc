package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/questions/dto"
	"quizcourse_backend/internals/features/questions/model"
	helper "quizcourse_backend/internals/helpers"
)

const (
	MsgQuestionNotFound = "Questão não encontrada."
	MsgQuestionDeleted  = "Questão removida com sucesso."
)

var questionPreloads = []string{"Options", "Tags", "Technologies"}

type QuestionService struct {
	DB *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{DB: db}
}

func applyQuestionFilters(db *gorm.DB, q dto.ListQuestionsQuery) *gorm.DB {
	if id := helper.ParseOptionalUUID(q.AuthorID); id != nil {
		db = db.Where("question_author_id = ?", *id)
	}
	if id := helper.ParseOptionalUUID(q.BancaID); id != nil {
		db = db.Where("question_banca_id = ?", *id)
	}
	if id := helper.ParseOptionalUUID(q.TopicID); id != nil {
		db = db.Where("question_topic_id = ?", *id)
	}
	if id := helper.ParseOptionalUUID(q.TagID); id != nil {
		db = db.Where("question_id IN (SELECT question_id FROM question_tags WHERE tag_id = ?)", *id)
	}
	if id := helper.ParseOptionalUUID(q.TechnologyID); id != nil {
		db = db.Where("question_id IN (SELECT question_id FROM question_technologies WHERE technology_id = ?)", *id)
	}
	if q.Difficulty != "" {
		db = db.Where("question_difficulty = ?", q.Difficulty)
	}
	if q.Type != "" {
		db = db.Where("question_type = ?", q.Type)
	}
	if q.Year != nil {
		db = db.Where("question_year = ?", *q.Year)
	}
	if q.IsPublished != nil {
		db = db.Where("question_is_published = ?", *q.IsPublished)
	}
	if s := strings.TrimSpace(q.Q); s != "" {
		db = db.Where("LOWER(question_statement) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	return db
}

func (s *QuestionService) List(ctx context.Context, q dto.ListQuestionsQuery, p helper.ListParams) ([]model.QuestionModel, int64, error) {
	base := applyQuestionFilters(s.DB.WithContext(ctx).Model(&model.QuestionModel{}), q).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.QuestionModel
	qry := p.Apply(base)
	for _, pl := range questionPreloads {
		qry = qry.Preload(pl)
	}
	if err := qry.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *QuestionService) FindByID(ctx context.Context, id uuid.UUID) (*model.QuestionModel, error) {
	return helper.FindByID[model.QuestionModel](ctx, s.DB, id, MsgQuestionNotFound, questionPreloads...)
}

// Create writes the question with its options and tag/technology links in one transaction.
func (s *QuestionService) Create(ctx context.Context, authorID uuid.UUID, req dto.CreateQuestionRequest) (*model.QuestionModel, error) {
	if err := checkOptions(req.QuestionType, req.Options); err != nil {
		return nil, err
	}
	bancaID := ptrUUID(req.QuestionBancaID)
	topicID := ptrUUID(req.QuestionTopicID)
	tagIDs := uniqueIDs(req.TagIDs)
	techIDs := uniqueIDs(req.TechnologyIDs)
	if err := ensureTaxonomy(ctx, s.DB, bancaID, topicID, tagIDs, techIDs); err != nil {
		return nil, err
	}

	q := model.QuestionModel{
		QuestionID:         uuid.New(),
		QuestionAuthorID:   authorID,
		QuestionStatement:  req.QuestionStatement,
		QuestionType:       req.QuestionType,
		QuestionDifficulty: req.QuestionDifficulty,
		QuestionYear:       req.QuestionYear,
		QuestionBancaID:    bancaID,
		QuestionTopicID:    topicID,
	}
	if req.QuestionExplanation != nil && *req.QuestionExplanation != "" {
		q.QuestionExplanation = req.QuestionExplanation
	}
	if req.QuestionIsPublished != nil {
		q.QuestionIsPublished = *req.QuestionIsPublished
	}
	q.Options = buildOptions(q.QuestionID, req.Options)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Technologies").Create(&q).Error; err != nil {
			return err
		}
		if err := replaceLinks(tx, "question_tags", "tag_id", q.QuestionID, tagIDs); err != nil {
			return err
		}
		return replaceLinks(tx, "question_technologies", "technology_id", q.QuestionID, techIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, q.QuestionID)
}

// Update applies the supplied fields. Options/tags/technologies are replaced
// only when present in the request; options keep their ids by label and the
// answers already given are regraded.
func (s *QuestionService) Update(ctx context.Context, current *model.QuestionModel, req dto.UpdateQuestionRequest) (*model.QuestionModel, error) {
	if errs := UpdateOptionErrors(current, &req); len(errs) > 0 {
		return nil, helper.NewValidationError(errs...)
	}

	var bancaID, topicID *uuid.UUID
	if req.QuestionBancaID != nil {
		bancaID = ptrUUID(req.QuestionBancaID)
	}
	if req.QuestionTopicID != nil {
		topicID = ptrUUID(req.QuestionTopicID)
	}
	var tagIDs, techIDs []uuid.UUID
	if req.TagIDs != nil {
		tagIDs = uniqueIDs(req.TagIDs)
	}
	if req.TechnologyIDs != nil {
		techIDs = uniqueIDs(req.TechnologyIDs)
	}
	if err := ensureTaxonomy(ctx, s.DB, bancaID, topicID, tagIDs, techIDs); err != nil {
		return nil, err
	}

	id := current.QuestionID
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := helper.UpdateByID[model.QuestionModel](ctx, tx, id, req.ToUpdates(), MsgQuestionNotFound); err != nil {
			return err
		}
		if req.Options != nil {
			if err := syncOptions(tx, id, req.Options); err != nil {
				return err
			}
		}
		if req.TagIDs != nil {
			if err := replaceLinks(tx, "question_tags", "tag_id", id, tagIDs); err != nil {
				return err
			}
		}
		if req.TechnologyIDs != nil {
			if err := replaceLinks(tx, "question_technologies", "technology_id", id, techIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// Delete removes the question with its options, links, answers, attempts and favorites.
func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stmts := []string{
			"DELETE FROM answer_attempts WHERE attempt_answer_id IN (SELECT answer_id FROM answers WHERE answer_question_id = ?)",
			"DELETE FROM answers WHERE answer_question_id = ?",
			"DELETE FROM favorite_questions WHERE favorite_question_id = ?",
			"DELETE FROM question_tags WHERE question_id = ?",
			"DELETE FROM question_technologies WHERE question_id = ?",
			"DELETE FROM question_options WHERE option_question_id = ?",
		}
		for _, q := range stmts {
			if err := tx.Exec(q, id).Error; err != nil {
				return err
			}
		}
		return helper.DeleteByID[model.QuestionModel](ctx, tx, id, MsgQuestionNotFound)
	})
}

func ptrUUID(s *string) *uuid.UUID {
	if s == nil {
		return nil
	}
	return helper.ParseOptionalUUID(*s)
}

func optionInputs(opts []model.QuestionOptionModel) []dto.QuestionOptionInput {
	out := make([]dto.QuestionOptionInput, 0, len(opts))
	for _, o := range opts {
		order := o.OptionOrder
		out = append(out, dto.QuestionOptionInput{
			OptionLabel:     o.OptionLabel,
			OptionText:      o.OptionText,
			OptionIsCorrect: o.OptionIsCorrect,
			OptionOrder:     &order,
		})
	}
	return out
}
