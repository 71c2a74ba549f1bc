package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/questions/dto"
	"quizcourse_backend/internals/features/questions/model"
	taxModel "quizcourse_backend/internals/features/taxonomy/model"
	helper "quizcourse_backend/internals/helpers"
)

// uniqueIDs parses already-validated uuid strings, dropping duplicates.
func uniqueIDs(raw []string) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(raw))
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id := helper.ParseOptionalUUID(s)
		if id == nil {
			continue
		}
		if _, dup := seen[*id]; dup {
			continue
		}
		seen[*id] = struct{}{}
		out = append(out, *id)
	}
	return out
}

// ensureAll checks that every id exists in table.column; otherwise 404 msg.
func ensureAll(ctx context.Context, db *gorm.DB, table, column string, ids []uuid.UUID, msg string) error {
	if len(ids) == 0 {
		return nil
	}
	var n int64
	if err := db.WithContext(ctx).Table(table).Where(column+" IN ?", ids).Count(&n).Error; err != nil {
		return err
	}
	if n != int64(len(ids)) {
		return helper.NotFound(msg)
	}
	return nil
}

func ensureOne(ctx context.Context, db *gorm.DB, table, column string, id *uuid.UUID, msg string) error {
	if id == nil {
		return nil
	}
	return ensureAll(ctx, db, table, column, []uuid.UUID{*id}, msg)
}

// ensureTaxonomy verifies banca/topic/tag/technology references before a write.
func ensureTaxonomy(ctx context.Context, db *gorm.DB, bancaID, topicID *uuid.UUID, tagIDs, techIDs []uuid.UUID) error {
	if err := ensureOne(ctx, db, taxModel.BancaModel{}.TableName(), "banca_id", bancaID, "Banca não encontrada."); err != nil {
		return err
	}
	if err := ensureOne(ctx, db, taxModel.TopicModel{}.TableName(), "topic_id", topicID, "Tópico não encontrado."); err != nil {
		return err
	}
	if err := ensureAll(ctx, db, taxModel.TagModel{}.TableName(), "tag_id", tagIDs, "Tag não encontrada."); err != nil {
		return err
	}
	return ensureAll(ctx, db, taxModel.TechnologyModel{}.TableName(), "technology_id", techIDs, "Tecnologia não encontrada.")
}

// replaceLinks rewrites one many2many join table for a question.
func replaceLinks(tx *gorm.DB, table, column string, questionID uuid.UUID, ids []uuid.UUID) error {
	if err := tx.Exec("DELETE FROM "+table+" WHERE question_id = ?", questionID).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	rows := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, map[string]any{"question_id": questionID, column: id})
	}
	return tx.Table(table).Create(rows).Error
}

func checkOptions(qType string, opts []dto.QuestionOptionInput) error {
	if errs := dto.OptionRules(qType, opts); len(errs) > 0 {
		return helper.NewValidationError(errs...)
	}
	return nil
}

// UpdateOptionErrors applies the option rules to the state a PATCH would leave:
// the new type (or the current one) with the new options (or the stored ones).
func UpdateOptionErrors(current *model.QuestionModel, req *dto.UpdateQuestionRequest) []helper.FieldError {
	qType := current.QuestionType
	if req.QuestionType != nil {
		qType = *req.QuestionType
	}
	if req.Options == nil && qType == current.QuestionType {
		return nil
	}
	opts := req.Options
	if opts == nil {
		opts = optionInputs(current.Options)
	}
	return dto.OptionRules(qType, opts)
}

func buildOptions(questionID uuid.UUID, opts []dto.QuestionOptionInput) []model.QuestionOptionModel {
	out := make([]model.QuestionOptionModel, 0, len(opts))
	for i, o := range opts {
		order := i
		if o.OptionOrder != nil {
			order = *o.OptionOrder
		}
		out = append(out, model.QuestionOptionModel{
			OptionQuestionID: questionID,
			OptionLabel:      o.OptionLabel,
			OptionText:       o.OptionText,
			OptionIsCorrect:  o.OptionIsCorrect,
			OptionOrder:      order,
		})
	}
	return out
}

// syncOptions rewrites a question's options keyed by label: labels present in
// both sets keep their option_id, new labels are inserted, missing ones removed.
// Answers and attempts on the question are then regraded.
func syncOptions(tx *gorm.DB, questionID uuid.UUID, inputs []dto.QuestionOptionInput) error {
	var existing []model.QuestionOptionModel
	if err := tx.Where("option_question_id = ?", questionID).Find(&existing).Error; err != nil {
		return err
	}
	byLabel := make(map[string]model.QuestionOptionModel, len(existing))
	for _, o := range existing {
		byLabel[o.OptionLabel] = o
	}

	var correctID *uuid.UUID
	for _, o := range buildOptions(questionID, inputs) {
		if cur, ok := byLabel[o.OptionLabel]; ok {
			delete(byLabel, o.OptionLabel)
			o.OptionID = cur.OptionID
			err := tx.Model(&model.QuestionOptionModel{}).Where("option_id = ?", o.OptionID).Updates(map[string]any{
				"option_text":       o.OptionText,
				"option_is_correct": o.OptionIsCorrect,
				"option_order":      o.OptionOrder,
			}).Error
			if err != nil {
				return err
			}
		} else if err := tx.Create(&o).Error; err != nil {
			return err
		}
		if o.OptionIsCorrect {
			id := o.OptionID
			correctID = &id
		}
	}

	removed := make([]uuid.UUID, 0, len(byLabel))
	for _, o := range byLabel {
		removed = append(removed, o.OptionID)
	}
	return regrade(tx, questionID, removed, correctID)
}

const attemptsOfQuestion = "attempt_answer_id IN (SELECT answer_id FROM answers WHERE answer_question_id = ?)"

// regrade detaches answers/attempts from removed options, deletes those options
// and recomputes correctness against correctID (nil: nothing is correct).
func regrade(tx *gorm.DB, questionID uuid.UUID, removed []uuid.UUID, correctID *uuid.UUID) error {
	answers := func() *gorm.DB {
		return tx.Model(&model.AnswerModel{}).Where("answer_question_id = ?", questionID)
	}
	attempts := func() *gorm.DB {
		return tx.Model(&model.AnswerAttemptModel{}).Where(attemptsOfQuestion, questionID)
	}

	if len(removed) > 0 {
		if err := answers().Where("answer_option_id IN ?", removed).Update("answer_option_id", nil).Error; err != nil {
			return err
		}
		if err := attempts().Where("attempt_option_id IN ?", removed).Update("attempt_option_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("option_id IN ?", removed).Delete(&model.QuestionOptionModel{}).Error; err != nil {
			return err
		}
	}

	if err := answers().Update("answer_is_correct", false).Error; err != nil {
		return err
	}
	if err := attempts().Update("attempt_is_correct", false).Error; err != nil {
		return err
	}
	if correctID == nil {
		return nil
	}
	if err := answers().Where("answer_option_id = ?", *correctID).Update("answer_is_correct", true).Error; err != nil {
		return err
	}
	return attempts().Where("attempt_option_id = ?", *correctID).Update("attempt_is_correct", true).Error
}

// optionOf resolves an option id against the question it must belong to.
// nil id means no option chosen.
func optionOf(ctx context.Context, db *gorm.DB, questionID uuid.UUID, optionID *uuid.UUID, field string) (*model.QuestionOptionModel, error) {
	if optionID == nil {
		return nil, nil
	}
	var opt model.QuestionOptionModel
	err := db.WithContext(ctx).
		Where("option_id = ? AND option_question_id = ?", *optionID, questionID).
		Take(&opt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.NewValidationError(helper.FieldError{Field: field, Message: "A alternativa não pertence a esta questão."})
	}
	if err != nil {
		return nil, err
	}
	return &opt, nil
}
