package dto

import (
	"strings"

	"quizcourse_backend/internals/features/questions/model"
	helper "quizcourse_backend/internals/helpers"
)

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func nullable(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func uuidOrNil(s string) any {
	if id := helper.ParseOptionalUUID(s); id != nil {
		return *id
	}
	return nil
}

func upperPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToUpper(strings.TrimSpace(*s))
	return &v
}

/* =========================
   OPTIONS
========================= */

type QuestionOptionInput struct {
	OptionLabel     string `json:"option_label" validate:"required,oneof=A B C D E"`
	OptionText      string `json:"option_text" validate:"required,min=1,max=2000"`
	OptionIsCorrect bool   `json:"option_is_correct"`
	OptionOrder     *int   `json:"option_order" validate:"omitnil,min=0,max=20"`
}

func (o *QuestionOptionInput) normalize() {
	o.OptionLabel = strings.ToUpper(strings.TrimSpace(o.OptionLabel))
	o.OptionText = strings.TrimSpace(o.OptionText)
}

// OptionRules checks an option set against the question type: multiple choice
// takes 2 to 5 options, true/false exactly 2, essay none; exactly one correct
// and no repeated label. Unknown types are left to the oneof tag.
func OptionRules(qType string, opts []QuestionOptionInput) []helper.FieldError {
	var errs []helper.FieldError
	switch qType {
	case model.QuestionTypeEssay:
		if len(opts) > 0 {
			errs = append(errs, helper.FieldError{Field: "options", Message: "Questões dissertativas não possuem alternativas."})
		}
		return errs
	case model.QuestionTypeTrueFalse:
		if len(opts) != 2 {
			errs = append(errs, helper.FieldError{Field: "options", Message: "Questões de verdadeiro ou falso devem ter exatamente 2 alternativas."})
		}
	case model.QuestionTypeMultipleChoice:
		if len(opts) < 2 || len(opts) > 5 {
			errs = append(errs, helper.FieldError{Field: "options", Message: "Questões de múltipla escolha devem ter entre 2 e 5 alternativas."})
		}
	default:
		return nil
	}

	if len(opts) == 0 {
		return errs
	}
	correct := 0
	labels := map[string]bool{}
	for _, o := range opts {
		if o.OptionIsCorrect {
			correct++
		}
		if labels[o.OptionLabel] {
			errs = append(errs, helper.FieldError{Field: "options", Message: "Rótulo de alternativa repetido: " + o.OptionLabel + "."})
		}
		labels[o.OptionLabel] = true
	}
	if correct != 1 {
		errs = append(errs, helper.FieldError{Field: "options", Message: "Exatamente uma alternativa deve ser marcada como correta."})
	}
	return errs
}

/* =========================
   QUESTIONS
========================= */

// POST /api/questions
// Options, tag links and technology links are written together with the question.
type CreateQuestionRequest struct {
	QuestionAuthorID    *string               `json:"question_author_id" validate:"omitempty,uuid"`
	QuestionStatement   string                `json:"question_statement" validate:"required,min=5,max=10000"`
	QuestionType        string                `json:"question_type" validate:"required,oneof=MULTIPLE_CHOICE TRUE_FALSE ESSAY"`
	QuestionDifficulty  string                `json:"question_difficulty" validate:"required,oneof=EASY MEDIUM HARD"`
	QuestionYear        *int                  `json:"question_year" validate:"omitnil,min=1950,max=2100"`
	QuestionBancaID     *string               `json:"question_banca_id" validate:"omitempty,uuid"`
	QuestionTopicID     *string               `json:"question_topic_id" validate:"omitempty,uuid"`
	QuestionExplanation *string               `json:"question_explanation" validate:"omitempty,max=10000"`
	QuestionIsPublished *bool                 `json:"question_is_published"`
	Options             []QuestionOptionInput `json:"options" validate:"omitempty,max=5,dive"`
	TagIDs              []string              `json:"tag_ids" validate:"omitempty,max=20,dive,uuid"`
	TechnologyIDs       []string              `json:"technology_ids" validate:"omitempty,max=20,dive,uuid"`
}

func (r *CreateQuestionRequest) Normalize() {
	r.QuestionStatement = strings.TrimSpace(r.QuestionStatement)
	r.QuestionType = strings.ToUpper(strings.TrimSpace(r.QuestionType))
	r.QuestionDifficulty = strings.ToUpper(strings.TrimSpace(r.QuestionDifficulty))
	r.QuestionExplanation = trimPtr(r.QuestionExplanation)
	for i := range r.Options {
		r.Options[i].normalize()
	}
}

func (r *CreateQuestionRequest) Check() []helper.FieldError {
	return OptionRules(r.QuestionType, r.Options)
}

// PATCH /api/questions/:id
// A non-nil Options/TagIDs/TechnologyIDs replaces the whole set ([] clears it).
type UpdateQuestionRequest struct {
	QuestionStatement   *string               `json:"question_statement" validate:"omitnil,min=5,max=10000"`
	QuestionType        *string               `json:"question_type" validate:"omitnil,oneof=MULTIPLE_CHOICE TRUE_FALSE ESSAY"`
	QuestionDifficulty  *string               `json:"question_difficulty" validate:"omitnil,oneof=EASY MEDIUM HARD"`
	QuestionYear        *int                  `json:"question_year" validate:"omitnil,min=1950,max=2100"`
	QuestionBancaID     *string               `json:"question_banca_id" validate:"omitempty,uuid"`
	QuestionTopicID     *string               `json:"question_topic_id" validate:"omitempty,uuid"`
	QuestionExplanation *string               `json:"question_explanation" validate:"omitempty,max=10000"`
	QuestionIsPublished *bool                 `json:"question_is_published"`
	Options             []QuestionOptionInput `json:"options" validate:"omitempty,max=5,dive"`
	TagIDs              []string              `json:"tag_ids" validate:"omitempty,max=20,dive,uuid"`
	TechnologyIDs       []string              `json:"technology_ids" validate:"omitempty,max=20,dive,uuid"`
}

func (r *UpdateQuestionRequest) Normalize() {
	r.QuestionStatement = trimPtr(r.QuestionStatement)
	r.QuestionType = upperPtr(r.QuestionType)
	r.QuestionDifficulty = upperPtr(r.QuestionDifficulty)
	r.QuestionExplanation = trimPtr(r.QuestionExplanation)
	r.QuestionBancaID = trimPtr(r.QuestionBancaID)
	r.QuestionTopicID = trimPtr(r.QuestionTopicID)
	for i := range r.Options {
		r.Options[i].normalize()
	}
}

// ToUpdates covers scalar columns only; "" on banca/topic clears the link.
func (r *UpdateQuestionRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	if r.QuestionStatement != nil {
		m["question_statement"] = *r.QuestionStatement
	}
	if r.QuestionType != nil {
		m["question_type"] = *r.QuestionType
	}
	if r.QuestionDifficulty != nil {
		m["question_difficulty"] = *r.QuestionDifficulty
	}
	if r.QuestionYear != nil {
		m["question_year"] = *r.QuestionYear
	}
	if r.QuestionBancaID != nil {
		m["question_banca_id"] = uuidOrNil(*r.QuestionBancaID)
	}
	if r.QuestionTopicID != nil {
		m["question_topic_id"] = uuidOrNil(*r.QuestionTopicID)
	}
	if r.QuestionExplanation != nil {
		m["question_explanation"] = nullable(r.QuestionExplanation)
	}
	if r.QuestionIsPublished != nil {
		m["question_is_published"] = *r.QuestionIsPublished
	}
	return m
}

// GET /api/questions
type ListQuestionsQuery struct {
	AuthorID     string `query:"author_id" validate:"omitempty,uuid"`
	BancaID      string `query:"banca_id" validate:"omitempty,uuid"`
	TopicID      string `query:"topic_id" validate:"omitempty,uuid"`
	TagID        string `query:"tag_id" validate:"omitempty,uuid"`
	TechnologyID string `query:"technology_id" validate:"omitempty,uuid"`
	Difficulty   string `query:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
	Type         string `query:"type" validate:"omitempty,oneof=MULTIPLE_CHOICE TRUE_FALSE ESSAY"`
	Year         *int   `query:"year" validate:"omitnil,min=1950,max=2100"`
	IsPublished  *bool  `query:"is_published"`
	Q            string `query:"q" validate:"omitempty,max=200"`
}

var QuestionSortColumns = helper.SortColumns{
	"created_at": "question_created_at",
	"updated_at": "question_updated_at",
	"year":       "question_year",
	"difficulty": "question_difficulty",
}
