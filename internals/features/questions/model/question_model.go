package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	taxModel "quizcourse_backend/internals/features/taxonomy/model"
	userModel "quizcourse_backend/internals/features/users/user/model"
)

const (
	QuestionTypeMultipleChoice = "MULTIPLE_CHOICE"
	QuestionTypeTrueFalse      = "TRUE_FALSE"
	QuestionTypeEssay          = "ESSAY"

	DifficultyEasy   = "EASY"
	DifficultyMedium = "MEDIUM"
	DifficultyHard   = "HARD"
)

type QuestionModel struct {
	QuestionID          uuid.UUID  `gorm:"column:question_id;type:uuid;primaryKey" json:"question_id"`
	QuestionAuthorID    uuid.UUID  `gorm:"column:question_author_id;type:uuid;not null;index" json:"question_author_id"`
	QuestionStatement   string     `gorm:"column:question_statement;type:text;not null" json:"question_statement"`
	QuestionType        string     `gorm:"column:question_type;type:varchar(20);not null" json:"question_type"`
	QuestionDifficulty  string     `gorm:"column:question_difficulty;type:varchar(10);not null" json:"question_difficulty"`
	QuestionYear        *int       `gorm:"column:question_year" json:"question_year,omitempty"`
	QuestionBancaID     *uuid.UUID `gorm:"column:question_banca_id;type:uuid;index" json:"question_banca_id,omitempty"`
	QuestionTopicID     *uuid.UUID `gorm:"column:question_topic_id;type:uuid;index" json:"question_topic_id,omitempty"`
	QuestionExplanation *string    `gorm:"column:question_explanation;type:text" json:"question_explanation,omitempty"`
	QuestionIsPublished bool       `gorm:"column:question_is_published;not null" json:"question_is_published"`
	QuestionCreatedAt   time.Time  `gorm:"column:question_created_at;autoCreateTime" json:"question_created_at"`
	QuestionUpdatedAt   time.Time  `gorm:"column:question_updated_at;autoUpdateTime" json:"question_updated_at"`

	Author *userModel.UserModel `gorm:"foreignKey:QuestionAuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Banca  *taxModel.BancaModel `gorm:"foreignKey:QuestionBancaID;references:BancaID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Topic  *taxModel.TopicModel `gorm:"foreignKey:QuestionTopicID;references:TopicID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`

	Options      []QuestionOptionModel      `gorm:"foreignKey:OptionQuestionID;references:QuestionID;constraint:OnDelete:CASCADE" json:"options"`
	Tags         []taxModel.TagModel        `gorm:"many2many:question_tags;foreignKey:QuestionID;joinForeignKey:QuestionID;references:TagID;joinReferences:TagID" json:"tags"`
	Technologies []taxModel.TechnologyModel `gorm:"many2many:question_technologies;foreignKey:QuestionID;joinForeignKey:QuestionID;references:TechnologyID;joinReferences:TechnologyID" json:"technologies"`
}

func (QuestionModel) TableName() string { return "questions" }

func (m *QuestionModel) BeforeCreate(tx *gorm.DB) error {
	if m.QuestionID == uuid.Nil {
		m.QuestionID = uuid.New()
	}
	return nil
}

// CorrectOption returns the option flagged as correct, if any.
func (m *QuestionModel) CorrectOption() *QuestionOptionModel {
	for i := range m.Options {
		if m.Options[i].OptionIsCorrect {
			return &m.Options[i]
		}
	}
	return nil
}

type QuestionOptionModel struct {
	OptionID         uuid.UUID `gorm:"column:option_id;type:uuid;primaryKey" json:"option_id"`
	OptionQuestionID uuid.UUID `gorm:"column:option_question_id;type:uuid;not null;index;uniqueIndex:uq_options_question_label" json:"option_question_id"`
	OptionLabel      string    `gorm:"column:option_label;type:varchar(1);not null;uniqueIndex:uq_options_question_label" json:"option_label"`
	OptionText       string    `gorm:"column:option_text;type:text;not null" json:"option_text"`
	OptionIsCorrect  bool      `gorm:"column:option_is_correct;not null" json:"option_is_correct"`
	OptionOrder      int       `gorm:"column:option_order;not null" json:"option_order"`
}

func (QuestionOptionModel) TableName() string { return "question_options" }

func (m *QuestionOptionModel) BeforeCreate(tx *gorm.DB) error {
	if m.OptionID == uuid.Nil {
		m.OptionID = uuid.New()
	}
	return nil
}
