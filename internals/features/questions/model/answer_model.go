package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "quizcourse_backend/internals/features/users/user/model"
)

// AnswerModel is a user's current answer to a question (one per user+question).
type AnswerModel struct {
	AnswerID         uuid.UUID  `gorm:"column:answer_id;type:uuid;primaryKey" json:"answer_id"`
	AnswerUserID     uuid.UUID  `gorm:"column:answer_user_id;type:uuid;not null;uniqueIndex:uq_answers_user_question" json:"answer_user_id"`
	AnswerQuestionID uuid.UUID  `gorm:"column:answer_question_id;type:uuid;not null;uniqueIndex:uq_answers_user_question;index" json:"answer_question_id"`
	AnswerOptionID   *uuid.UUID `gorm:"column:answer_option_id;type:uuid" json:"answer_option_id,omitempty"`
	AnswerText       *string    `gorm:"column:answer_text;type:text" json:"answer_text,omitempty"`
	AnswerIsCorrect  bool       `gorm:"column:answer_is_correct;not null" json:"answer_is_correct"`
	AnswerCreatedAt  time.Time  `gorm:"column:answer_created_at;autoCreateTime" json:"answer_created_at"`
	AnswerUpdatedAt  time.Time  `gorm:"column:answer_updated_at;autoUpdateTime" json:"answer_updated_at"`

	User     *userModel.UserModel `gorm:"foreignKey:AnswerUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Question *QuestionModel       `gorm:"foreignKey:AnswerQuestionID;references:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Option   *QuestionOptionModel `gorm:"foreignKey:AnswerOptionID;references:OptionID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

func (AnswerModel) TableName() string { return "answers" }

func (m *AnswerModel) BeforeCreate(tx *gorm.DB) error {
	if m.AnswerID == uuid.Nil {
		m.AnswerID = uuid.New()
	}
	return nil
}

// AnswerAttemptModel records every submission made against an answer.
type AnswerAttemptModel struct {
	AttemptID           uuid.UUID  `gorm:"column:attempt_id;type:uuid;primaryKey" json:"attempt_id"`
	AttemptAnswerID     uuid.UUID  `gorm:"column:attempt_answer_id;type:uuid;not null;index" json:"attempt_answer_id"`
	AttemptUserID       uuid.UUID  `gorm:"column:attempt_user_id;type:uuid;not null;index" json:"attempt_user_id"`
	AttemptOptionID     *uuid.UUID `gorm:"column:attempt_option_id;type:uuid" json:"attempt_option_id,omitempty"`
	AttemptText         *string    `gorm:"column:attempt_text;type:text" json:"attempt_text,omitempty"`
	AttemptIsCorrect    bool       `gorm:"column:attempt_is_correct;not null" json:"attempt_is_correct"`
	AttemptTimeSpentSec *int       `gorm:"column:attempt_time_spent_sec" json:"attempt_time_spent_sec,omitempty"`
	AttemptCreatedAt    time.Time  `gorm:"column:attempt_created_at;autoCreateTime" json:"attempt_created_at"`

	Answer *AnswerModel         `gorm:"foreignKey:AttemptAnswerID;references:AnswerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	User   *userModel.UserModel `gorm:"foreignKey:AttemptUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Option *QuestionOptionModel `gorm:"foreignKey:AttemptOptionID;references:OptionID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

func (AnswerAttemptModel) TableName() string { return "answer_attempts" }

func (m *AnswerAttemptModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttemptID == uuid.Nil {
		m.AttemptID = uuid.New()
	}
	return nil
}

type FavoriteQuestionModel struct {
	FavoriteID         uuid.UUID `gorm:"column:favorite_id;type:uuid;primaryKey" json:"favorite_id"`
	FavoriteUserID     uuid.UUID `gorm:"column:favorite_user_id;type:uuid;not null;uniqueIndex:uq_favorites_user_question" json:"favorite_user_id"`
	FavoriteQuestionID uuid.UUID `gorm:"column:favorite_question_id;type:uuid;not null;uniqueIndex:uq_favorites_user_question" json:"favorite_question_id"`
	FavoriteCreatedAt  time.Time `gorm:"column:favorite_created_at;autoCreateTime" json:"favorite_created_at"`

	User     *userModel.UserModel `gorm:"foreignKey:FavoriteUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Question *QuestionModel       `gorm:"foreignKey:FavoriteQuestionID;references:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (FavoriteQuestionModel) TableName() string { return "favorite_questions" }

func (m *FavoriteQuestionModel) BeforeCreate(tx *gorm.DB) error {
	if m.FavoriteID == uuid.Nil {
		m.FavoriteID = uuid.New()
	}
	return nil
}
