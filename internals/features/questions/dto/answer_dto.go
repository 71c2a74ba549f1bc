package dto

import (
	helper "quizcourse_backend/internals/helpers"
)

/* =========================
   ANSWERS
========================= */

// POST /api/answers; answer_user_id is honoured for admins only.
type CreateAnswerRequest struct {
	AnswerUserID     *string `json:"answer_user_id" validate:"omitempty,uuid"`
	AnswerQuestionID string  `json:"answer_question_id" validate:"required,uuid"`
	AnswerOptionID   *string `json:"answer_option_id" validate:"omitempty,uuid"`
	AnswerText       *string `json:"answer_text" validate:"omitempty,max=10000"`
}

func (r *CreateAnswerRequest) Normalize() {
	r.AnswerText = trimPtr(r.AnswerText)
}

type UpdateAnswerRequest struct {
	AnswerOptionID *string `json:"answer_option_id" validate:"omitempty,uuid"`
	AnswerText     *string `json:"answer_text" validate:"omitempty,max=10000"`
}

func (r *UpdateAnswerRequest) Normalize() {
	r.AnswerOptionID = trimPtr(r.AnswerOptionID)
	r.AnswerText = trimPtr(r.AnswerText)
}

type ListAnswersQuery struct {
	UserID     string `query:"user_id" validate:"omitempty,uuid"`
	QuestionID string `query:"question_id" validate:"omitempty,uuid"`
	IsCorrect  *bool  `query:"is_correct"`
}

var AnswerSortColumns = helper.SortColumns{
	"created_at": "answer_created_at",
	"updated_at": "answer_updated_at",
}

/* =========================
   ANSWER ATTEMPTS
========================= */

type CreateAttemptRequest struct {
	AttemptAnswerID     string  `json:"attempt_answer_id" validate:"required,uuid"`
	AttemptOptionID     *string `json:"attempt_option_id" validate:"omitempty,uuid"`
	AttemptText         *string `json:"attempt_text" validate:"omitempty,max=10000"`
	AttemptTimeSpentSec *int    `json:"attempt_time_spent_sec" validate:"omitnil,min=0,max=86400"`
}

func (r *CreateAttemptRequest) Normalize() {
	r.AttemptText = trimPtr(r.AttemptText)
}

type UpdateAttemptRequest struct {
	AttemptOptionID     *string `json:"attempt_option_id" validate:"omitempty,uuid"`
	AttemptText         *string `json:"attempt_text" validate:"omitempty,max=10000"`
	AttemptTimeSpentSec *int    `json:"attempt_time_spent_sec" validate:"omitnil,min=0,max=86400"`
}

func (r *UpdateAttemptRequest) Normalize() {
	r.AttemptOptionID = trimPtr(r.AttemptOptionID)
	r.AttemptText = trimPtr(r.AttemptText)
}

type ListAttemptsQuery struct {
	UserID    string `query:"user_id" validate:"omitempty,uuid"`
	AnswerID  string `query:"answer_id" validate:"omitempty,uuid"`
	IsCorrect *bool  `query:"is_correct"`
}

var AttemptSortColumns = helper.SortColumns{
	"created_at": "attempt_created_at",
}

/* =========================
   FAVORITES
========================= */

type CreateFavoriteRequest struct {
	FavoriteUserID     *string `json:"favorite_user_id" validate:"omitempty,uuid"`
	FavoriteQuestionID string  `json:"favorite_question_id" validate:"required,uuid"`
}

type ListFavoritesQuery struct {
	UserID     string `query:"user_id" validate:"omitempty,uuid"`
	QuestionID string `query:"question_id" validate:"omitempty,uuid"`
}

var FavoriteSortColumns = helper.SortColumns{
	"created_at": "favorite_created_at",
}
