package dto

import (
	helper "quizcourse_backend/internals/helpers"
)

/* =========================
   ENROLLMENTS
========================= */

type CreateEnrollmentRequest struct {
	EnrollmentUserID   *string `json:"enrollment_user_id" validate:"omitempty,uuid"`
	EnrollmentCourseID string  `json:"enrollment_course_id" validate:"required,uuid"`
}

// Only the status label can change; any transition is accepted.
type UpdateEnrollmentRequest struct {
	EnrollmentStatus *string `json:"enrollment_status" validate:"omitnil,oneof=ACTIVE COMPLETED CANCELLED"`
}

func (r *UpdateEnrollmentRequest) Normalize() {
	r.EnrollmentStatus = upperPtr(r.EnrollmentStatus)
}

type ListEnrollmentsQuery struct {
	UserID   string `query:"user_id" validate:"omitempty,uuid"`
	CourseID string `query:"course_id" validate:"omitempty,uuid"`
	Status   string `query:"status" validate:"omitempty,oneof=ACTIVE COMPLETED CANCELLED"`
}

var EnrollmentSortColumns = helper.SortColumns{
	"enrolled_at": "enrollment_enrolled_at",
	"updated_at":  "enrollment_updated_at",
}

/* =========================
   PROGRESS
========================= */

type CreateProgressRequest struct {
	ProgressUserID      *string `json:"progress_user_id" validate:"omitempty,uuid"`
	ProgressLessonID    string  `json:"progress_lesson_id" validate:"required,uuid"`
	ProgressIsCompleted *bool   `json:"progress_is_completed"`
	ProgressWatchedSec  *int    `json:"progress_watched_sec" validate:"omitnil,min=0,max=86400"`
}

type UpdateProgressRequest struct {
	ProgressIsCompleted *bool `json:"progress_is_completed"`
	ProgressWatchedSec  *int  `json:"progress_watched_sec" validate:"omitnil,min=0,max=86400"`
}

type ListProgressQuery struct {
	UserID      string `query:"user_id" validate:"omitempty,uuid"`
	LessonID    string `query:"lesson_id" validate:"omitempty,uuid"`
	IsCompleted *bool  `query:"is_completed"`
}

var ProgressSortColumns = helper.SortColumns{
	"created_at": "progress_created_at",
	"updated_at": "progress_updated_at",
}

/* =========================
   REVIEWS
========================= */

type CreateReviewRequest struct {
	ReviewUserID   *string `json:"review_user_id" validate:"omitempty,uuid"`
	ReviewCourseID string  `json:"review_course_id" validate:"required,uuid"`
	ReviewRating   int     `json:"review_rating" validate:"required,min=1,max=5"`
	ReviewComment  *string `json:"review_comment" validate:"omitempty,max=5000"`
}

func (r *CreateReviewRequest) Normalize() {
	r.ReviewComment = trimPtr(r.ReviewComment)
}

type UpdateReviewRequest struct {
	ReviewRating  *int    `json:"review_rating" validate:"omitnil,min=1,max=5"`
	ReviewComment *string `json:"review_comment" validate:"omitempty,max=5000"`
}

func (r *UpdateReviewRequest) Normalize() {
	r.ReviewComment = trimPtr(r.ReviewComment)
}

func (r *UpdateReviewRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	if r.ReviewRating != nil {
		m["review_rating"] = *r.ReviewRating
	}
	if r.ReviewComment != nil {
		m["review_comment"] = nullable(r.ReviewComment)
	}
	return m
}

type ListReviewsQuery struct {
	UserID    string `query:"user_id" validate:"omitempty,uuid"`
	CourseID  string `query:"course_id" validate:"omitempty,uuid"`
	MinRating *int   `query:"min_rating" validate:"omitnil,min=1,max=5"`
}

var ReviewSortColumns = helper.SortColumns{
	"created_at": "review_created_at",
	"rating":     "review_rating",
}
