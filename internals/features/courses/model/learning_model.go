package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "quizcourse_backend/internals/features/users/user/model"
)

const (
	EnrollmentActive    = "ACTIVE"
	EnrollmentCompleted = "COMPLETED"
	EnrollmentCancelled = "CANCELLED"
)

/* =========================
   ENROLLMENTS
========================= */

type EnrollmentModel struct {
	EnrollmentID          uuid.UUID  `gorm:"column:enrollment_id;type:uuid;primaryKey" json:"enrollment_id"`
	EnrollmentUserID      uuid.UUID  `gorm:"column:enrollment_user_id;type:uuid;not null;uniqueIndex:uq_enrollments_user_course" json:"enrollment_user_id"`
	EnrollmentCourseID    uuid.UUID  `gorm:"column:enrollment_course_id;type:uuid;not null;uniqueIndex:uq_enrollments_user_course;index" json:"enrollment_course_id"`
	EnrollmentStatus      string     `gorm:"column:enrollment_status;type:varchar(20);not null" json:"enrollment_status"`
	EnrollmentEnrolledAt  time.Time  `gorm:"column:enrollment_enrolled_at;autoCreateTime" json:"enrollment_enrolled_at"`
	EnrollmentCompletedAt *time.Time `gorm:"column:enrollment_completed_at" json:"enrollment_completed_at,omitempty"`
	EnrollmentUpdatedAt   time.Time  `gorm:"column:enrollment_updated_at;autoUpdateTime" json:"enrollment_updated_at"`

	User   *userModel.UserModel `gorm:"foreignKey:EnrollmentUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Course *CourseModel         `gorm:"foreignKey:EnrollmentCourseID;references:CourseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }

func (m *EnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.EnrollmentID == uuid.Nil {
		m.EnrollmentID = uuid.New()
	}
	if m.EnrollmentStatus == "" {
		m.EnrollmentStatus = EnrollmentActive
	}
	return nil
}

/* =========================
   PROGRESS
========================= */

type ProgressModel struct {
	ProgressID          uuid.UUID  `gorm:"column:progress_id;type:uuid;primaryKey" json:"progress_id"`
	ProgressUserID      uuid.UUID  `gorm:"column:progress_user_id;type:uuid;not null;uniqueIndex:uq_progress_user_lesson" json:"progress_user_id"`
	ProgressLessonID    uuid.UUID  `gorm:"column:progress_lesson_id;type:uuid;not null;uniqueIndex:uq_progress_user_lesson;index" json:"progress_lesson_id"`
	ProgressIsCompleted bool       `gorm:"column:progress_is_completed;not null" json:"progress_is_completed"`
	ProgressWatchedSec  int        `gorm:"column:progress_watched_sec;not null" json:"progress_watched_sec"`
	ProgressCompletedAt *time.Time `gorm:"column:progress_completed_at" json:"progress_completed_at,omitempty"`
	ProgressCreatedAt   time.Time  `gorm:"column:progress_created_at;autoCreateTime" json:"progress_created_at"`
	ProgressUpdatedAt   time.Time  `gorm:"column:progress_updated_at;autoUpdateTime" json:"progress_updated_at"`

	User   *userModel.UserModel `gorm:"foreignKey:ProgressUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Lesson *LessonModel         `gorm:"foreignKey:ProgressLessonID;references:LessonID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (ProgressModel) TableName() string { return "progress" }

func (m *ProgressModel) BeforeCreate(tx *gorm.DB) error {
	if m.ProgressID == uuid.Nil {
		m.ProgressID = uuid.New()
	}
	return nil
}

/* =========================
   REVIEWS
========================= */

type ReviewModel struct {
	ReviewID        uuid.UUID `gorm:"column:review_id;type:uuid;primaryKey" json:"review_id"`
	ReviewUserID    uuid.UUID `gorm:"column:review_user_id;type:uuid;not null;uniqueIndex:uq_reviews_user_course" json:"review_user_id"`
	ReviewCourseID  uuid.UUID `gorm:"column:review_course_id;type:uuid;not null;uniqueIndex:uq_reviews_user_course;index" json:"review_course_id"`
	ReviewRating    int       `gorm:"column:review_rating;not null" json:"review_rating"`
	ReviewComment   *string   `gorm:"column:review_comment;type:text" json:"review_comment,omitempty"`
	ReviewCreatedAt time.Time `gorm:"column:review_created_at;autoCreateTime" json:"review_created_at"`
	ReviewUpdatedAt time.Time `gorm:"column:review_updated_at;autoUpdateTime" json:"review_updated_at"`

	User   *userModel.UserModel `gorm:"foreignKey:ReviewUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Course *CourseModel         `gorm:"foreignKey:ReviewCourseID;references:CourseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (ReviewModel) TableName() string { return "reviews" }

func (m *ReviewModel) BeforeCreate(tx *gorm.DB) error {
	if m.ReviewID == uuid.Nil {
		m.ReviewID = uuid.New()
	}
	return nil
}

// CourseRating is the aggregate behind GET /courses/:id/rating.
type CourseRating struct {
	CourseID uuid.UUID `json:"course_id"`
	Average  float64   `json:"average"`
	Count    int64     `json:"count"`
}
