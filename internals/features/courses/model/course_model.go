package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	taxModel "quizcourse_backend/internals/features/taxonomy/model"
	userModel "quizcourse_backend/internals/features/users/user/model"
)

const (
	LevelBeginner     = "BEGINNER"
	LevelIntermediate = "INTERMEDIATE"
	LevelAdvanced     = "ADVANCED"
)

/* =========================
   COURSES
========================= */

type CourseModel struct {
	CourseID           uuid.UUID  `gorm:"column:course_id;type:uuid;primaryKey" json:"course_id"`
	CourseInstructorID uuid.UUID  `gorm:"column:course_instructor_id;type:uuid;not null;index" json:"course_instructor_id"`
	CourseTitle        string     `gorm:"column:course_title;type:varchar(200);not null" json:"course_title"`
	CourseSlug         string     `gorm:"column:course_slug;type:varchar(160);not null;uniqueIndex" json:"course_slug"`
	CourseDescription  *string    `gorm:"column:course_description;type:text" json:"course_description,omitempty"`
	CourseLevel        string     `gorm:"column:course_level;type:varchar(20);not null" json:"course_level"`
	CourseTechnologyID *uuid.UUID `gorm:"column:course_technology_id;type:uuid;index" json:"course_technology_id,omitempty"`
	CourseThumbnailURL *string    `gorm:"column:course_thumbnail_url;type:varchar(500)" json:"course_thumbnail_url,omitempty"`
	CourseIsPublished  bool       `gorm:"column:course_is_published;not null" json:"course_is_published"`
	CourseCreatedAt    time.Time  `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt    time.Time  `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at"`

	Instructor *userModel.UserModel      `gorm:"foreignKey:CourseInstructorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Technology *taxModel.TechnologyModel `gorm:"foreignKey:CourseTechnologyID;references:TechnologyID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

func (CourseModel) TableName() string { return "courses" }

func (m *CourseModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseID == uuid.Nil {
		m.CourseID = uuid.New()
	}
	return nil
}

/* =========================
   MODULES
========================= */

type ModuleModel struct {
	ModuleID          uuid.UUID `gorm:"column:module_id;type:uuid;primaryKey" json:"module_id"`
	ModuleCourseID    uuid.UUID `gorm:"column:module_course_id;type:uuid;not null;index" json:"module_course_id"`
	ModuleTitle       string    `gorm:"column:module_title;type:varchar(200);not null" json:"module_title"`
	ModuleDescription *string   `gorm:"column:module_description;type:text" json:"module_description,omitempty"`
	ModuleOrder       int       `gorm:"column:module_order;not null" json:"module_order"`
	ModuleCreatedAt   time.Time `gorm:"column:module_created_at;autoCreateTime" json:"module_created_at"`
	ModuleUpdatedAt   time.Time `gorm:"column:module_updated_at;autoUpdateTime" json:"module_updated_at"`

	Course *CourseModel `gorm:"foreignKey:ModuleCourseID;references:CourseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (ModuleModel) TableName() string { return "modules" }

func (m *ModuleModel) BeforeCreate(tx *gorm.DB) error {
	if m.ModuleID == uuid.Nil {
		m.ModuleID = uuid.New()
	}
	return nil
}

/* =========================
   LESSONS
========================= */

// LessonResource is one entry of lessons.lesson_resources.
type LessonResource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type LessonModel struct {
	LessonID          uuid.UUID      `gorm:"column:lesson_id;type:uuid;primaryKey" json:"lesson_id"`
	LessonModuleID    uuid.UUID      `gorm:"column:lesson_module_id;type:uuid;not null;index" json:"lesson_module_id"`
	LessonTitle       string         `gorm:"column:lesson_title;type:varchar(200);not null" json:"lesson_title"`
	LessonContent     *string        `gorm:"column:lesson_content;type:text" json:"lesson_content,omitempty"`
	LessonVideoURL    *string        `gorm:"column:lesson_video_url;type:varchar(500)" json:"lesson_video_url,omitempty"`
	LessonDurationMin *int           `gorm:"column:lesson_duration_min" json:"lesson_duration_min,omitempty"`
	LessonOrder       int            `gorm:"column:lesson_order;not null" json:"lesson_order"`
	LessonResources   datatypes.JSON `gorm:"column:lesson_resources" json:"lesson_resources"`
	LessonCreatedAt   time.Time      `gorm:"column:lesson_created_at;autoCreateTime" json:"lesson_created_at"`
	LessonUpdatedAt   time.Time      `gorm:"column:lesson_updated_at;autoUpdateTime" json:"lesson_updated_at"`

	Module *ModuleModel `gorm:"foreignKey:LessonModuleID;references:ModuleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (LessonModel) TableName() string { return "lessons" }

func (m *LessonModel) BeforeCreate(tx *gorm.DB) error {
	if m.LessonID == uuid.Nil {
		m.LessonID = uuid.New()
	}
	if len(m.LessonResources) == 0 {
		m.LessonResources = datatypes.JSON("[]")
	}
	return nil
}
