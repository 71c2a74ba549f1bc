package dto

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"quizcourse_backend/internals/features/courses/model"
	helper "quizcourse_backend/internals/helpers"
)

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func upperPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToUpper(strings.TrimSpace(*s))
	return &v
}

func nullable(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func uuidOrNil(s string) any {
	if id := helper.ParseOptionalUUID(s); id != nil {
		return *id
	}
	return nil
}

/* =========================
   COURSES
========================= */

type CreateCourseRequest struct {
	CourseInstructorID *string `json:"course_instructor_id" validate:"omitempty,uuid"`
	CourseTitle        string  `json:"course_title" validate:"required,min=3,max=200"`
	CourseSlug         *string `json:"course_slug" validate:"omitnil,max=160"`
	CourseDescription  *string `json:"course_description" validate:"omitempty,max=10000"`
	CourseLevel        string  `json:"course_level" validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	CourseTechnologyID *string `json:"course_technology_id" validate:"omitempty,uuid"`
	CourseIsPublished  *bool   `json:"course_is_published"`
}

func (r *CreateCourseRequest) Normalize() {
	r.CourseTitle = strings.TrimSpace(r.CourseTitle)
	r.CourseSlug = trimPtr(r.CourseSlug)
	r.CourseDescription = trimPtr(r.CourseDescription)
	r.CourseLevel = strings.ToUpper(strings.TrimSpace(r.CourseLevel))
}

func (r *CreateCourseRequest) ToModel(instructorID uuid.UUID, slug string) model.CourseModel {
	m := model.CourseModel{
		CourseInstructorID: instructorID,
		CourseTitle:        r.CourseTitle,
		CourseSlug:         slug,
		CourseDescription:  nonEmpty(r.CourseDescription),
		CourseLevel:        r.CourseLevel,
	}
	if r.CourseTechnologyID != nil {
		m.CourseTechnologyID = helper.ParseOptionalUUID(*r.CourseTechnologyID)
	}
	if r.CourseIsPublished != nil {
		m.CourseIsPublished = *r.CourseIsPublished
	}
	return m
}

type UpdateCourseRequest struct {
	CourseTitle        *string `json:"course_title" validate:"omitnil,min=3,max=200"`
	CourseSlug         *string `json:"course_slug" validate:"omitnil,min=1,max=160"`
	CourseDescription  *string `json:"course_description" validate:"omitempty,max=10000"`
	CourseLevel        *string `json:"course_level" validate:"omitnil,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	CourseTechnologyID *string `json:"course_technology_id" validate:"omitempty,uuid"`
	CourseIsPublished  *bool   `json:"course_is_published"`
}

func (r *UpdateCourseRequest) Normalize() {
	r.CourseTitle = trimPtr(r.CourseTitle)
	r.CourseSlug = trimPtr(r.CourseSlug)
	r.CourseDescription = trimPtr(r.CourseDescription)
	r.CourseLevel = upperPtr(r.CourseLevel)
	r.CourseTechnologyID = trimPtr(r.CourseTechnologyID)
}

// ToUpdates leaves the slug to the service (it must stay unique).
func (r *UpdateCourseRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	if r.CourseTitle != nil {
		m["course_title"] = *r.CourseTitle
	}
	if r.CourseDescription != nil {
		m["course_description"] = nullable(r.CourseDescription)
	}
	if r.CourseLevel != nil {
		m["course_level"] = *r.CourseLevel
	}
	if r.CourseTechnologyID != nil {
		m["course_technology_id"] = uuidOrNil(*r.CourseTechnologyID)
	}
	if r.CourseIsPublished != nil {
		m["course_is_published"] = *r.CourseIsPublished
	}
	return m
}

type ListCoursesQuery struct {
	InstructorID string `query:"instructor_id" validate:"omitempty,uuid"`
	TechnologyID string `query:"technology_id" validate:"omitempty,uuid"`
	Level        string `query:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	IsPublished  *bool  `query:"is_published"`
	Q            string `query:"q" validate:"omitempty,max=200"`
}

var CourseSortColumns = helper.SortColumns{
	"created_at": "course_created_at",
	"updated_at": "course_updated_at",
	"title":      "course_title",
	"level":      "course_level",
}

/* =========================
   MODULES
========================= */

type CreateModuleRequest struct {
	ModuleCourseID    string  `json:"module_course_id" validate:"required,uuid"`
	ModuleTitle       string  `json:"module_title" validate:"required,min=1,max=200"`
	ModuleDescription *string `json:"module_description" validate:"omitempty,max=5000"`
	ModuleOrder       *int    `json:"module_order" validate:"omitnil,min=0,max=10000"`
}

func (r *CreateModuleRequest) Normalize() {
	r.ModuleTitle = strings.TrimSpace(r.ModuleTitle)
	r.ModuleDescription = trimPtr(r.ModuleDescription)
}

type UpdateModuleRequest struct {
	ModuleTitle       *string `json:"module_title" validate:"omitnil,min=1,max=200"`
	ModuleDescription *string `json:"module_description" validate:"omitempty,max=5000"`
	ModuleOrder       *int    `json:"module_order" validate:"omitnil,min=0,max=10000"`
}

func (r *UpdateModuleRequest) Normalize() {
	r.ModuleTitle = trimPtr(r.ModuleTitle)
	r.ModuleDescription = trimPtr(r.ModuleDescription)
}

func (r *UpdateModuleRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	if r.ModuleTitle != nil {
		m["module_title"] = *r.ModuleTitle
	}
	if r.ModuleDescription != nil {
		m["module_description"] = nullable(r.ModuleDescription)
	}
	if r.ModuleOrder != nil {
		m["module_order"] = *r.ModuleOrder
	}
	return m
}

type ListModulesQuery struct {
	CourseID string `query:"course_id" validate:"omitempty,uuid"`
}

var ModuleSortColumns = helper.SortColumns{
	"order":      "module_order",
	"created_at": "module_created_at",
}

/* =========================
   LESSONS
========================= */

type LessonResourceInput struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
	URL   string `json:"url" validate:"required,url,max=500"`
}

func encodeResources(in []LessonResourceInput) (datatypes.JSON, error) {
	out := make([]model.LessonResource, 0, len(in))
	for _, r := range in {
		out = append(out, model.LessonResource{Title: strings.TrimSpace(r.Title), URL: strings.TrimSpace(r.URL)})
	}
	raw, err := sonic.Marshal(out)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

type CreateLessonRequest struct {
	LessonModuleID    string                `json:"lesson_module_id" validate:"required,uuid"`
	LessonTitle       string                `json:"lesson_title" validate:"required,min=1,max=200"`
	LessonContent     *string               `json:"lesson_content" validate:"omitempty,max=100000"`
	LessonVideoURL    *string               `json:"lesson_video_url" validate:"omitempty,url,max=500"`
	LessonDurationMin *int                  `json:"lesson_duration_min" validate:"omitnil,min=0,max=1440"`
	LessonOrder       *int                  `json:"lesson_order" validate:"omitnil,min=0,max=10000"`
	LessonResources   []LessonResourceInput `json:"lesson_resources" validate:"omitempty,max=50,dive"`
}

func (r *CreateLessonRequest) Normalize() {
	r.LessonTitle = strings.TrimSpace(r.LessonTitle)
	r.LessonContent = trimPtr(r.LessonContent)
	r.LessonVideoURL = trimPtr(r.LessonVideoURL)
}

func (r *CreateLessonRequest) ToModel(moduleID uuid.UUID) (model.LessonModel, error) {
	res, err := encodeResources(r.LessonResources)
	if err != nil {
		return model.LessonModel{}, err
	}
	m := model.LessonModel{
		LessonModuleID:    moduleID,
		LessonTitle:       r.LessonTitle,
		LessonContent:     nonEmpty(r.LessonContent),
		LessonVideoURL:    nonEmpty(r.LessonVideoURL),
		LessonDurationMin: r.LessonDurationMin,
		LessonResources:   res,
	}
	if r.LessonOrder != nil {
		m.LessonOrder = *r.LessonOrder
	}
	return m, nil
}

type UpdateLessonRequest struct {
	LessonTitle       *string               `json:"lesson_title" validate:"omitnil,min=1,max=200"`
	LessonContent     *string               `json:"lesson_content" validate:"omitempty,max=100000"`
	LessonVideoURL    *string               `json:"lesson_video_url" validate:"omitempty,url,max=500"`
	LessonDurationMin *int                  `json:"lesson_duration_min" validate:"omitnil,min=0,max=1440"`
	LessonOrder       *int                  `json:"lesson_order" validate:"omitnil,min=0,max=10000"`
	LessonResources   []LessonResourceInput `json:"lesson_resources" validate:"omitempty,max=50,dive"`
}

func (r *UpdateLessonRequest) Normalize() {
	r.LessonTitle = trimPtr(r.LessonTitle)
	r.LessonContent = trimPtr(r.LessonContent)
	r.LessonVideoURL = trimPtr(r.LessonVideoURL)
}

func (r *UpdateLessonRequest) ToUpdates() (map[string]any, error) {
	m := map[string]any{}
	if r.LessonTitle != nil {
		m["lesson_title"] = *r.LessonTitle
	}
	if r.LessonContent != nil {
		m["lesson_content"] = nullable(r.LessonContent)
	}
	if r.LessonVideoURL != nil {
		m["lesson_video_url"] = nullable(r.LessonVideoURL)
	}
	if r.LessonDurationMin != nil {
		m["lesson_duration_min"] = *r.LessonDurationMin
	}
	if r.LessonOrder != nil {
		m["lesson_order"] = *r.LessonOrder
	}
	if r.LessonResources != nil {
		res, err := encodeResources(r.LessonResources)
		if err != nil {
			return nil, err
		}
		m["lesson_resources"] = res
	}
	return m, nil
}

type ListLessonsQuery struct {
	ModuleID string `query:"module_id" validate:"omitempty,uuid"`
}

var LessonSortColumns = helper.SortColumns{
	"order":      "lesson_order",
	"created_at": "lesson_created_at",
}
