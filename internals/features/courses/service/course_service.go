package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/courses/dto"
	"quizcourse_backend/internals/features/courses/model"
	taxModel "quizcourse_backend/internals/features/taxonomy/model"
	helper "quizcourse_backend/internals/helpers"
)

const (
	MsgCourseNotFound     = "Curso não encontrado."
	MsgCourseDeleted      = "Curso removido com sucesso."
	MsgTechnologyNotFound = "Tecnologia não encontrada."

	courseSlugMaxLen = 160
)

type CourseService struct {
	DB *gorm.DB
}

func NewCourseService(db *gorm.DB) *CourseService {
	return &CourseService{DB: db}
}

func applyCourseFilters(db *gorm.DB, q dto.ListCoursesQuery) *gorm.DB {
	if id := helper.ParseOptionalUUID(q.InstructorID); id != nil {
		db = db.Where("course_instructor_id = ?", *id)
	}
	if id := helper.ParseOptionalUUID(q.TechnologyID); id != nil {
		db = db.Where("course_technology_id = ?", *id)
	}
	if q.Level != "" {
		db = db.Where("course_level = ?", q.Level)
	}
	if q.IsPublished != nil {
		db = db.Where("course_is_published = ?", *q.IsPublished)
	}
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		db = db.Where("(LOWER(course_title) LIKE ? OR LOWER(COALESCE(course_description, '')) LIKE ?)", like, like)
	}
	return db
}

func (s *CourseService) List(ctx context.Context, q dto.ListCoursesQuery, p helper.ListParams) ([]model.CourseModel, int64, error) {
	base := applyCourseFilters(s.DB.WithContext(ctx).Model(&model.CourseModel{}), q).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.CourseModel
	if err := p.Apply(base).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *CourseService) FindByID(ctx context.Context, id uuid.UUID) (*model.CourseModel, error) {
	return helper.FindByID[model.CourseModel](ctx, s.DB, id, MsgCourseNotFound)
}

func (s *CourseService) ensureTechnology(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	_, err := helper.FindByID[taxModel.TechnologyModel](ctx, s.DB, *id, MsgTechnologyNotFound)
	return err
}

func (s *CourseService) slug(ctx context.Context, preferred, fallback string, self uuid.UUID) (string, error) {
	base := strings.TrimSpace(preferred)
	if base == "" {
		base = fallback
	}
	var exclude func(*gorm.DB) *gorm.DB
	if self != uuid.Nil {
		exclude = func(q *gorm.DB) *gorm.DB { return q.Where("course_id <> ?", self) }
	}
	return helper.EnsureUniqueSlugCI(ctx, s.DB, "courses", "course_slug",
		helper.Slugify(base, courseSlugMaxLen), exclude, courseSlugMaxLen)
}

// Create generates a unique slug from course_slug (or the title).
func (s *CourseService) Create(ctx context.Context, instructorID uuid.UUID, req dto.CreateCourseRequest) (*model.CourseModel, error) {
	preferred := ""
	if req.CourseSlug != nil {
		preferred = *req.CourseSlug
	}
	slug, err := s.slug(ctx, preferred, req.CourseTitle, uuid.Nil)
	if err != nil {
		return nil, err
	}
	m := req.ToModel(instructorID, slug)
	if err := s.ensureTechnology(ctx, m.CourseTechnologyID); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *CourseService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCourseRequest) (*model.CourseModel, error) {
	updates := req.ToUpdates()
	if req.CourseTechnologyID != nil {
		if err := s.ensureTechnology(ctx, helper.ParseOptionalUUID(*req.CourseTechnologyID)); err != nil {
			return nil, err
		}
	}
	if req.CourseSlug != nil {
		slug, err := s.slug(ctx, *req.CourseSlug, "", id)
		if err != nil {
			return nil, err
		}
		updates["course_slug"] = slug
	}
	if err := helper.UpdateByID[model.CourseModel](ctx, s.DB, id, updates, MsgCourseNotFound); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// SetThumbnail stores the new thumbnail and returns the previous one for cleanup.
func (s *CourseService) SetThumbnail(ctx context.Context, id uuid.UUID, url string) (*model.CourseModel, string, error) {
	current, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	old := ""
	if current.CourseThumbnailURL != nil {
		old = *current.CourseThumbnailURL
	}
	if err := helper.UpdateByID[model.CourseModel](ctx, s.DB, id, map[string]any{"course_thumbnail_url": url}, MsgCourseNotFound); err != nil {
		return nil, "", err
	}
	updated, err := s.FindByID(ctx, id)
	return updated, old, err
}

// Rating averages the course reviews; a course without reviews reports 0/0.
func (s *CourseService) Rating(ctx context.Context, id uuid.UUID) (*model.CourseRating, error) {
	if _, err := s.FindByID(ctx, id); err != nil {
		return nil, err
	}
	var agg struct {
		Average *float64
		Count   int64
	}
	if err := s.DB.WithContext(ctx).Model(&model.ReviewModel{}).
		Select("AVG(CAST(review_rating AS FLOAT)) AS average, COUNT(*) AS count").
		Where("review_course_id = ?", id).
		Scan(&agg).Error; err != nil {
		return nil, err
	}
	out := &model.CourseRating{CourseID: id, Count: agg.Count}
	if agg.Average != nil {
		out.Average = *agg.Average
	}
	return out, nil
}

// Delete removes the course and everything hanging off it.
func (s *CourseService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stmts := []string{
			"DELETE FROM progress WHERE progress_lesson_id IN (SELECT lesson_id FROM lessons WHERE lesson_module_id IN (SELECT module_id FROM modules WHERE module_course_id = ?))",
			"DELETE FROM lessons WHERE lesson_module_id IN (SELECT module_id FROM modules WHERE module_course_id = ?)",
			"DELETE FROM modules WHERE module_course_id = ?",
			"DELETE FROM enrollments WHERE enrollment_course_id = ?",
			"DELETE FROM reviews WHERE review_course_id = ?",
		}
		for _, q := range stmts {
			if err := tx.Exec(q, id).Error; err != nil {
				return err
			}
		}
		return helper.DeleteByID[model.CourseModel](ctx, tx, id, MsgCourseNotFound)
	})
}
