package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/courses/dto"
	"quizcourse_backend/internals/features/courses/model"
	helper "quizcourse_backend/internals/helpers"
)

const (
	MsgReviewNotFound  = "Avaliação não encontrada."
	MsgReviewDeleted   = "Avaliação removida com sucesso."
	MsgReviewDuplicate = "Você já avaliou este curso."
)

type ReviewService struct {
	DB      *gorm.DB
	Courses *CourseService
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db, Courses: NewCourseService(db)}
}

func (s *ReviewService) List(ctx context.Context, q dto.ListReviewsQuery, p helper.ListParams) ([]model.ReviewModel, int64, error) {
	base := s.DB.WithContext(ctx).Model(&model.ReviewModel{})
	if id := helper.ParseOptionalUUID(q.UserID); id != nil {
		base = base.Where("review_user_id = ?", *id)
	}
	if id := helper.ParseOptionalUUID(q.CourseID); id != nil {
		base = base.Where("review_course_id = ?", *id)
	}
	if q.MinRating != nil {
		base = base.Where("review_rating >= ?", *q.MinRating)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.ReviewModel
	if err := p.Apply(base).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *ReviewService) FindByID(ctx context.Context, id uuid.UUID) (*model.ReviewModel, error) {
	return helper.FindByID[model.ReviewModel](ctx, s.DB, id, MsgReviewNotFound)
}

func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateReviewRequest) (*model.ReviewModel, error) {
	courseID := helper.ParseOptionalUUID(req.ReviewCourseID)
	if courseID == nil {
		return nil, helper.NotFound(MsgCourseNotFound)
	}
	if _, err := s.Courses.FindByID(ctx, *courseID); err != nil {
		return nil, err
	}
	r := model.ReviewModel{
		ReviewUserID:   userID,
		ReviewCourseID: *courseID,
		ReviewRating:   req.ReviewRating,
	}
	if req.ReviewComment != nil && *req.ReviewComment != "" {
		r.ReviewComment = req.ReviewComment
	}
	if err := s.DB.WithContext(ctx).Create(&r).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, helper.Conflict(MsgReviewDuplicate)
		}
		return nil, err
	}
	return &r, nil
}

func (s *ReviewService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateReviewRequest) (*model.ReviewModel, error) {
	if err := helper.UpdateByID[model.ReviewModel](ctx, s.DB, id, req.ToUpdates(), MsgReviewNotFound); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID) error {
	return helper.DeleteByID[model.ReviewModel](ctx, s.DB, id, MsgReviewNotFound)
}
