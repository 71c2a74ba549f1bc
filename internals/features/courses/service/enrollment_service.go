package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/courses/dto"
	"quizcourse_backend/internals/features/courses/model"
	helper "quizcourse_backend/internals/helpers"
)

const (
	MsgEnrollmentNotFound  = "Matrícula não encontrada."
	MsgEnrollmentDeleted   = "Matrícula removida com sucesso."
	MsgEnrollmentDuplicate = "Usuário já matriculado neste curso."
)

type EnrollmentService struct {
	DB      *gorm.DB
	Courses *CourseService
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{DB: db, Courses: NewCourseService(db)}
}

func (s *EnrollmentService) List(ctx context.Context, ownerID *uuid.UUID, q dto.ListEnrollmentsQuery, p helper.ListParams) ([]model.EnrollmentModel, int64, error) {
	base := s.DB.WithContext(ctx).Model(&model.EnrollmentModel{})
	if ownerID != nil {
		base = base.Where("enrollment_user_id = ?", *ownerID)
	}
	if id := helper.ParseOptionalUUID(q.CourseID); id != nil {
		base = base.Where("enrollment_course_id = ?", *id)
	}
	if q.Status != "" {
		base = base.Where("enrollment_status = ?", q.Status)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.EnrollmentModel
	if err := p.Apply(base).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *EnrollmentService) FindByID(ctx context.Context, id uuid.UUID) (*model.EnrollmentModel, error) {
	return helper.FindByID[model.EnrollmentModel](ctx, s.DB, id, MsgEnrollmentNotFound)
}

func (s *EnrollmentService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateEnrollmentRequest) (*model.EnrollmentModel, error) {
	courseID := helper.ParseOptionalUUID(req.EnrollmentCourseID)
	if courseID == nil {
		return nil, helper.NotFound(MsgCourseNotFound)
	}
	if _, err := s.Courses.FindByID(ctx, *courseID); err != nil {
		return nil, err
	}
	e := model.EnrollmentModel{
		EnrollmentUserID:   userID,
		EnrollmentCourseID: *courseID,
		EnrollmentStatus:   model.EnrollmentActive,
	}
	if err := s.DB.WithContext(ctx).Create(&e).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, helper.Conflict(MsgEnrollmentDuplicate)
		}
		return nil, err
	}
	return &e, nil
}

// Update changes the status label. COMPLETED stamps completed_at, anything else clears it.
func (s *EnrollmentService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateEnrollmentRequest) (*model.EnrollmentModel, error) {
	updates := map[string]any{}
	if req.EnrollmentStatus != nil {
		updates["enrollment_status"] = *req.EnrollmentStatus
		if *req.EnrollmentStatus == model.EnrollmentCompleted {
			updates["enrollment_completed_at"] = time.Now()
		} else {
			updates["enrollment_completed_at"] = nil
		}
	}
	if err := helper.UpdateByID[model.EnrollmentModel](ctx, s.DB, id, updates, MsgEnrollmentNotFound); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

func (s *EnrollmentService) Delete(ctx context.Context, id uuid.UUID) error {
	return helper.DeleteByID[model.EnrollmentModel](ctx, s.DB, id, MsgEnrollmentNotFound)
}
