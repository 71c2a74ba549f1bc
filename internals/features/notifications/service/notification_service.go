package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/notifications/dto"
	"quizcourse_backend/internals/features/notifications/model"
	userModel "quizcourse_backend/internals/features/users/user/model"
	helper "quizcourse_backend/internals/helpers"
)

const (
	MsgNotificationNotFound = "Notificação não encontrada."
	MsgNotificationDeleted  = "Notificação removida com sucesso."
	MsgUserNotFound         = "Usuário não encontrado."
)

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

func (s *NotificationService) List(ctx context.Context, ownerID *uuid.UUID, q dto.ListNotificationsQuery, p helper.ListParams) ([]model.NotificationModel, int64, error) {
	base := s.DB.WithContext(ctx).Model(&model.NotificationModel{})
	if ownerID != nil {
		base = base.Where("notification_user_id = ?", *ownerID)
	}
	if q.IsRead != nil {
		base = base.Where("notification_is_read = ?", *q.IsRead)
	}
	if q.Type != "" {
		base = base.Where("notification_type = ?", q.Type)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.NotificationModel
	if err := p.Apply(base).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *NotificationService) FindByID(ctx context.Context, id uuid.UUID) (*model.NotificationModel, error) {
	return helper.FindByID[model.NotificationModel](ctx, s.DB, id, MsgNotificationNotFound)
}

func (s *NotificationService) Create(ctx context.Context, req dto.CreateNotificationRequest) (*model.NotificationModel, error) {
	userID := helper.ParseOptionalUUID(req.NotificationUserID)
	if userID == nil {
		return nil, helper.NotFound(MsgUserNotFound)
	}
	if _, err := helper.FindByID[userModel.UserModel](ctx, s.DB, *userID, MsgUserNotFound); err != nil {
		return nil, err
	}
	data, err := dto.EncodeData(req.NotificationData)
	if err != nil {
		return nil, helper.NewValidationError(helper.FieldError{Field: "notification_data", Message: "Dados da notificação inválidos."})
	}
	n := model.NotificationModel{
		NotificationUserID:  *userID,
		NotificationTitle:   req.NotificationTitle,
		NotificationMessage: req.NotificationMessage,
		NotificationType:    req.NotificationType,
		NotificationData:    data,
	}
	if err := s.DB.WithContext(ctx).Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// SetRead flips the read flag; read_at follows it.
func (s *NotificationService) SetRead(ctx context.Context, id uuid.UUID, read bool) (*model.NotificationModel, error) {
	updates := map[string]any{"notification_is_read": read, "notification_read_at": nil}
	if read {
		updates["notification_read_at"] = time.Now()
	}
	if err := helper.UpdateByID[model.NotificationModel](ctx, s.DB, id, updates, MsgNotificationNotFound); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// MarkAllRead marks every unread notification of userID as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := s.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_user_id = ? AND notification_is_read = ?", userID, false).
		Updates(map[string]any{"notification_is_read": true, "notification_read_at": time.Now()})
	return res.RowsAffected, res.Error
}

func (s *NotificationService) Delete(ctx context.Context, id uuid.UUID) error {
	return helper.DeleteByID[model.NotificationModel](ctx, s.DB, id, MsgNotificationNotFound)
}
