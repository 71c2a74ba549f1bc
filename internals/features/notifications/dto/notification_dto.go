package dto

import (
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"

	helper "quizcourse_backend/internals/helpers"
)

// POST /api/notifications (admin)
type CreateNotificationRequest struct {
	NotificationUserID  string         `json:"notification_user_id" validate:"required,uuid"`
	NotificationTitle   string         `json:"notification_title" validate:"required,min=1,max=200"`
	NotificationMessage string         `json:"notification_message" validate:"required,min=1,max=5000"`
	NotificationType    string         `json:"notification_type" validate:"omitempty,oneof=INFO SUCCESS WARNING COURSE SYSTEM"`
	NotificationData    map[string]any `json:"notification_data"`
}

func (r *CreateNotificationRequest) Normalize() {
	r.NotificationTitle = strings.TrimSpace(r.NotificationTitle)
	r.NotificationMessage = strings.TrimSpace(r.NotificationMessage)
	r.NotificationType = strings.ToUpper(strings.TrimSpace(r.NotificationType))
	if r.NotificationType == "" {
		r.NotificationType = "INFO"
	}
}

// EncodeData serialises the free-form payload for the jsonb column.
func EncodeData(data map[string]any) (datatypes.JSON, error) {
	if data == nil {
		return datatypes.JSON("{}"), nil
	}
	raw, err := sonic.Marshal(data)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// PATCH /api/notifications/:id: the owner can only toggle the read flag.
type UpdateNotificationRequest struct {
	NotificationIsRead *bool `json:"notification_is_read" validate:"required"`
}

type ListNotificationsQuery struct {
	UserID string `query:"user_id" validate:"omitempty,uuid"`
	IsRead *bool  `query:"is_read"`
	Type   string `query:"type" validate:"omitempty,oneof=INFO SUCCESS WARNING COURSE SYSTEM"`
}

var NotificationSortColumns = helper.SortColumns{
	"created_at": "notification_created_at",
}
