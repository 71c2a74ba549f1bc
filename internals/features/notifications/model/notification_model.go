package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	userModel "quizcourse_backend/internals/features/users/user/model"
)

const (
	TypeInfo    = "INFO"
	TypeSuccess = "SUCCESS"
	TypeWarning = "WARNING"
	TypeCourse  = "COURSE"
	TypeSystem  = "SYSTEM"
)

type NotificationModel struct {
	NotificationID        uuid.UUID      `gorm:"column:notification_id;type:uuid;primaryKey" json:"notification_id"`
	NotificationUserID    uuid.UUID      `gorm:"column:notification_user_id;type:uuid;not null;index" json:"notification_user_id"`
	NotificationTitle     string         `gorm:"column:notification_title;type:varchar(200);not null" json:"notification_title"`
	NotificationMessage   string         `gorm:"column:notification_message;type:text;not null" json:"notification_message"`
	NotificationType      string         `gorm:"column:notification_type;type:varchar(20);not null" json:"notification_type"`
	NotificationIsRead    bool           `gorm:"column:notification_is_read;not null" json:"notification_is_read"`
	NotificationReadAt    *time.Time     `gorm:"column:notification_read_at" json:"notification_read_at,omitempty"`
	NotificationData      datatypes.JSON `gorm:"column:notification_data" json:"notification_data"`
	NotificationCreatedAt time.Time      `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`

	User *userModel.UserModel `gorm:"foreignKey:NotificationUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (NotificationModel) TableName() string { return "notifications" }

func (m *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if m.NotificationID == uuid.Nil {
		m.NotificationID = uuid.New()
	}
	if len(m.NotificationData) == 0 {
		m.NotificationData = datatypes.JSON("{}")
	}
	return nil
}
