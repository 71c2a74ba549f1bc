package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   TAGS
========================= */

type TagModel struct {
	TagID        uuid.UUID `gorm:"column:tag_id;type:uuid;primaryKey" json:"tag_id"`
	TagName      string    `gorm:"column:tag_name;type:varchar(60);not null" json:"tag_name"`
	TagSlug      string    `gorm:"column:tag_slug;type:varchar(80);not null;uniqueIndex" json:"tag_slug"`
	TagCreatedAt time.Time `gorm:"column:tag_created_at;autoCreateTime" json:"tag_created_at"`
	TagUpdatedAt time.Time `gorm:"column:tag_updated_at;autoUpdateTime" json:"tag_updated_at"`
}

func (TagModel) TableName() string { return "tags" }

func (m *TagModel) BeforeCreate(tx *gorm.DB) error {
	if m.TagID == uuid.Nil {
		m.TagID = uuid.New()
	}
	return nil
}

/* =========================
   TECHNOLOGIES
========================= */

type TechnologyModel struct {
	TechnologyID        uuid.UUID `gorm:"column:technology_id;type:uuid;primaryKey" json:"technology_id"`
	TechnologyName      string    `gorm:"column:technology_name;type:varchar(80);not null" json:"technology_name"`
	TechnologySlug      string    `gorm:"column:technology_slug;type:varchar(100);not null;uniqueIndex" json:"technology_slug"`
	TechnologyIconURL   *string   `gorm:"column:technology_icon_url;type:varchar(500)" json:"technology_icon_url,omitempty"`
	TechnologyCreatedAt time.Time `gorm:"column:technology_created_at;autoCreateTime" json:"technology_created_at"`
	TechnologyUpdatedAt time.Time `gorm:"column:technology_updated_at;autoUpdateTime" json:"technology_updated_at"`
}

func (TechnologyModel) TableName() string { return "technologies" }

func (m *TechnologyModel) BeforeCreate(tx *gorm.DB) error {
	if m.TechnologyID == uuid.Nil {
		m.TechnologyID = uuid.New()
	}
	return nil
}

/* =========================
   TOPICS
========================= */

type TopicModel struct {
	TopicID          uuid.UUID `gorm:"column:topic_id;type:uuid;primaryKey" json:"topic_id"`
	TopicName        string    `gorm:"column:topic_name;type:varchar(120);not null" json:"topic_name"`
	TopicSlug        string    `gorm:"column:topic_slug;type:varchar(140);not null;uniqueIndex" json:"topic_slug"`
	TopicDescription *string   `gorm:"column:topic_description;type:text" json:"topic_description,omitempty"`
	TopicCreatedAt   time.Time `gorm:"column:topic_created_at;autoCreateTime" json:"topic_created_at"`
	TopicUpdatedAt   time.Time `gorm:"column:topic_updated_at;autoUpdateTime" json:"topic_updated_at"`
}

func (TopicModel) TableName() string { return "topics" }

func (m *TopicModel) BeforeCreate(tx *gorm.DB) error {
	if m.TopicID == uuid.Nil {
		m.TopicID = uuid.New()
	}
	return nil
}

/* =========================
   BANCAS (exam boards)
========================= */

type BancaModel struct {
	BancaID        uuid.UUID `gorm:"column:banca_id;type:uuid;primaryKey" json:"banca_id"`
	BancaName      string    `gorm:"column:banca_name;type:varchar(120);not null;uniqueIndex" json:"banca_name"`
	BancaAcronym   *string   `gorm:"column:banca_acronym;type:varchar(20)" json:"banca_acronym,omitempty"`
	BancaWebsite   *string   `gorm:"column:banca_website;type:varchar(300)" json:"banca_website,omitempty"`
	BancaCreatedAt time.Time `gorm:"column:banca_created_at;autoCreateTime" json:"banca_created_at"`
	BancaUpdatedAt time.Time `gorm:"column:banca_updated_at;autoUpdateTime" json:"banca_updated_at"`
}

func (BancaModel) TableName() string { return "bancas" }

func (m *BancaModel) BeforeCreate(tx *gorm.DB) error {
	if m.BancaID == uuid.Nil {
		m.BancaID = uuid.New()
	}
	return nil
}
