package dto

import (
	"strings"

	helper "quizcourse_backend/internals/helpers"
)

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// nullable turns "" into SQL NULL for optional text columns.
func nullable(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

// Shared by every taxonomy list: ?q= matches the name.
type ListTaxonomyQuery struct {
	Q string `query:"q" validate:"omitempty,max=100"`
}

/* =========================
   TAGS
========================= */

type CreateTagRequest struct {
	TagName string  `json:"tag_name" validate:"required,min=1,max=60"`
	TagSlug *string `json:"tag_slug" validate:"omitnil,max=80"`
}

func (r *CreateTagRequest) Normalize() {
	r.TagName = strings.TrimSpace(r.TagName)
	r.TagSlug = trimPtr(r.TagSlug)
}

type UpdateTagRequest struct {
	TagName *string `json:"tag_name" validate:"omitnil,min=1,max=60"`
	TagSlug *string `json:"tag_slug" validate:"omitnil,min=1,max=80"`
}

func (r *UpdateTagRequest) Normalize() {
	r.TagName = trimPtr(r.TagName)
	r.TagSlug = trimPtr(r.TagSlug)
}

func (r *UpdateTagRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	if r.TagName != nil {
		m["tag_name"] = *r.TagName
	}
	return m
}

var TagSortColumns = helper.SortColumns{
	"created_at": "tag_created_at",
	"name":       "tag_name",
}

/* =========================
   TECHNOLOGIES
========================= */

type CreateTechnologyRequest struct {
	TechnologyName    string  `json:"technology_name" validate:"required,min=1,max=80"`
	TechnologySlug    *string `json:"technology_slug" validate:"omitnil,max=100"`
	TechnologyIconURL *string `json:"technology_icon_url" validate:"omitempty,url,max=500"`
}

func (r *CreateTechnologyRequest) Normalize() {
	r.TechnologyName = strings.TrimSpace(r.TechnologyName)
	r.TechnologySlug = trimPtr(r.TechnologySlug)
	r.TechnologyIconURL = trimPtr(r.TechnologyIconURL)
}

type UpdateTechnologyRequest struct {
	TechnologyName    *string `json:"technology_name" validate:"omitnil,min=1,max=80"`
	TechnologySlug    *string `json:"technology_slug" validate:"omitnil,min=1,max=100"`
	TechnologyIconURL *string `json:"technology_icon_url" validate:"omitempty,url,max=500"`
}

func (r *UpdateTechnologyRequest) Normalize() {
	r.TechnologyName = trimPtr(r.TechnologyName)
	r.TechnologySlug = trimPtr(r.TechnologySlug)
	r.TechnologyIconURL = trimPtr(r.TechnologyIconURL)
}

func (r *UpdateTechnologyRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	if r.TechnologyName != nil {
		m["technology_name"] = *r.TechnologyName
	}
	if r.TechnologyIconURL != nil {
		m["technology_icon_url"] = nullable(r.TechnologyIconURL)
	}
	return m
}

var TechnologySortColumns = helper.SortColumns{
	"created_at": "technology_created_at",
	"name":       "technology_name",
}

/* =========================
   TOPICS
========================= */

type CreateTopicRequest struct {
	TopicName        string  `json:"topic_name" validate:"required,min=1,max=120"`
	TopicSlug        *string `json:"topic_slug" validate:"omitnil,max=140"`
	TopicDescription *string `json:"topic_description" validate:"omitempty,max=2000"`
}

func (r *CreateTopicRequest) Normalize() {
	r.TopicName = strings.TrimSpace(r.TopicName)
	r.TopicSlug = trimPtr(r.TopicSlug)
	r.TopicDescription = trimPtr(r.TopicDescription)
}

type UpdateTopicRequest struct {
	TopicName        *string `json:"topic_name" validate:"omitnil,min=1,max=120"`
	TopicSlug        *string `json:"topic_slug" validate:"omitnil,min=1,max=140"`
	TopicDescription *string `json:"topic_description" validate:"omitempty,max=2000"`
}

func (r *UpdateTopicRequest) Normalize() {
	r.TopicName = trimPtr(r.TopicName)
	r.TopicSlug = trimPtr(r.TopicSlug)
	r.TopicDescription = trimPtr(r.TopicDescription)
}

func (r *UpdateTopicRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	if r.TopicName != nil {
		m["topic_name"] = *r.TopicName
	}
	if r.TopicDescription != nil {
		m["topic_description"] = nullable(r.TopicDescription)
	}
	return m
}

var TopicSortColumns = helper.SortColumns{
	"created_at": "topic_created_at",
	"name":       "topic_name",
}

/* =========================
   BANCAS
========================= */

type CreateBancaRequest struct {
	BancaName    string  `json:"banca_name" validate:"required,min=2,max=120"`
	BancaAcronym *string `json:"banca_acronym" validate:"omitempty,max=20"`
	BancaWebsite *string `json:"banca_website" validate:"omitempty,url,max=300"`
}

func (r *CreateBancaRequest) Normalize() {
	r.BancaName = strings.TrimSpace(r.BancaName)
	r.BancaAcronym = trimPtr(r.BancaAcronym)
	r.BancaWebsite = trimPtr(r.BancaWebsite)
}

type UpdateBancaRequest struct {
	BancaName    *string `json:"banca_name" validate:"omitnil,min=2,max=120"`
	BancaAcronym *string `json:"banca_acronym" validate:"omitempty,max=20"`
	BancaWebsite *string `json:"banca_website" validate:"omitempty,url,max=300"`
}

func (r *UpdateBancaRequest) Normalize() {
	r.BancaName = trimPtr(r.BancaName)
	r.BancaAcronym = trimPtr(r.BancaAcronym)
	r.BancaWebsite = trimPtr(r.BancaWebsite)
}

func (r *UpdateBancaRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	if r.BancaName != nil {
		m["banca_name"] = *r.BancaName
	}
	if r.BancaAcronym != nil {
		m["banca_acronym"] = nullable(r.BancaAcronym)
	}
	if r.BancaWebsite != nil {
		m["banca_website"] = nullable(r.BancaWebsite)
	}
	return m
}

var BancaSortColumns = helper.SortColumns{
	"created_at": "banca_created_at",
	"name":       "banca_name",
}
