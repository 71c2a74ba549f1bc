package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "quizcourse_backend/internals/helpers"
)

const slugMaxLen = 80

// uniqueSlug slugifies preferred (or fallback when empty) and makes it unique
// in table.column, ignoring the row identified by selfCol = selfID on update.
func uniqueSlug(ctx context.Context, db *gorm.DB, table, column, preferred, fallback string, selfCol string, selfID uuid.UUID) (string, error) {
	base := strings.TrimSpace(preferred)
	if base == "" {
		base = fallback
	}
	var exclude func(*gorm.DB) *gorm.DB
	if selfID != uuid.Nil {
		exclude = func(q *gorm.DB) *gorm.DB { return q.Where(selfCol+" <> ?", selfID) }
	}
	return helper.EnsureUniqueSlugCI(ctx, db, table, column, helper.Slugify(base, slugMaxLen), exclude, slugMaxLen)
}

// listNamed runs count + page for a taxonomy table filtered by ?q on nameCol.
func listNamed[T any](ctx context.Context, db *gorm.DB, nameCol, q string, p helper.ListParams) ([]T, int64, error) {
	var model T
	base := db.WithContext(ctx).Model(&model)
	if s := strings.TrimSpace(q); s != "" {
		base = base.Where("LOWER("+nameCol+") LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []T
	if err := p.Apply(base).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
