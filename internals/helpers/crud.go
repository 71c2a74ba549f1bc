package helper

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FindByID loads one T by primary key; missing rows become 404 with notFoundMsg.
func FindByID[T any](ctx context.Context, db *gorm.DB, id uuid.UUID, notFoundMsg string, preloads ...string) (*T, error) {
	var out T
	q := db.WithContext(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.Where(primaryColumn[T](db)+" = ?", id).First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound(notFoundMsg)
		}
		return nil, err
	}
	return &out, nil
}

// UpdateByID applies a column map to the row; zero rows affected means 404.
func UpdateByID[T any](ctx context.Context, db *gorm.DB, id uuid.UUID, updates map[string]any, notFoundMsg string) error {
	if len(updates) == 0 {
		return nil
	}
	var model T
	res := db.WithContext(ctx).Model(&model).
		Where(primaryColumn[T](db)+" = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NotFound(notFoundMsg)
	}
	return nil
}

// DeleteByID hard-deletes one row; a second delete of the same id is a 404.
func DeleteByID[T any](ctx context.Context, db *gorm.DB, id uuid.UUID, notFoundMsg string) error {
	var model T
	res := db.WithContext(ctx).Where(primaryColumn[T](db)+" = ?", id).Delete(&model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NotFound(notFoundMsg)
	}
	return nil
}

// primaryColumn resolves the DB name of T's primary key (e.g. "course_id").
func primaryColumn[T any](db *gorm.DB) string {
	var model T
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(&model); err == nil && stmt.Schema != nil && stmt.Schema.PrioritizedPrimaryField != nil {
		return stmt.Schema.PrioritizedPrimaryField.DBName
	}
	return "id"
}
