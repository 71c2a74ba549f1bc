package helper

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "quizcourse_backend/internals/features/users/auth/model"
)

// Only HMAC(token) is stored, so a DB dump does not leak live tokens.
func hmacHex(msg, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(msg))
	return hex.EncodeToString(m.Sum(nil))
}

// AddToBlacklist revokes rawAccessToken until expiresAt.
func AddToBlacklist(ctx context.Context, db *gorm.DB, rawAccessToken, jwtSecret string, expiresAt time.Time) error {
	if db == nil || strings.TrimSpace(rawAccessToken) == "" {
		return nil
	}
	expiresAt = expiresAt.UTC()
	row := authModel.TokenBlacklist{
		Token:     hmacHex(rawAccessToken, jwtSecret),
		ExpiredAt: expiresAt,
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.Assignments(map[string]any{"expired_at": expiresAt, "deleted_at": nil}),
	}).Create(&row).Error
}

// IsBlacklisted: an active, not yet expired row exists for the token.
func IsBlacklisted(ctx context.Context, db *gorm.DB, rawAccessToken, jwtSecret string) (bool, error) {
	if db == nil || strings.TrimSpace(rawAccessToken) == "" {
		return false, nil
	}
	var n int64
	err := db.WithContext(ctx).Model(&authModel.TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", hmacHex(rawAccessToken, jwtSecret), time.Now().UTC()).
		Count(&n).Error
	return n > 0, err
}

// PurgeExpired hard-deletes rows that expired before olderThan.
func PurgeExpired(ctx context.Context, db *gorm.DB, olderThan time.Time) (int64, error) {
	res := db.WithContext(ctx).Unscoped().
		Where("expired_at <= ?", olderThan.UTC()).
		Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
