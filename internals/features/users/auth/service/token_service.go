package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	userModel "quizcourse_backend/internals/features/users/user/model"
)

// BuildAccessClaims: "sub" is the user id; "id" is kept for older clients.
// jti makes two tokens issued in the same second distinct, so revoking one
// never revokes the other.
func BuildAccessClaims(user userModel.UserModel, now time.Time, ttl time.Duration) jwt.MapClaims {
	return jwt.MapClaims{
		"typ":       "access",
		"jti":       uuid.NewString(),
		"sub":       user.ID.String(),
		"id":        user.ID.String(),
		"role":      user.Role,
		"user_name": user.UserName,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
}

// IssueAccessToken signs an HS256 access token for user.
func IssueAccessToken(user userModel.UserModel, secret string, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, errors.New("JWT_SECRET is not set")
	}
	now := time.Now().UTC()
	claims := BuildAccessClaims(user, now, ttl)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, now.Add(ttl), nil
}

// tokenExpiry reads exp from an already verified token; zero time if absent.
func tokenExpiry(raw, secret string) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}); err != nil {
		return time.Time{}
	}
	if exp, ok := claims["exp"].(float64); ok {
		return time.Unix(int64(exp), 0).UTC()
	}
	return time.Time{}
}
