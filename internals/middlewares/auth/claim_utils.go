package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizcourse_backend/internals/constants"
	helperAuth "quizcourse_backend/internals/helpers/auth"
)

var errUserInactive = errors.New("user inactive")

/* ======== Extractors ======== */

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", errors.New("Token de acesso não informado.")
	}

	// tolerate repeated spaces and any casing of "Bearer"
	fields := strings.Fields(auth)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", errors.New("Formato do token inválido.")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", errors.New("Token de acesso vazio.")
	}
	return tok, nil
}

func validateTokenExpiry(claims jwt.MapClaims, skew time.Duration) error {
	expVal, ok := claims["exp"]
	if !ok {
		return fmt.Errorf("token has no exp")
	}

	var expUnix int64
	switch t := expVal.(type) {
	case float64:
		expUnix = int64(t)
	case int64:
		expUnix = t
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid exp format")
		}
		expUnix = n
	default:
		return fmt.Errorf("invalid exp type %T", t)
	}

	expTime := time.Unix(expUnix, 0).UTC()
	if time.Now().UTC().After(expTime.Add(skew)) {
		return fmt.Errorf("token expired at %v", expTime)
	}
	return nil
}

// extractUserID reads "sub", falling back to the legacy "id" claim.
func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	for _, key := range []string{"sub", "id"} {
		if s, ok := claims[key].(string); ok && strings.TrimSpace(s) != "" {
			id, err := uuid.Parse(strings.TrimSpace(s))
			if err != nil || id == uuid.Nil {
				return uuid.Nil, fmt.Errorf("invalid %s claim", key)
			}
			return id, nil
		}
	}
	return uuid.Nil, fmt.Errorf("no user id")
}

type callerRow struct {
	ID       uuid.UUID
	UserName string
	Role     string
	IsActive bool
}

// loadActiveUser reads role from the store so role changes apply without re-login.
func loadActiveUser(db *gorm.DB, userID uuid.UUID) (*callerRow, error) {
	var u callerRow
	if err := db.Table("users").
		Select("id, user_name, role, is_active").
		Where("id = ?", userID).
		Take(&u).Error; err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, errUserInactive
	}
	return &u, nil
}

/* ======== Store claims to Locals ======== */

func storeCallerToLocals(c *fiber.Ctx, u *callerRow) {
	c.Locals(helperAuth.LocUserID, u.ID.String())
	c.Locals(helperAuth.LocUserRole, constants.NormalizeRole(u.Role))
	c.Locals(helperAuth.LocUserName, u.UserName)
}
