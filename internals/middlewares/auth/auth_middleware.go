package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"quizcourse_backend/internals/configs"
	helper "quizcourse_backend/internals/helpers"
	helperAuth "quizcourse_backend/internals/helpers/auth"
)

// AuthMiddleware verifies the bearer token and loads the caller into Locals.
// Any failure stops the request with 401 (403 for a disabled account).
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Authorization header (or access_token cookie)
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "JWT secret ausente.")
		}

		// 2) Blacklist
		blacklisted, err := helperAuth.IsBlacklisted(c.Context(), db, tokenString, secretKey)
		if err != nil {
			log.Println("[ERROR] blacklist lookup:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Erro interno do servidor.")
		}
		if blacklisted {
			return fiber.NewError(fiber.StatusUnauthorized, "Sessão encerrada. Faça login novamente.")
		}

		// 3) Signature; exp is checked below with clock skew
		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secretKey), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Token inválido.")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Token expirado.")
		}

		// 4) Subject must be a live, active user
		userID, err := extractUserID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Token sem identificador de usuário válido.")
		}

		user, err := loadActiveUser(db, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Usuário não encontrado.")
			}
			if errors.Is(err, errUserInactive) {
				return fiber.NewError(fiber.StatusForbidden, "Sua conta está desativada.")
			}
			return err
		}

		// 5) Locals
		storeCallerToLocals(c, user)
		helper.SetRawAccessToken(c, tokenString)
		return c.Next()
	}
}
