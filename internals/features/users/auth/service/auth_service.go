package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizcourse_backend/internals/configs"
	"quizcourse_backend/internals/constants"
	"quizcourse_backend/internals/features/users/auth/dto"
	authHelper "quizcourse_backend/internals/features/users/auth/helper"
	authRepo "quizcourse_backend/internals/features/users/auth/repository"
	userModel "quizcourse_backend/internals/features/users/user/model"
	userService "quizcourse_backend/internals/features/users/user/service"
	helper "quizcourse_backend/internals/helpers"
	helperAuth "quizcourse_backend/internals/helpers/auth"
)

const (
	MsgInvalidCredentials = "E-mail ou senha incorretos."
	MsgAccountDisabled    = "Sua conta está desativada. Contate o administrador."
	MsgInvalidGoogleToken = "Token do Google inválido."
)

type AuthService struct {
	DB     *gorm.DB
	Users  *userService.UserService
	Google GoogleVerifier
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		DB:     db,
		Users:  userService.NewUserService(db),
		Google: NewGoogleVerifier(configs.GoogleClientID),
	}
}

/* ==========================
   REGISTER / LOGIN
========================== */

// Register creates a STUDENT account and logs it in.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	hash, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := userModel.UserModel{
		UserName: req.UserName,
		Email:    req.Email,
		Password: hash,
		Role:     constants.RoleStudent,
		IsActive: true,
	}
	if err := s.Users.CreateModel(ctx, &user); err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := authRepo.FindUserByEmail(ctx, s.DB, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.Unauthorized(MsgInvalidCredentials)
		}
		return nil, err
	}
	if err := authHelper.CheckPasswordHash(user.Password, req.Password); err != nil {
		return nil, helper.Unauthorized(MsgInvalidCredentials)
	}
	if !user.IsActive {
		return nil, helper.Forbidden(MsgAccountDisabled)
	}
	return s.issue(*user)
}

// LoginGoogle verifies the Google ID token, then finds the user by google_id,
// links an existing account by e-mail, or creates a new STUDENT.
func (s *AuthService) LoginGoogle(ctx context.Context, req dto.LoginGoogleRequest) (*dto.AuthResponse, error) {
	identity, err := s.Google.Verify(req.IDToken)
	if err != nil {
		log.Printf("[WARN] google id token rejected: %v", err)
		return nil, helper.Unauthorized(MsgInvalidGoogleToken)
	}
	if identity.Subject == "" || identity.Email == "" {
		return nil, helper.Unauthorized(MsgInvalidGoogleToken)
	}

	user, err := authRepo.FindUserByGoogleID(ctx, s.DB, identity.Subject)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = s.linkOrCreateGoogleUser(ctx, identity)
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, helper.Forbidden(MsgAccountDisabled)
	}
	return s.issue(*user)
}

func (s *AuthService) linkOrCreateGoogleUser(ctx context.Context, identity *GoogleIdentity) (*userModel.UserModel, error) {
	existing, err := authRepo.FindUserByEmail(ctx, s.DB, identity.Email)
	switch {
	case err == nil:
		if err := authRepo.LinkGoogleID(ctx, s.DB, existing.ID, identity.Subject); err != nil {
			return nil, err
		}
		return existing, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	hash, err := authHelper.HashPassword(randomPassword())
	if err != nil {
		return nil, err
	}
	googleID := identity.Subject
	user := userModel.UserModel{
		UserName: googleUserName(identity),
		Email:    strings.ToLower(strings.TrimSpace(identity.Email)),
		Password: hash,
		Role:     constants.RoleStudent,
		GoogleID: &googleID,
		IsActive: true,
	}
	if err := s.Users.CreateModel(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

/* ==========================
   SESSION
========================== */

// Logout blacklists the presented token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}
	exp := tokenExpiry(rawToken, configs.JWTSecret)
	if exp.IsZero() {
		exp = time.Now().UTC().Add(configs.JWTAccessTTL)
	}
	return helperAuth.AddToBlacklist(ctx, s.DB, rawToken, configs.JWTSecret, exp)
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*userModel.UserModel, error) {
	return s.Users.FindByID(ctx, userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req dto.ChangePasswordRequest) error {
	user, err := authRepo.FindUserByID(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.NotFound(userService.MsgUserNotFound)
		}
		return err
	}
	if err := authHelper.CheckPasswordHash(user.Password, req.CurrentPassword); err != nil {
		return helper.NewValidationError(helper.FieldError{Field: "current_password", Message: "Senha atual incorreta."})
	}
	hash, err := authHelper.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return authRepo.UpdateUserPassword(ctx, s.DB, userID, hash)
}

/* ==========================
   UTIL
========================== */

func (s *AuthService) issue(user userModel.UserModel) (*dto.AuthResponse, error) {
	ttl := configs.JWTAccessTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	token, _, err := IssueAccessToken(user, configs.JWTSecret, ttl)
	if err != nil {
		log.Printf("[ERROR] issue access token: %v", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Falha ao gerar token de acesso.")
	}
	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
		User:        &user,
	}, nil
}

func randomPassword() string {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// googleUserName fits the Google display name into user_name (3..50 runes).
func googleUserName(identity *GoogleIdentity) string {
	name := strings.TrimSpace(identity.Name)
	if utf8.RuneCountInString(name) < 3 {
		name = strings.SplitN(identity.Email, "@", 2)[0]
	}
	if utf8.RuneCountInString(name) > 50 {
		name = string([]rune(name)[:50])
	}
	for utf8.RuneCountInString(name) < 3 {
		name += "_"
	}
	return name
}
