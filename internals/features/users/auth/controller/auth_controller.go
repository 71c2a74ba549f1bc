package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/users/auth/dto"
	"quizcourse_backend/internals/features/users/auth/service"
	helper "quizcourse_backend/internals/helpers"
	helperAuth "quizcourse_backend/internals/helpers/auth"
)

type AuthController struct {
	Svc *service.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{Svc: service.NewAuthService(db)}
}

// POST /auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var body dto.RegisterRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	res, err := ac.Svc.Register(c.UserContext(), body)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, res)
}

// POST /auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var body dto.LoginRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	res, err := ac.Svc.Login(c.UserContext(), body)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, res)
}

// POST /auth/login-google
func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var body dto.LoginGoogleRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	res, err := ac.Svc.LoginGoogle(c.UserContext(), body)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, res)
}

// POST /auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Svc.Logout(c.UserContext(), helper.GetRawAccessToken(c)); err != nil {
		return err
	}
	c.ClearCookie("access_token")
	return helper.JsonMessage(c, fiber.StatusOK, "Logout realizado com sucesso.")
}

// GET /auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	user, err := ac.Svc.Me(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, user)
}

// POST /auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var body dto.ChangePasswordRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	if err := ac.Svc.ChangePassword(c.UserContext(), userID, body); err != nil {
		return err
	}
	return helper.JsonMessage(c, fiber.StatusOK, "Senha alterada com sucesso.")
}
