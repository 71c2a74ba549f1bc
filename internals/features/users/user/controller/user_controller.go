package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/users/user/dto"
	"quizcourse_backend/internals/features/users/user/service"
	helper "quizcourse_backend/internals/helpers"
	helperAuth "quizcourse_backend/internals/helpers/auth"
)

type UserController struct {
	Svc *service.UserService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{Svc: service.NewUserService(db)}
}

// GET /api/users (admin)
func (uc *UserController) List(c *fiber.Ctx) error {
	var q dto.ListUsersQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	p, err := helper.ParseListParams(c, dto.UserSortColumns, "created_at")
	if err != nil {
		return err
	}

	users, total, err := uc.Svc.List(c.UserContext(), q, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, users, total)
}

// GET /api/users/:id (owner/admin)
func (uc *UserController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	user, err := uc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, user.ID); err != nil {
		return err
	}
	return helper.JsonOK(c, user)
}

// POST /api/users (admin, any role)
func (uc *UserController) Create(c *fiber.Ctx) error {
	var body dto.CreateUserRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}

	user, err := uc.Svc.Create(c.UserContext(), body)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, user)
}

// PATCH /api/users/:id (owner/admin; role & is_active admin only)
func (uc *UserController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	user, err := uc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, user.ID); err != nil {
		return err
	}

	var body dto.UpdateUserRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	if body.TouchesPrivilegedFields() {
		if err := helperAuth.RequireAdmin(c); err != nil {
			return err
		}
	}

	updated, err := uc.Svc.Update(c.UserContext(), id, body)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, updated)
}

// PATCH /api/users/:id/avatar (owner/admin, multipart field "avatar")
func (uc *UserController) UploadAvatar(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	user, err := uc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, user.ID); err != nil {
		return err
	}

	fh, err := c.FormFile("avatar")
	if err != nil {
		return helper.NewValidationError(helper.FieldError{Field: "avatar", Message: "Arquivo de imagem é obrigatório."})
	}
	url, err := helper.SaveImageAsWebP(fh, "avatars")
	if err != nil {
		return err
	}

	updated, old, err := uc.Svc.SetAvatar(c.UserContext(), id, url)
	if err != nil {
		helper.RemoveUploaded(url)
		return err
	}
	helper.RemoveUploaded(old)
	return helper.JsonUpdated(c, updated)
}

// DELETE /api/users/:id (admin)
func (uc *UserController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	if err := uc.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, service.MsgUserDeleted)
}
