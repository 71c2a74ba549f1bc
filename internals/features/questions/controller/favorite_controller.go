package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/questions/dto"
	"quizcourse_backend/internals/features/questions/service"
	helper "quizcourse_backend/internals/helpers"
	helperAuth "quizcourse_backend/internals/helpers/auth"
)

type FavoriteController struct {
	Svc *service.FavoriteService
}

func NewFavoriteController(db *gorm.DB) *FavoriteController {
	return &FavoriteController{Svc: service.NewFavoriteService(db)}
}

// GET /api/favorite-questions (scoped to caller unless admin)
func (fc *FavoriteController) List(c *fiber.Ctx) error {
	var q dto.ListFavoritesQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	owner, err := helperAuth.ResolveOwnerFilter(c, helper.ParseOptionalUUID(q.UserID))
	if err != nil {
		return err
	}
	p, err := helper.ParseListParams(c, dto.FavoriteSortColumns, "created_at")
	if err != nil {
		return err
	}
	rows, total, err := fc.Svc.List(c.UserContext(), owner, q, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, rows, total)
}

func (fc *FavoriteController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	row, err := fc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, row.FavoriteUserID); err != nil {
		return err
	}
	return helper.JsonOK(c, row)
}

// POST /api/favorite-questions: 201 on first favourite, 200 with the same row afterwards.
func (fc *FavoriteController) Create(c *fiber.Ctx) error {
	var body dto.CreateFavoriteRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	userID, err := helperAuth.ResolveSubject(c, fc.Svc.DB, helper.ParseOptionalUUIDPtr(body.FavoriteUserID))
	if err != nil {
		return err
	}
	row, created, err := fc.Svc.Create(c.UserContext(), userID, body)
	if err != nil {
		return err
	}
	if !created {
		return helper.JsonOK(c, row)
	}
	return helper.JsonCreated(c, row)
}

func (fc *FavoriteController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	current, err := fc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, current.FavoriteUserID); err != nil {
		return err
	}
	if err := fc.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, service.MsgFavoriteDeleted)
}
