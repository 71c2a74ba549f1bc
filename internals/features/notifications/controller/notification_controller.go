package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/notifications/dto"
	"quizcourse_backend/internals/features/notifications/service"
	helper "quizcourse_backend/internals/helpers"
	helperAuth "quizcourse_backend/internals/helpers/auth"
)

type NotificationController struct {
	Svc *service.NotificationService
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{Svc: service.NewNotificationService(db)}
}

// GET /api/notifications?is_read=&type= (scoped to caller unless admin)
func (nc *NotificationController) List(c *fiber.Ctx) error {
	var q dto.ListNotificationsQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	owner, err := helperAuth.ResolveOwnerFilter(c, helper.ParseOptionalUUID(q.UserID))
	if err != nil {
		return err
	}
	p, err := helper.ParseListParams(c, dto.NotificationSortColumns, "created_at")
	if err != nil {
		return err
	}
	rows, total, err := nc.Svc.List(c.UserContext(), owner, q, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, rows, total)
}

func (nc *NotificationController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	row, err := nc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, row.NotificationUserID); err != nil {
		return err
	}
	return helper.JsonOK(c, row)
}

// POST /api/notifications (admin)
func (nc *NotificationController) Create(c *fiber.Ctx) error {
	var body dto.CreateNotificationRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	row, err := nc.Svc.Create(c.UserContext(), body)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, row)
}

// PATCH /api/notifications/:id (owner/admin)
func (nc *NotificationController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	current, err := nc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, current.NotificationUserID); err != nil {
		return err
	}
	var body dto.UpdateNotificationRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	row, err := nc.Svc.SetRead(c.UserContext(), id, *body.NotificationIsRead)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, row)
}

// PATCH /api/notifications/read-all
func (nc *NotificationController) ReadAll(c *fiber.Ctx) error {
	caller, err := helperAuth.CallerFromCtx(c)
	if err != nil {
		return err
	}
	n, err := nc.Svc.MarkAllRead(c.UserContext(), caller.ID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("%d notificação(ões) marcada(s) como lida(s).", n),
		"updated": n,
	})
}

func (nc *NotificationController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	current, err := nc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, current.NotificationUserID); err != nil {
		return err
	}
	if err := nc.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, service.MsgNotificationDeleted)
}
