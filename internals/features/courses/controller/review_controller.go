package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizcourse_backend/internals/features/courses/dto"
	"quizcourse_backend/internals/features/courses/service"
	helper "quizcourse_backend/internals/helpers"
	helperAuth "quizcourse_backend/internals/helpers/auth"
)

type ReviewController struct {
	Svc *service.ReviewService
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{Svc: service.NewReviewService(db)}
}

// GET /api/reviews?course_id=&user_id=&min_rating= (public within the API)
func (rc *ReviewController) List(c *fiber.Ctx) error {
	var q dto.ListReviewsQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	p, err := helper.ParseListParams(c, dto.ReviewSortColumns, "created_at")
	if err != nil {
		return err
	}
	rows, total, err := rc.Svc.List(c.UserContext(), q, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, rows, total)
}

func (rc *ReviewController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	row, err := rc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, row)
}

func (rc *ReviewController) Create(c *fiber.Ctx) error {
	var body dto.CreateReviewRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	userID, err := helperAuth.ResolveSubject(c, rc.Svc.DB, helper.ParseOptionalUUIDPtr(body.ReviewUserID))
	if err != nil {
		return err
	}
	row, err := rc.Svc.Create(c.UserContext(), userID, body)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, row)
}

func (rc *ReviewController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	current, err := rc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, current.ReviewUserID); err != nil {
		return err
	}
	var body dto.UpdateReviewRequest
	if err := helper.ParseBody(c, &body); err != nil {
		return err
	}
	row, err := rc.Svc.Update(c.UserContext(), id, body)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, row)
}

func (rc *ReviewController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	current, err := rc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := helperAuth.Authorize(c, current.ReviewUserID); err != nil {
		return err
	}
	if err := rc.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, service.MsgReviewDeleted)
}
