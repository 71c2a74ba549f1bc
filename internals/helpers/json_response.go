// file: internals/helpers/json_response.go
package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const HeaderTotalCount = "X-Total-Count"

/* ===============================
   Error helpers (standard shape)
=================================*/

type ErrorResponse struct {
	Message   string       `json:"message"`
	ErrorCode string       `json:"error_code,omitempty"`
	Errors    []FieldError `json:"errors,omitempty"`
}

func statusToErrorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	default:
		if status >= 500 {
			return "INTERNAL_ERROR"
		}
		return "ERROR"
	}
}

// JsonError: generic error body {message, error_code}
func JsonError(c *fiber.Ctx, status int, message string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" {
		message = fiber.ErrInternalServerError.Message
		if status < 500 {
			message = "Erro"
		}
	}
	return c.Status(status).JSON(ErrorResponse{
		Message:   message,
		ErrorCode: statusToErrorCode(status),
	})
}

// JsonValidationError: 400 {message, errors[]}
func JsonValidationError(c *fiber.Ctx, ve *ValidationError) error {
	errs := ve.Errors
	if errs == nil {
		errs = []FieldError{}
	}
	msg := ve.Message
	if msg == "" {
		msg = MsgValidationFailed
	}
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Message:   msg,
		ErrorCode: "VALIDATION_ERROR",
		Errors:    errs,
	})
}

/* ===============================
   Success responses: the stored record as-is
=================================*/

// JsonList writes the array body and the total count header.
func JsonList[T any](c *fiber.Ctx, data []T, total int64) error {
	if data == nil {
		data = []T{}
	}
	c.Set(HeaderTotalCount, strconv.FormatInt(total, 10))
	return c.Status(fiber.StatusOK).JSON(data)
}

func JsonOK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

func JsonCreated(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func JsonUpdated(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// JsonDeleted: {message}
func JsonDeleted(c *fiber.Ctx, message string) error {
	if strings.TrimSpace(message) == "" {
		message = "Registro removido com sucesso."
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": message,
	})
}

func JsonMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
	})
}
