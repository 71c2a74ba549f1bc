package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is installed as fiber.Config.ErrorHandler. Handlers and services
// just return errors; the body shape is decided here.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return JsonValidationError(c, ve)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return FromFiberError(c, fe)
	}

	if status, msg, ok := MapPGError(err); ok {
		return JsonError(c, status, msg)
	}

	reqID, _ := c.Locals("reqid").(string)
	log.Printf("[ERROR] id=%s %s %s: %v", reqID, c.Method(), c.OriginalURL(), err)
	return JsonError(c, fiber.StatusInternalServerError, "Erro interno do servidor.")
}

/* ===============================
   Domain error constructors
=================================*/

func NotFound(message string) *fiber.Error {
	if message == "" {
		message = "Registro não encontrado."
	}
	return fiber.NewError(fiber.StatusNotFound, message)
}

func Forbidden(message string) *fiber.Error {
	if message == "" {
		message = "Acesso negado."
	}
	return fiber.NewError(fiber.StatusForbidden, message)
}

func Unauthorized(message string) *fiber.Error {
	if message == "" {
		message = "Não autenticado."
	}
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Conflict(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusConflict, message)
}
