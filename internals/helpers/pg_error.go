package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgInvalidTextRepr     = "22P02"
	pgCheckViolation      = "23514"
)

// MapPGError translates store errors into an HTTP status + message.
// ok=false means the error is not a known store condition.
func MapPGError(err error) (status int, message string, ok bool) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.StatusNotFound, "Registro não encontrado.", true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fiber.StatusConflict, "Registro duplicado.", true
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fiber.StatusNotFound, "Registro relacionado não encontrado.", true
	}

	// pgx
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return mapPGCode(pgxErr.Code, pgxErr.Message)
	}
	// lib/pq
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return mapPGCode(string(pqErr.Code), pqErr.Message)
	}
	return fiber.StatusInternalServerError, err.Error(), false
}

func mapPGCode(code, msg string) (int, string, bool) {
	switch code {
	case pgForeignKeyViolation:
		return fiber.StatusNotFound, "Registro relacionado não encontrado.", true
	case pgUniqueViolation:
		return fiber.StatusConflict, "Registro duplicado.", true
	case pgInvalidTextRepr, pgCheckViolation:
		return fiber.StatusBadRequest, "Dados inválidos para o banco de dados.", true
	default:
		return fiber.StatusInternalServerError, msg, false
	}
}

// IsUniqueViolation reports a duplicate-key failure from any driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	status, _, ok := MapPGError(err)
	return ok && status == fiber.StatusConflict
}
