package helper

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ptBRTranslations "github.com/go-playground/validator/v10/translations/pt_BR"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const MsgValidationFailed = "Falha na validação dos dados."

// FieldError describes one failing field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is rendered as 400 {message, errors}.
type ValidationError struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return e.Message + " " + strings.Join(parts, "; ")
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Message: MsgValidationFailed, Errors: fields}
}

/* ===============================
   Validator singleton
=================================*/

var (
	validateOnce sync.Once
	validate     *validator.Validate
	translator   ut.Translator
)

func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		// JSON / query names in errors instead of Go field names
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "query", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})

		// ids are accepted in either case, matching ParseID
		_ = validate.RegisterValidation("uuid", func(fl validator.FieldLevel) bool {
			return isUUID(fl.Field().String())
		})

		locale := pt_BR.New()
		uni := ut.New(locale, locale)
		translator, _ = uni.GetTranslator("pt_BR")
		_ = ptBRTranslations.RegisterDefaultTranslations(validate, translator)
	})
	return validate
}

// Checker is implemented by request DTOs with rules spanning several fields.
// Its errors are reported together with the tag errors.
type Checker interface {
	Check() []FieldError
}

// Validate runs struct validation and converts the result to *ValidationError.
func Validate(v any) error {
	var out []FieldError
	if err := Validator().Struct(v); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			return NewValidationError(FieldError{Field: "body", Message: err.Error()})
		}
		for _, fe := range ves {
			out = append(out, FieldError{Field: fieldPath(fe), Message: fe.Translate(translator)})
		}
	}
	if ch, ok := v.(Checker); ok {
		out = append(out, ch.Check()...)
	}
	if len(out) == 0 {
		return nil
	}
	return NewValidationError(out...)
}

// MergeFieldErrors adds rule errors that need stored state to the result of
// ParseBody. Other errors and undecodable bodies pass through unchanged.
func MergeFieldErrors(err error, extra ...FieldError) error {
	var ve *ValidationError
	switch {
	case err == nil:
		if len(extra) == 0 {
			return nil
		}
		return NewValidationError(extra...)
	case !errors.As(err, &ve), len(ve.Errors) == 1 && ve.Errors[0].Field == "body":
		return err
	}
	ve.Errors = append(ve.Errors, extra...)
	return ve
}

// "CreateQuestionRequest.options[0].option_text" -> "options[0].option_text"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

/* ===============================
   Request binding
=================================*/

// Normalizer is implemented by request DTOs that trim/canonicalise input
// before validation.
type Normalizer interface {
	Normalize()
}

// ParseBody decodes the JSON body into dst, normalises and validates it.
func ParseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return NewValidationError(FieldError{Field: "body", Message: "Corpo da requisição inválido."})
	}
	if n, ok := dst.(Normalizer); ok {
		n.Normalize()
	}
	return Validate(dst)
}

// ParseQuery binds query-string filters into dst and validates them.
// camelCase keys (userId) are accepted as aliases of snake_case ones (user_id).
func ParseQuery(c *fiber.Ctx, dst any) error {
	normalizeQueryKeys(c)
	if err := c.QueryParser(dst); err != nil {
		return NewValidationError(FieldError{Field: "query", Message: "Parâmetros de consulta inválidos: " + err.Error()})
	}
	return Validate(dst)
}

func normalizeQueryKeys(c *fiber.Ctx) {
	args := c.Context().QueryArgs()
	aliases := map[string]string{}
	args.VisitAll(func(k, v []byte) {
		key := string(k)
		if snake := toSnake(key); snake != key && !args.Has(snake) {
			aliases[snake] = string(v)
		}
	})
	for k, v := range aliases {
		args.Set(k, v)
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseID reads a path parameter that must be a UUID.
func ParseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := uuid.Parse(raw)
	if err != nil || len(raw) != 36 || id == uuid.Nil {
		return uuid.Nil, NewValidationError(FieldError{Field: name, Message: name + " deve ser um UUID válido."})
	}
	return id, nil
}

// isUUID accepts the canonical 8-4-4-4-12 form, upper or lower case.
func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// ParseUUIDField parses a required id taken from a body field.
func ParseUUIDField(field, raw string) (uuid.UUID, error) {
	id := ParseOptionalUUID(raw)
	if id == nil || *id == uuid.Nil {
		return uuid.Nil, NewValidationError(FieldError{Field: field, Message: field + " deve ser um UUID válido."})
	}
	return *id, nil
}

// ParseOptionalUUID parses an optional filter value already checked by the "uuid" tag.
func ParseOptionalUUID(s string) *uuid.UUID {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

// ParseOptionalUUIDPtr is ParseOptionalUUID for optional body fields.
func ParseOptionalUUIDPtr(s *string) *uuid.UUID {
	if s == nil {
		return nil
	}
	return ParseOptionalUUID(*s)
}
