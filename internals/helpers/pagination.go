package helper

import (
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// ListParams is the paging/sorting part shared by every list endpoint:
// ?limit=&offset=&sort_by=&order=
type ListParams struct {
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
	SortBy string `query:"sort_by"`
	Order  string `query:"order" validate:"omitempty,oneof=asc desc"`

	sortColumn string
}

// SortColumns maps public sort keys to columns, e.g. {"created_at": "course_created_at"}.
type SortColumns map[string]string

// ParseListParams binds and validates paging; sort_by must be one of allowed.
// defaultKey is used when sort_by is absent.
func ParseListParams(c *fiber.Ctx, allowed SortColumns, defaultKey string) (ListParams, error) {
	var p ListParams
	normalizeQueryKeys(c)
	if err := c.QueryParser(&p); err != nil {
		return p, NewValidationError(FieldError{Field: "query", Message: "Parâmetros de paginação inválidos."})
	}
	p.Order = strings.ToLower(strings.TrimSpace(p.Order))
	p.SortBy = strings.TrimSpace(p.SortBy)
	if err := Validate(&p); err != nil {
		return p, err
	}

	key := p.SortBy
	if key == "" {
		key = defaultKey
	}
	col, ok := allowed[key]
	if !ok {
		return p, NewValidationError(FieldError{
			Field:   "sort_by",
			Message: "sort_by deve ser um de: " + strings.Join(allowed.keys(), ", ") + ".",
		})
	}
	p.sortColumn = col
	if p.Order == "" {
		p.Order = "desc"
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	return p, nil
}

// Apply adds ORDER BY / LIMIT / OFFSET. Column names come from the whitelist only.
func (p ListParams) Apply(db *gorm.DB) *gorm.DB {
	if p.sortColumn != "" {
		dir := "DESC"
		if p.Order == "asc" {
			dir = "ASC"
		}
		db = db.Order(p.sortColumn + " " + dir)
	}
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return db.Limit(limit).Offset(p.Offset)
}

func (s SortColumns) keys() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
