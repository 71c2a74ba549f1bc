package helper_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "quizcourse_backend/internals/helpers"
)

func listApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	cols := helper.SortColumns{"name": "tag_name", "created_at": "tag_created_at"}
	app.Get("/", func(c *fiber.Ctx) error {
		p, err := helper.ParseListParams(c, cols, "created_at")
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"limit": p.Limit, "offset": p.Offset, "order": p.Order})
	})
	return app
}

func TestParseListParams(t *testing.T) {
	app := listApp()

	cases := []struct {
		query  string
		status int
	}{
		{"", 200},
		{"?limit=10&offset=20&order=ASC", 200},
		{"?sort_by=name", 200},
		{"?sortBy=name", 200},
		{"?limit=0", 200},
		{"?limit=101", 400},
		{"?offset=-1", 400},
		{"?order=sideways", 400},
		{"?sort_by=password", 400},
		{"?limit=abc", 400},
	}
	for _, tc := range cases {
		res, err := app.Test(httptest.NewRequest("GET", "/"+tc.query, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, res.StatusCode, tc.query)
	}
}

func TestParseListParamsDefaults(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		p, err := helper.ParseListParams(c, helper.SortColumns{"created_at": "x"}, "created_at")
		require.NoError(t, err)
		assert.Equal(t, helper.DefaultLimit, p.Limit)
		assert.Equal(t, 0, p.Offset)
		assert.Equal(t, "desc", p.Order)
		return nil
	})
	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
}
