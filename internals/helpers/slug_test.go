package helper_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	helper "quizcourse_backend/internals/helpers"
	"quizcourse_backend/internals/tests"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Introdução ao Go":       "introducao-ao-go",
		"  Ação -- Reação!!  ":   "acao-reacao",
		"Cálculo   Diferencial": "calculo-diferencial",
		"***":                    "item",
		"":                       "item",
	}
	for in, want := range cases {
		assert.Equal(t, want, helper.Slugify(in, 0), in)
	}
}

func TestSlugifyMaxLen(t *testing.T) {
	s := helper.Slugify(strings.Repeat("abc ", 50), 10)
	assert.LessOrEqual(t, len(s), 10)
	assert.False(t, strings.HasSuffix(s, "-"))
}

func TestEnsureUniqueSlugCI(t *testing.T) {
	db := tests.OpenDB(t)
	require.NoError(t, db.Exec("CREATE TABLE slugs (id INTEGER PRIMARY KEY, slug TEXT)").Error)
	ctx := context.Background()

	got, err := helper.EnsureUniqueSlugCI(ctx, db, "slugs", "slug", "golang", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "golang", got)

	require.NoError(t, db.Exec("INSERT INTO slugs (id, slug) VALUES (1, 'GoLang'), (2, 'golang-2')").Error)

	got, err = helper.EnsureUniqueSlugCI(ctx, db, "slugs", "slug", "golang", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "golang-3", got)

	// the row being renamed does not collide with itself
	exclude := func(q *gorm.DB) *gorm.DB { return q.Where("id <> ?", 1) }
	got, err = helper.EnsureUniqueSlugCI(ctx, db, "slugs", "slug", "golang", exclude, 0)
	require.NoError(t, err)
	assert.Equal(t, "golang", got)
}
