package routes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizcourse_backend/internals/tests"
)

func TestHealth(t *testing.T) {
	db := tests.OpenDB(t)
	app := tests.NewApp(db)

	res := tests.Do(t, app, "GET", "/health", "", nil)
	require.Equal(t, 200, res.Status)
	body := res.Map(t)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Connected", body["database"])

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	res = tests.Do(t, app, "GET", "/health", "", nil)
	require.Equal(t, 503, res.Status)
	assert.Equal(t, "DOWN", res.Map(t)["status"])
}

func TestUnknownRouteUnderAPIRequiresAuth(t *testing.T) {
	app := tests.NewApp(tests.OpenDB(t))

	res := tests.Do(t, app, "GET", "/api/does-not-exist", "", nil)
	assert.Equal(t, 401, res.Status)
}
