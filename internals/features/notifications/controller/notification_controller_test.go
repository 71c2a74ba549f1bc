package controller_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizcourse_backend/internals/constants"
	"quizcourse_backend/internals/features/notifications/service"
	"quizcourse_backend/internals/tests"
)

func TestNotifications(t *testing.T) {
	db := tests.OpenDB(t)
	app := tests.NewApp(db)
	admin := tests.Token(t, tests.CreateUser(t, db, constants.RoleAdmin))
	a := tests.CreateUser(t, db, constants.RoleStudent)
	b := tests.CreateUser(t, db, constants.RoleStudent)
	tokA, tokB := tests.Token(t, a), tests.Token(t, b)

	send := func(userID, title string) map[string]any {
		res := tests.Do(t, app, "POST", "/api/notifications", admin, map[string]any{
			"notification_user_id": userID,
			"notification_title":   title,
			"notification_message": "Mensagem de teste.",
			"notification_data":    map[string]any{"course_id": "abc"},
		})
		require.Equal(t, 201, res.Status, string(res.Body))
		return res.Map(t)
	}

	first := send(a.ID.String(), "Bem-vindo")
	assert.Equal(t, "INFO", first["notification_type"])
	assert.Equal(t, false, first["notification_is_read"])
	assert.Equal(t, "abc", first["notification_data"].(map[string]any)["course_id"])
	send(a.ID.String(), "Novo curso")
	send(b.ID.String(), "Para B")

	res := tests.Do(t, app, "POST", "/api/notifications", tokA, map[string]any{
		"notification_user_id": b.ID.String(),
		"notification_title":   "Spam",
		"notification_message": "x",
	})
	assert.Equal(t, 403, res.Status)

	res = tests.Do(t, app, "POST", "/api/notifications", admin, map[string]any{
		"notification_user_id": uuid.NewString(),
		"notification_title":   "Ninguém",
		"notification_message": "x",
	})
	assert.Equal(t, 404, res.Status)

	res = tests.Do(t, app, "GET", "/api/notifications", tokA, nil)
	require.Equal(t, 200, res.Status)
	assert.Len(t, res.List(t), 2)

	res = tests.Do(t, app, "GET", "/api/notifications?user_id="+b.ID.String(), tokA, nil)
	assert.Equal(t, 403, res.Status)

	id := tests.ID(t, first, "notification_id")
	res = tests.Do(t, app, "GET", "/api/notifications/"+id, tokB, nil)
	assert.Equal(t, 403, res.Status)

	res = tests.Do(t, app, "PATCH", "/api/notifications/"+id, tokA, map[string]any{"notification_is_read": true})
	require.Equal(t, 200, res.Status, string(res.Body))
	read := res.Map(t)
	assert.Equal(t, true, read["notification_is_read"])
	assert.NotEmpty(t, read["notification_read_at"])

	res = tests.Do(t, app, "PATCH", "/api/notifications/"+id, tokA, map[string]any{})
	assert.Equal(t, 400, res.Status)

	res = tests.Do(t, app, "PATCH", "/api/notifications/read-all", tokA, nil)
	require.Equal(t, 200, res.Status, string(res.Body))
	assert.EqualValues(t, 1, res.Map(t)["updated"])

	res = tests.Do(t, app, "GET", "/api/notifications?is_read=false", tokA, nil)
	require.Equal(t, 200, res.Status)
	assert.Empty(t, res.List(t))

	// read-all touches only the caller's notifications
	res = tests.Do(t, app, "GET", "/api/notifications?is_read=false", tokB, nil)
	require.Equal(t, 200, res.Status)
	assert.Len(t, res.List(t), 1)

	res = tests.Do(t, app, "DELETE", "/api/notifications/"+id, tokA, nil)
	require.Equal(t, 200, res.Status)
	assert.Equal(t, service.MsgNotificationDeleted, res.Map(t)["message"])
	res = tests.Do(t, app, "DELETE", "/api/notifications/"+id, tokA, nil)
	assert.Equal(t, 404, res.Status)
}
