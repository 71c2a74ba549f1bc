package controller_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizcourse_backend/internals/configs"
	"quizcourse_backend/internals/constants"
	"quizcourse_backend/internals/features/users/user/service"
	"quizcourse_backend/internals/tests"
)

func TestAdminCreatesUser(t *testing.T) {
	db := tests.OpenDB(t)
	app := tests.NewApp(db)
	admin := tests.Token(t, tests.CreateUser(t, db, constants.RoleAdmin))

	res := tests.Do(t, app, "POST", "/api/users", admin, map[string]any{
		"user_name": "joana",
		"email":     "Joana@Example.com",
		"password":  tests.Password,
		"role":      "professor",
	})
	require.Equal(t, 201, res.Status, string(res.Body))
	body := res.Map(t)
	assert.Equal(t, constants.RoleTeacher, body["role"])
	assert.Equal(t, "joana@example.com", body["email"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, string(res.Body), tests.Password)

	res = tests.Do(t, app, "POST", "/api/users", admin, map[string]any{
		"user_name": "joana2",
		"email":     "joana@example.com",
		"password":  tests.Password,
		"role":      constants.RoleStudent,
	})
	require.Equal(t, 409, res.Status)
	assert.Equal(t, service.MsgEmailInUse, res.Map(t)["message"])
}

func TestCreateUserValidationListsEveryField(t *testing.T) {
	db := tests.OpenDB(t)
	app := tests.NewApp(db)
	admin := tests.Token(t, tests.CreateUser(t, db, constants.RoleAdmin))

	res := tests.Do(t, app, "POST", "/api/users", admin, map[string]any{"role": "KING"})
	require.Equal(t, 400, res.Status)

	fields := map[string]bool{}
	for _, e := range res.Map(t)["errors"].([]any) {
		fields[e.(map[string]any)["field"].(string)] = true
	}
	for _, f := range []string{"user_name", "email", "password", "role"} {
		assert.True(t, fields[f], f)
	}
}

func TestUserListIsAdminOnly(t *testing.T) {
	db := tests.OpenDB(t)
	app := tests.NewApp(db)
	admin := tests.Token(t, tests.CreateUser(t, db, constants.RoleAdmin))
	teacher := tests.Token(t, tests.CreateUser(t, db, constants.RoleTeacher))
	tests.CreateUser(t, db, constants.RoleStudent)

	res := tests.Do(t, app, "GET", "/api/users", teacher, nil)
	assert.Equal(t, 403, res.Status)

	res = tests.Do(t, app, "GET", "/api/users?role=STUDENT", admin, nil)
	require.Equal(t, 200, res.Status)
	assert.Len(t, res.List(t), 1)
	assert.Equal(t, "1", res.Header.Get("X-Total-Count"))

	res = tests.Do(t, app, "GET", "/api/users?limit=1&sort_by=email&order=asc", admin, nil)
	require.Equal(t, 200, res.Status)
	assert.Len(t, res.List(t), 1)
	assert.Equal(t, "3", res.Header.Get("X-Total-Count"))
}

func TestUserOwnerAccess(t *testing.T) {
	db := tests.OpenDB(t)
	app := tests.NewApp(db)
	me := tests.CreateUser(t, db, constants.RoleStudent)
	other := tests.CreateUser(t, db, constants.RoleStudent)
	token := tests.Token(t, me)

	res := tests.Do(t, app, "GET", "/api/users/"+me.ID.String(), token, nil)
	assert.Equal(t, 200, res.Status)

	res = tests.Do(t, app, "GET", "/api/users/"+other.ID.String(), token, nil)
	assert.Equal(t, 403, res.Status)

	res = tests.Do(t, app, "PATCH", "/api/users/"+me.ID.String(), token, map[string]any{"user_name": "novo-nome"})
	require.Equal(t, 200, res.Status, string(res.Body))
	assert.Equal(t, "novo-nome", res.Map(t)["user_name"])

	// role and is_active are admin-only even on your own account
	res = tests.Do(t, app, "PATCH", "/api/users/"+me.ID.String(), token, map[string]any{"role": constants.RoleAdmin})
	assert.Equal(t, 403, res.Status)

	res = tests.Do(t, app, "PATCH", "/api/users/"+other.ID.String(), token, map[string]any{"user_name": "hacker"})
	assert.Equal(t, 403, res.Status)
}

func TestUserNotFoundAndMalformedID(t *testing.T) {
	db := tests.OpenDB(t)
	app := tests.NewApp(db)
	admin := tests.Token(t, tests.CreateUser(t, db, constants.RoleAdmin))

	res := tests.Do(t, app, "GET", "/api/users/123", admin, nil)
	assert.Equal(t, 400, res.Status)

	res = tests.Do(t, app, "GET", "/api/users/"+uuid.NewString(), admin, nil)
	require.Equal(t, 404, res.Status)
	assert.Equal(t, service.MsgUserNotFound, res.Map(t)["message"])
}

func TestDeleteUserTwice(t *testing.T) {
	db := tests.OpenDB(t)
	app := tests.NewApp(db)
	admin := tests.Token(t, tests.CreateUser(t, db, constants.RoleAdmin))
	victim := tests.CreateUser(t, db, constants.RoleStudent)
	require.NoError(t, db.Exec(
		"INSERT INTO notifications (notification_id, notification_user_id, notification_title, notification_message, notification_type, notification_is_read, notification_data, notification_created_at) VALUES (?, ?, 'Olá', 'Bem-vindo', 'INFO', false, '{}', CURRENT_TIMESTAMP)",
		uuid.New(), victim.ID,
	).Error)

	res := tests.Do(t, app, "DELETE", "/api/users/"+victim.ID.String(), admin, nil)
	require.Equal(t, 200, res.Status, string(res.Body))
	assert.Equal(t, service.MsgUserDeleted, res.Map(t)["message"])

	var left int64
	require.NoError(t, db.Table("notifications").Where("notification_user_id = ?", victim.ID).Count(&left).Error)
	assert.Zero(t, left)

	res = tests.Do(t, app, "DELETE", "/api/users/"+victim.ID.String(), admin, nil)
	assert.Equal(t, 404, res.Status)
}

func TestDeleteUserWithCourses(t *testing.T) {
	db := tests.OpenDB(t)
	app := tests.NewApp(db)
	admin := tests.Token(t, tests.CreateUser(t, db, constants.RoleAdmin))
	teacher := tests.CreateUser(t, db, constants.RoleTeacher)

	res := tests.Do(t, app, "POST", "/api/courses", tests.Token(t, teacher), map[string]any{
		"course_title": "Go do zero",
		"course_level": "BEGINNER",
	})
	require.Equal(t, 201, res.Status, string(res.Body))
	courseID := tests.ID(t, res.Map(t), "course_id")

	res = tests.Do(t, app, "DELETE", "/api/users/"+teacher.ID.String(), admin, nil)
	require.Equal(t, 409, res.Status, string(res.Body))
	assert.Equal(t, service.MsgUserHasContent, res.Map(t)["message"])

	var users int64
	require.NoError(t, db.Table("users").Where("id = ?", teacher.ID).Count(&users).Error)
	assert.EqualValues(t, 1, users)

	res = tests.Do(t, app, "DELETE", "/api/courses/"+courseID, admin, nil)
	require.Equal(t, 200, res.Status, string(res.Body))
	res = tests.Do(t, app, "DELETE", "/api/users/"+teacher.ID.String(), admin, nil)
	assert.Equal(t, 200, res.Status, string(res.Body))
}

func TestUserRowsRequireExistingUser(t *testing.T) {
	db := tests.OpenDB(t)
	err := db.Exec(
		"INSERT INTO notifications (notification_id, notification_user_id, notification_title, notification_message, notification_type, notification_is_read, notification_data, notification_created_at) VALUES (?, ?, 'Olá', 'Sem dono', 'INFO', false, '{}', CURRENT_TIMESTAMP)",
		uuid.New(), uuid.New(),
	).Error
	assert.Error(t, err)
}

func TestUploadAvatar(t *testing.T) {
	db := tests.OpenDB(t)
	app := tests.NewApp(db)
	me := tests.CreateUser(t, db, constants.RoleStudent)
	token := tests.Token(t, me)

	ct, body := tests.Multipart(t, "avatar", "me.png", tests.PNG(t, 32, 32))
	res := tests.DoRaw(t, app, "PATCH", "/api/users/"+me.ID.String()+"/avatar", token, ct, body)
	require.Equal(t, 200, res.Status, string(res.Body))

	url := res.Map(t)["avatar_url"].(string)
	require.True(t, strings.HasPrefix(url, "/uploads/avatars/"), url)
	_, err := os.Stat(filepath.Join(configs.UploadDir, "avatars", filepath.Base(url)))
	assert.NoError(t, err)

	// replacing the avatar removes the previous file
	ct, body = tests.Multipart(t, "avatar", "me.png", tests.PNG(t, 16, 16))
	res = tests.DoRaw(t, app, "PATCH", "/api/users/"+me.ID.String()+"/avatar", token, ct, body)
	require.Equal(t, 200, res.Status)
	_, err = os.Stat(filepath.Join(configs.UploadDir, "avatars", filepath.Base(url)))
	assert.True(t, os.IsNotExist(err))

	ct, body = tests.Multipart(t, "avatar", "notes.txt", []byte("hello"))
	res = tests.DoRaw(t, app, "PATCH", "/api/users/"+me.ID.String()+"/avatar", token, ct, body)
	assert.Equal(t, 400, res.Status)
}
