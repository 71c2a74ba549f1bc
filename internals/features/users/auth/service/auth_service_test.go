package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizcourse_backend/internals/constants"
	"quizcourse_backend/internals/features/users/auth/dto"
	"quizcourse_backend/internals/features/users/auth/service"
	userModel "quizcourse_backend/internals/features/users/user/model"
	"quizcourse_backend/internals/tests"
)

type stubVerifier struct {
	identity *service.GoogleIdentity
	err      error
}

func (s stubVerifier) Verify(string) (*service.GoogleIdentity, error) {
	return s.identity, s.err
}

func TestLoginGoogleCreatesStudent(t *testing.T) {
	db := tests.OpenDB(t)
	svc := service.NewAuthService(db)
	svc.Google = stubVerifier{identity: &service.GoogleIdentity{Subject: "g-123", Email: "Nova@Gmail.com", Name: "Nova Pessoa"}}

	res, err := svc.LoginGoogle(context.Background(), dto.LoginGoogleRequest{IDToken: "tok"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "nova@gmail.com", res.User.Email)
	assert.Equal(t, constants.RoleStudent, res.User.Role)

	// second sign-in finds the same account by google id
	again, err := svc.LoginGoogle(context.Background(), dto.LoginGoogleRequest{IDToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, again.User.ID)

	var n int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestLoginGoogleLinksExistingEmail(t *testing.T) {
	db := tests.OpenDB(t)
	u := tests.CreateUser(t, db, constants.RoleTeacher)
	svc := service.NewAuthService(db)
	svc.Google = stubVerifier{identity: &service.GoogleIdentity{Subject: "g-456", Email: u.Email}}

	res, err := svc.LoginGoogle(context.Background(), dto.LoginGoogleRequest{IDToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)
	assert.Equal(t, constants.RoleTeacher, res.User.Role)

	var stored userModel.UserModel
	require.NoError(t, db.First(&stored, "id = ?", u.ID).Error)
	require.NotNil(t, stored.GoogleID)
	assert.Equal(t, "g-456", *stored.GoogleID)
}

func TestLoginGoogleRejected(t *testing.T) {
	db := tests.OpenDB(t)
	svc := service.NewAuthService(db)

	svc.Google = stubVerifier{err: errors.New("bad signature")}
	_, err := svc.LoginGoogle(context.Background(), dto.LoginGoogleRequest{IDToken: "tok"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), service.MsgInvalidGoogleToken)

	svc.Google = stubVerifier{identity: &service.GoogleIdentity{Subject: "g-789"}}
	_, err = svc.LoginGoogle(context.Background(), dto.LoginGoogleRequest{IDToken: "tok"})
	assert.Error(t, err)
}

func TestIssueAccessTokenIsUnique(t *testing.T) {
	db := tests.OpenDB(t)
	u := tests.CreateUser(t, db, constants.RoleStudent)

	a, _, err := service.IssueAccessToken(*u, tests.Secret, 0)
	require.NoError(t, err)
	b, _, err := service.IssueAccessToken(*u, tests.Secret, 0)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
