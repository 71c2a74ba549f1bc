package helper_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"quizcourse_backend/internals/constants"
	helperAuth "quizcourse_backend/internals/helpers/auth"
)

func TestEvaluate(t *testing.T) {
	me := uuid.New()
	other := uuid.New()

	cases := []struct {
		name string
		p    helperAuth.Policy
		want helperAuth.Decision
	}{
		{"admin without owner", helperAuth.Policy{CallerID: me, CallerRole: constants.RoleAdmin}, helperAuth.Allow},
		{"admin on someone else", helperAuth.Policy{CallerID: me, CallerRole: constants.RoleAdmin, OwnerID: &other}, helperAuth.Allow},
		{"owner", helperAuth.Policy{CallerID: me, CallerRole: constants.RoleStudent, OwnerID: &me}, helperAuth.Allow},
		{"not owner", helperAuth.Policy{CallerID: me, CallerRole: constants.RoleStudent, OwnerID: &other}, helperAuth.Deny},
		{"no owner, no roles", helperAuth.Policy{CallerID: me, CallerRole: constants.RoleTeacher}, helperAuth.Deny},
		{"role whitelist", helperAuth.Policy{CallerID: me, CallerRole: constants.RoleTeacher, Roles: []string{constants.RoleTeacher}}, helperAuth.Allow},
		{"role whitelist is case-insensitive", helperAuth.Policy{CallerID: me, CallerRole: "teacher", Roles: []string{constants.RoleTeacher}}, helperAuth.Allow},
		{"nil caller never owns", helperAuth.Policy{CallerRole: constants.RoleStudent, OwnerID: &uuid.Nil}, helperAuth.Deny},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, helperAuth.Evaluate(tc.p))
		})
	}
}
