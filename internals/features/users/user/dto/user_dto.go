package dto

import (
	"strings"

	"quizcourse_backend/internals/constants"
	helper "quizcourse_backend/internals/helpers"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// CreateUserRequest is the admin "create user" payload (any role).
type CreateUserRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=ADMIN TEACHER STUDENT"`
	IsActive *bool  `json:"is_active"`
}

func (r *CreateUserRequest) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = constants.NormalizeRole(r.Role)
}

// UpdateUserRequest is a partial update; nil means "leave as is".
type UpdateUserRequest struct {
	UserName *string `json:"user_name" validate:"omitnil,min=3,max=50"`
	Email    *string `json:"email" validate:"omitnil,email,max=255"`
	Password *string `json:"password" validate:"omitnil,min=8,max=72"`
	Role     *string `json:"role" validate:"omitnil,oneof=ADMIN TEACHER STUDENT"`
	IsActive *bool   `json:"is_active"`
}

func (r *UpdateUserRequest) Normalize() {
	if r.UserName != nil {
		v := strings.TrimSpace(*r.UserName)
		r.UserName = &v
	}
	if r.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &v
	}
	if r.Role != nil {
		v := constants.NormalizeRole(*r.Role)
		r.Role = &v
	}
}

// TouchesPrivilegedFields: role and is_active are admin-only.
func (r *UpdateUserRequest) TouchesPrivilegedFields() bool {
	return r.Role != nil || r.IsActive != nil
}

// ToUpdates builds the column map; the password must already be hashed by the caller.
func (r *UpdateUserRequest) ToUpdates(hashedPassword *string) map[string]any {
	m := map[string]any{}
	if r.UserName != nil {
		m["user_name"] = *r.UserName
	}
	if r.Email != nil {
		m["email"] = *r.Email
	}
	if hashedPassword != nil {
		m["password"] = *hashedPassword
	}
	if r.Role != nil {
		m["role"] = *r.Role
	}
	if r.IsActive != nil {
		m["is_active"] = *r.IsActive
	}
	return m
}

/* =======================================================
   QUERY DTOs
   ======================================================= */

// GET /api/users?role=&is_active=&q=
type ListUsersQuery struct {
	Role     string `query:"role" validate:"omitempty,oneof=ADMIN TEACHER STUDENT PROFESSOR"`
	IsActive *bool  `query:"is_active"`
	Q        string `query:"q" validate:"omitempty,max=100"`
}

var UserSortColumns = helper.SortColumns{
	"created_at": "created_at",
	"user_name":  "user_name",
	"email":      "email",
	"role":       "role",
}
