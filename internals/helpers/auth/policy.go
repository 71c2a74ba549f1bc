package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizcourse_backend/internals/constants"
)

// Locals keys written by the auth middleware.
const (
	LocUserID   = "user_id"
	LocUserRole = "userRole"
	LocUserName = "user_name"
)

const (
	MsgForbidden       = "Você não tem permissão para realizar esta ação."
	MsgSubjectNotFound = "Usuário não encontrado."
)

// Caller is the authenticated identity of the current request.
type Caller struct {
	ID   uuid.UUID
	Role string
}

func (c Caller) IsAdmin() bool { return c.Role == constants.RoleAdmin }

// CallerFromCtx reads the identity stored by the auth middleware.
// Missing or malformed identity is a 401.
func CallerFromCtx(c *fiber.Ctx) (Caller, error) {
	id, err := GetUserIDFromToken(c)
	if err != nil {
		return Caller{}, err
	}
	role, _ := c.Locals(LocUserRole).(string)
	return Caller{ID: id, Role: constants.NormalizeRole(role)}, nil
}

// Policy is the input of one authorization decision.
// OwnerID nil means the target has no owner (or ownership is irrelevant);
// Roles lists roles allowed regardless of ownership.
type Policy struct {
	CallerID   uuid.UUID
	CallerRole string
	OwnerID    *uuid.UUID
	Roles      []string
}

type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) Allowed() bool { return d == Allow }

// Evaluate is the single authorization rule used by every resource:
// admin > role whitelist > owner; everything else is denied.
func Evaluate(p Policy) Decision {
	role := constants.NormalizeRole(p.CallerRole)
	if role == constants.RoleAdmin {
		return Allow
	}
	for _, r := range p.Roles {
		if strings.EqualFold(r, role) {
			return Allow
		}
	}
	if p.OwnerID != nil && p.CallerID != uuid.Nil && *p.OwnerID == p.CallerID {
		return Allow
	}
	return Deny
}

// Authorize evaluates the policy for the current caller and returns 403 on deny.
// Pass uuid.Nil as owner for role-only checks.
func Authorize(c *fiber.Ctx, ownerID uuid.UUID, roles ...string) error {
	caller, err := CallerFromCtx(c)
	if err != nil {
		return err
	}
	p := Policy{CallerID: caller.ID, CallerRole: caller.Role, Roles: roles}
	if ownerID != uuid.Nil {
		p.OwnerID = &ownerID
	}
	if !Evaluate(p).Allowed() {
		return fiber.NewError(fiber.StatusForbidden, MsgForbidden)
	}
	return nil
}

// RequireAdmin is Authorize with no owner and no extra roles.
func RequireAdmin(c *fiber.Ctx) error {
	return Authorize(c, uuid.Nil)
}

// ResolveOwnerFilter scopes a list query to a user. Admins keep whatever they
// asked for (nil = everyone). Others always get their own id; naming another
// user is rejected before any query runs.
func ResolveOwnerFilter(c *fiber.Ctx, requested *uuid.UUID) (*uuid.UUID, error) {
	caller, err := CallerFromCtx(c)
	if err != nil {
		return nil, err
	}
	if caller.IsAdmin() {
		return requested, nil
	}
	if requested != nil && *requested != caller.ID {
		return nil, fiber.NewError(fiber.StatusForbidden, MsgForbidden)
	}
	own := caller.ID
	return &own, nil
}

// ResolveSubject picks the user a new record is created for: admins may act on
// behalf of someone else, everyone else only for themselves. A user named by an
// admin must exist (404).
func ResolveSubject(c *fiber.Ctx, db *gorm.DB, requested *uuid.UUID) (uuid.UUID, error) {
	caller, err := CallerFromCtx(c)
	if err != nil {
		return uuid.Nil, err
	}
	if requested == nil || *requested == uuid.Nil || *requested == caller.ID {
		return caller.ID, nil
	}
	if !caller.IsAdmin() {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, MsgForbidden)
	}
	var n int64
	if err := db.WithContext(c.UserContext()).Table("users").Where("id = ?", *requested).Count(&n).Error; err != nil {
		return uuid.Nil, err
	}
	if n == 0 {
		return uuid.Nil, fiber.NewError(fiber.StatusNotFound, MsgSubjectNotFound)
	}
	return *requested, nil
}
