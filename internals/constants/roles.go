package constants

import (
	"fmt"
	"strings"
)

const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
	RoleStudent = "STUDENT"

	// legacy label still sent by older clients
	roleProfessorAlias = "PROFESSOR"
)

// Role error message templates
const (
	ErrOnlyTeachersCanAccess = "Apenas professores ou administradores podem acessar %s."
	ErrOnlyAdminsCanAccess   = "Apenas administradores podem acessar %s."
	ErrOnlyOwnerCanAccess    = "Você não tem permissão para acessar %s."
)

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorOwner(feature string) string {
	return fmt.Sprintf(ErrOnlyOwnerCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleTeacher,
		RoleStudent,
	}

	TeacherAndAbove = []string{
		RoleTeacher,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

// NormalizeRole upper-cases the input and folds PROFESSOR into TEACHER.
// Unknown roles come back unchanged so validation can reject them.
func NormalizeRole(role string) string {
	r := strings.ToUpper(strings.TrimSpace(role))
	if r == roleProfessorAlias {
		return RoleTeacher
	}
	return r
}

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
