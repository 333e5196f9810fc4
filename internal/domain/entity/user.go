package entity

import "time"

// Roles válidos para User, de menor a mayor privilegio.
const (
	RoleOperator   = "operator"
	RoleSupervisor = "supervisor"
	RoleManager    = "manager"
	RoleAdmin      = "admin"
)

var roleLevels = map[string]int{
	RoleOperator:   1,
	RoleSupervisor: 2,
	RoleManager:    3,
	RoleAdmin:      4,
}

// RoleLevel devuelve el nivel numérico del rol; 0 si el rol es desconocido.
func RoleLevel(role string) int {
	return roleLevels[role]
}

// RoleAtLeast indica si role cumple o supera min.
func RoleAtLeast(role, min string) bool {
	lvl := RoleLevel(role)
	return lvl > 0 && lvl >= RoleLevel(min)
}

// User representa un usuario de caja o de administración.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Role         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
