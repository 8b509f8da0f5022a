package entity

import (
	"strings"
	"time"
)

// Roles válidos para User.
const (
	RoleAdmin   = "Admin"
	RoleGestor  = "Gestor"
	RoleIdeador = "Ideador"
)

// Límites de columnas de users.
const (
	MaxEmployeeCodeLen = 20
	MaxFullNameLen     = 200
	MaxInstanceLen     = 200
	MaxUserNameLen     = 100
)

// AllowedRoles conjunto cerrado de roles asignables.
var AllowedRoles = []string{RoleAdmin, RoleGestor, RoleIdeador}

// CanonicalRole devuelve el nombre canónico de un rol permitido (comparación sin mayúsculas).
func CanonicalRole(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, r := range AllowedRoles {
		if strings.EqualFold(r, name) {
			return r, true
		}
	}
	return "", false
}

// User representa un usuario local reconciliado con el directorio corporativo.
// UserName se guarda normalizado (ver identity.NormalizeLogin).
type User struct {
	ID           string
	UserName     string
	EmployeeCode *string
	FullName     *string
	Instance     *string // etiqueta organizacional libre
	IsActive     bool
	LastLoginAt  *time.Time
	Roles        []string // nombres de rol, sin duplicados
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole informa si el usuario tiene el rol (sin distinguir mayúsculas).
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if strings.EqualFold(r, name) {
			return true
		}
	}
	return false
}

// DisplayName nombre completo si existe; si no, el login.
func (u *User) DisplayName() string {
	if u.FullName != nil && strings.TrimSpace(*u.FullName) != "" {
		return *u.FullName
	}
	return u.UserName
}
