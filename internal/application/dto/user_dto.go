package dto

import "time"

// LoginRequest entrada del login contra el directorio corporativo.
// UserName acepta "usuario" o "usuario@dominio".
type LoginRequest struct {
	UserName string `json:"userName" validate:"required,max=200"`
	Password string `json:"password" validate:"required"`
}

// UserInfo datos de la sesión actual. NombreCompleto prioriza el maestro de
// empleados sobre el nombre del directorio.
type UserInfo struct {
	UserName       string   `json:"userName"`
	CodigoEmpleado *string  `json:"codigoEmpleado"`
	NombreCompleto *string  `json:"nombreCompleto"`
	Instancia      *string  `json:"instancia"`
	Roles          []string `json:"roles"`
	Email          *string  `json:"email"`
	Departamento   *string  `json:"departamento"`
	HasEmployee    bool     `json:"hasEmployee"`
}

// LoginResponse token de sesión (también se entrega como cookie) y datos del usuario.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserInfo  `json:"user"`
}

// UserSummary fila del listado de administración de usuarios.
type UserSummary struct {
	UserName       string     `json:"userName"`
	CodigoEmpleado *string    `json:"codigoEmpleado"`
	NombreCompleto *string    `json:"nombreCompleto"`
	Instancia      *string    `json:"instancia"`
	IsActive       bool       `json:"isActive"`
	LastLoginAt    *time.Time `json:"lastLoginAt"`
	Roles          []string   `json:"roles"`
}

// CreateUserRequest alta de usuario a partir del directorio. Role es opcional.
type CreateUserRequest struct {
	UserName  string `json:"userName" validate:"required,max=200"`
	Instancia string `json:"instancia" validate:"omitempty,max=200"`
	Role      string `json:"role" validate:"omitempty,max=50"`
}

// UpdateRolesRequest conjunto completo de roles deseado.
type UpdateRolesRequest struct {
	Roles []string `json:"roles" validate:"dive,max=50"`
}

// UpdateActiveRequest activa o desactiva un usuario.
type UpdateActiveRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// UpdateInstanceRequest en blanco borra la instancia.
type UpdateInstanceRequest struct {
	Instancia string `json:"instancia" validate:"omitempty,max=200"`
}
