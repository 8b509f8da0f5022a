package repository

import (
	"context"

	"github.com/jhoicas/Ideas-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las búsquedas devuelven (nil, nil) cuando no hay fila; los usuarios se
// devuelven con Roles cargado.
type UserRepository interface {
	// Create persiste un usuario nuevo. Login duplicado → domain.ErrConflict.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByUserName busca por login ya normalizado (igualdad exacta).
	GetByUserName(ctx context.Context, userName string) (*entity.User, error)
	// LockByUserName igual que GetByUserName pero bloquea la fila del usuario hasta
	// el fin de la transacción. Fuera de una transacción equivale a GetByUserName.
	LockByUserName(ctx context.Context, userName string) (*entity.User, error)
	// GetByEmployeeCode devuelve el primer usuario (por login) con ese código.
	GetByEmployeeCode(ctx context.Context, code string) (*entity.User, error)
	// Cada Update* escribe solo sus columnas (más updated_at) para no pisar
	// cambios concurrentes en las demás.
	// UpdateProfile: employee_code, full_name, last_login_at.
	UpdateProfile(ctx context.Context, user *entity.User) error
	// UpdateInstance: instance.
	UpdateInstance(ctx context.Context, user *entity.User) error
	// UpdateActive: is_active.
	UpdateActive(ctx context.Context, user *entity.User) error
	// List devuelve todos los usuarios ordenados por login.
	List(ctx context.Context) ([]*entity.User, error)

	// Membresías de rol. AddRole es idempotente.
	AddRole(ctx context.Context, userID, roleID string) error
	RemoveRole(ctx context.Context, userID, roleID string) error
	ClearRoles(ctx context.Context, userID string) error
	// CountRoleHolders cuenta usuarios activos con el rol.
	CountRoleHolders(ctx context.Context, roleID string) (int, error)
}

// RoleRepository roles globales; nunca se eliminan.
type RoleRepository interface {
	// EnsureByName crea el rol si no existe (upsert sobre roles.name único) y lo devuelve.
	EnsureByName(ctx context.Context, name string) (*entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	// LockByName bloquea la fila del rol hasta el fin de la transacción (SELECT … FOR UPDATE).
	// Fuera de una transacción equivale a GetByName.
	LockByName(ctx context.Context, name string) (*entity.Role, error)
}
