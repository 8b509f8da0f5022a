// Package access concentra las operaciones de membresía de roles que comparten
// login, administración de usuarios, registro manual de ideas y el seed.
package access

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/jhoicas/Ideas-api/internal/domain/entity"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
)

// Grant asegura que el rol exista y que el usuario lo tenga. Idempotente.
// Actualiza user.Roles sin duplicados.
func Grant(ctx context.Context, users repository.UserRepository, roles repository.RoleRepository, user *entity.User, name string) error {
	role, err := roles.EnsureByName(ctx, name)
	if err != nil {
		return err
	}
	if err := users.AddRole(ctx, user.ID, role.ID); err != nil {
		return err
	}
	if !user.HasRole(role.Name) {
		user.Roles = append(user.Roles, role.Name)
	}
	return nil
}

// Revoke quita el rol al usuario. Si el rol es Admin y el usuario es su único
// titular activo devuelve domain.ErrLastAdminProtected sin cambiar nada.
// Debe ejecutarse dentro de una transacción para que el bloqueo del rol aplique.
func Revoke(ctx context.Context, users repository.UserRepository, roles repository.RoleRepository, user *entity.User, name string) error {
	if !user.HasRole(name) {
		return nil
	}
	var (
		role *entity.Role
		err  error
	)
	if name == entity.RoleAdmin {
		role, err = GuardLastAdmin(ctx, users, roles, user)
	} else {
		role, err = roles.GetByName(ctx, name)
	}
	if err != nil {
		return err
	}
	if role == nil {
		return nil
	}
	if err := users.RemoveRole(ctx, user.ID, role.ID); err != nil {
		return err
	}
	user.Roles = without(user.Roles, role.Name)
	return nil
}

// GuardLastAdmin bloquea la fila del rol Admin y falla si user es el único
// titular activo. Devuelve el rol bloqueado (nil si todavía no existe).
func GuardLastAdmin(ctx context.Context, users repository.UserRepository, roles repository.RoleRepository, user *entity.User) (*entity.Role, error) {
	role, err := roles.LockByName(ctx, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	// un titular inactivo no cuenta como administrador vigente
	if role == nil || !user.IsActive || !user.HasRole(entity.RoleAdmin) {
		return role, nil
	}
	n, err := users.CountRoleHolders(ctx, role.ID)
	if err != nil {
		return nil, err
	}
	if n <= 1 {
		return nil, fmt.Errorf("%s: %w", user.UserName, domain.ErrLastAdminProtected)
	}
	return role, nil
}

func without(list []string, name string) []string {
	out := list[:0:0]
	for _, r := range list {
		if r != name {
			out = append(out, r)
		}
	}
	return out
}
