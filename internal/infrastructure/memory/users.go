package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/jhoicas/Ideas-api/internal/domain/entity"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
)

var (
	_ repository.UserRepository = (*UserRepo)(nil)
	_ repository.RoleRepository = (*RoleRepo)(nil)
)

// UserRepo usuarios en memoria.
type UserRepo struct{ base }

// RoleRepo roles en memoria.
type RoleRepo struct{ base }

func (d *state) userWithRoles(u *entity.User) *entity.User {
	c := *u
	c.Roles = nil
	for roleID := range d.memberships[u.ID] {
		if r, ok := d.roles[roleID]; ok {
			c.Roles = append(c.Roles, r.Name)
		}
	}
	sort.Strings(c.Roles)
	return &c
}

func (d *state) userByName(userName string) *entity.User {
	for _, u := range d.users {
		if u.UserName == userName {
			return u
		}
	}
	return nil
}

// Create persiste un usuario nuevo.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return r.write(func(d *state) error {
		if d.userByName(user.UserName) != nil {
			return fmt.Errorf("crear usuario %s: %w", user.UserName, domain.ErrConflict)
		}
		c := *user
		c.Roles = nil
		d.users[c.ID] = &c
		return nil
	})
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.read(func(d *state) error {
		if u, ok := d.users[id]; ok {
			out = d.userWithRoles(u)
		}
		return nil
	})
	return out, err
}

// GetByUserName obtiene un usuario por login normalizado.
func (r *UserRepo) GetByUserName(ctx context.Context, userName string) (*entity.User, error) {
	var out *entity.User
	err := r.read(func(d *state) error {
		if u := d.userByName(userName); u != nil {
			out = d.userWithRoles(u)
		}
		return nil
	})
	return out, err
}

// GetByEmployeeCode primer usuario (por login) con el código.
func (r *UserRepo) GetByEmployeeCode(ctx context.Context, code string) (*entity.User, error) {
	var out *entity.User
	err := r.read(func(d *state) error {
		for _, u := range d.users {
			if u.EmployeeCode == nil || *u.EmployeeCode != code {
				continue
			}
			if out == nil || u.UserName < out.UserName {
				out = u
			}
		}
		if out != nil {
			out = d.userWithRoles(out)
		}
		return nil
	})
	return out, err
}

// LockByUserName el escritor único ya serializa las transacciones.
func (r *UserRepo) LockByUserName(ctx context.Context, userName string) (*entity.User, error) {
	return r.GetByUserName(ctx, userName)
}

// UpdateProfile guarda los datos que llegan del directorio.
func (r *UserRepo) UpdateProfile(ctx context.Context, user *entity.User) error {
	return r.update(user.ID, func(u *entity.User) {
		u.EmployeeCode = user.EmployeeCode
		u.FullName = user.FullName
		u.LastLoginAt = user.LastLoginAt
		u.UpdatedAt = user.UpdatedAt
	})
}

// UpdateInstance guarda la instancia.
func (r *UserRepo) UpdateInstance(ctx context.Context, user *entity.User) error {
	return r.update(user.ID, func(u *entity.User) {
		u.Instance = user.Instance
		u.UpdatedAt = user.UpdatedAt
	})
}

// UpdateActive guarda el flag de actividad.
func (r *UserRepo) UpdateActive(ctx context.Context, user *entity.User) error {
	return r.update(user.ID, func(u *entity.User) {
		u.IsActive = user.IsActive
		u.UpdatedAt = user.UpdatedAt
	})
}

func (r *UserRepo) update(id string, apply func(u *entity.User)) error {
	return r.write(func(d *state) error {
		u, ok := d.users[id]
		if !ok {
			return fmt.Errorf("actualizar usuario %s: %w", id, domain.ErrUserNotFound)
		}
		apply(u)
		return nil
	})
}

// List todos los usuarios ordenados por login.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.read(func(d *state) error {
		out = make([]*entity.User, 0, len(d.users))
		for _, u := range d.users {
			out = append(out, d.userWithRoles(u))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].UserName < out[j].UserName })
	return out, err
}

// AddRole agrega la membresía si no existe.
func (r *UserRepo) AddRole(ctx context.Context, userID, roleID string) error {
	return r.write(func(d *state) error {
		set, ok := d.memberships[userID]
		if !ok {
			set = map[string]struct{}{}
			d.memberships[userID] = set
		}
		set[roleID] = struct{}{}
		return nil
	})
}

// RemoveRole quita la membresía.
func (r *UserRepo) RemoveRole(ctx context.Context, userID, roleID string) error {
	return r.write(func(d *state) error {
		delete(d.memberships[userID], roleID)
		return nil
	})
}

// ClearRoles quita todas las membresías del usuario.
func (r *UserRepo) ClearRoles(ctx context.Context, userID string) error {
	return r.write(func(d *state) error {
		delete(d.memberships, userID)
		return nil
	})
}

// CountRoleHolders usuarios activos con el rol.
func (r *UserRepo) CountRoleHolders(ctx context.Context, roleID string) (int, error) {
	n := 0
	err := r.read(func(d *state) error {
		for userID, set := range d.memberships {
			if _, ok := set[roleID]; !ok {
				continue
			}
			if u, ok := d.users[userID]; ok && u.IsActive {
				n++
			}
		}
		return nil
	})
	return n, err
}

// EnsureByName crea el rol si no existe.
func (r *RoleRepo) EnsureByName(ctx context.Context, name string) (*entity.Role, error) {
	var out *entity.Role
	err := r.write(func(d *state) error {
		if role := d.roleByName(name); role != nil {
			c := *role
			out = &c
			return nil
		}
		role := &entity.Role{ID: uuid.New().String(), Name: name}
		d.roles[role.ID] = role
		c := *role
		out = &c
		return nil
	})
	return out, err
}

// GetByName rol por nombre exacto.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	var out *entity.Role
	err := r.read(func(d *state) error {
		if role := d.roleByName(name); role != nil {
			c := *role
			out = &c
		}
		return nil
	})
	return out, err
}

// LockByName en memoria la exclusión ya la da txMu.
func (r *RoleRepo) LockByName(ctx context.Context, name string) (*entity.Role, error) {
	return r.GetByName(ctx, name)
}

func (d *state) roleByName(name string) *entity.Role {
	for _, role := range d.roles {
		if role.Name == name {
			return role
		}
	}
	return nil
}
