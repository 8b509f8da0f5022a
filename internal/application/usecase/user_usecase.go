package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ideas-api/internal/application/access"
	"github.com/jhoicas/Ideas-api/internal/application/dto"
	"github.com/jhoicas/Ideas-api/internal/application/ports"
	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/jhoicas/Ideas-api/internal/domain/entity"
	"github.com/jhoicas/Ideas-api/internal/domain/identity"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
)

// UserUseCase administración de usuarios: alta desde el directorio, roles,
// activación, instancia y baja lógica.
type UserUseCase struct {
	tx        ports.TxRunner
	repo      repository.UserRepository
	directory ports.DirectoryGateway
	now       func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(tx ports.TxRunner, repo repository.UserRepository, directory ports.DirectoryGateway) *UserUseCase {
	return &UserUseCase{tx: tx, repo: repo, directory: directory, now: time.Now}
}

// List devuelve todos los usuarios ordenados por login.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserSummary, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, *entityToUserSummary(u))
	}
	return out, nil
}

// Create da de alta un usuario con los datos del directorio. Login existente → ErrConflict.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserSummary, error) {
	raw := strings.TrimSpace(in.UserName)
	userName := identity.NormalizeLogin(raw)
	if userName == "" {
		return nil, fmt.Errorf("%w: el nombre de usuario es requerido", domain.ErrValidation)
	}
	role := ""
	if r := strings.TrimSpace(in.Role); r != "" {
		canonical, ok := entity.CanonicalRole(r)
		if !ok {
			return nil, fmt.Errorf("%w: rol no permitido: %s", domain.ErrValidation, r)
		}
		role = canonical
	}

	existing, err := uc.repo.GetByUserName(ctx, userName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el usuario ya existe", domain.ErrConflict)
	}

	attrs, err := uc.directory.FetchAttributes(ctx, raw)
	if err != nil {
		return nil, err
	}
	if attrs == nil {
		return nil, fmt.Errorf("%w: no fue posible obtener los datos del usuario desde el directorio", domain.ErrValidation)
	}

	now := uc.now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		UserName:     userName,
		EmployeeCode: identity.TrimTo(attrs.EmployeeCode, entity.MaxEmployeeCodeLen),
		FullName:     identity.TrimTo(attrs.FullName, entity.MaxFullNameLen),
		Instance:     identity.TrimTo(in.Instancia, entity.MaxInstanceLen),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.RunIdentity(ctx, func(users repository.UserRepository, roles repository.RoleRepository) error {
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		if role != "" {
			return access.Grant(ctx, users, roles, user, role)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entityToUserSummary(user), nil
}

// SetRoles reemplaza los roles del usuario por los solicitados que pertenezcan
// al conjunto permitido. Quitar Admin al único administrador → ErrLastAdminProtected.
func (uc *UserUseCase) SetRoles(ctx context.Context, userName string, requested []string) error {
	wanted := canonicalRoles(requested)
	return uc.tx.RunIdentity(ctx, func(users repository.UserRepository, roles repository.RoleRepository) error {
		user, err := findUser(ctx, users, userName)
		if err != nil {
			return err
		}
		held := append([]string{}, user.Roles...)
		for _, r := range held {
			if !containsFold(wanted, r) {
				if err := access.Revoke(ctx, users, roles, user, r); err != nil {
					return err
				}
			}
		}
		for _, r := range wanted {
			if err := access.Grant(ctx, users, roles, user, r); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete baja lógica: desactiva y quita todos los roles. Nunca borra la fila.
func (uc *UserUseCase) Delete(ctx context.Context, userName string) error {
	return uc.tx.RunIdentity(ctx, func(users repository.UserRepository, roles repository.RoleRepository) error {
		user, err := findUser(ctx, users, userName)
		if err != nil {
			return err
		}
		if _, err := access.GuardLastAdmin(ctx, users, roles, user); err != nil {
			return err
		}
		user.IsActive = false
		user.UpdatedAt = uc.now().UTC()
		if err := users.UpdateActive(ctx, user); err != nil {
			return err
		}
		if err := users.ClearRoles(ctx, user.ID); err != nil {
			return err
		}
		user.Roles = nil
		return nil
	})
}

// SetActive activa o desactiva. Desactivar al último administrador está protegido.
func (uc *UserUseCase) SetActive(ctx context.Context, userName string, active bool) error {
	return uc.tx.RunIdentity(ctx, func(users repository.UserRepository, roles repository.RoleRepository) error {
		user, err := findUser(ctx, users, userName)
		if err != nil {
			return err
		}
		if user.IsActive == active {
			return nil
		}
		if !active {
			if _, err := access.GuardLastAdmin(ctx, users, roles, user); err != nil {
				return err
			}
		}
		user.IsActive = active
		user.UpdatedAt = uc.now().UTC()
		return users.UpdateActive(ctx, user)
	})
}

// SetInstance fija la instancia; en blanco la borra.
func (uc *UserUseCase) SetInstance(ctx context.Context, userName, instance string) error {
	return uc.tx.RunIdentity(ctx, func(users repository.UserRepository, _ repository.RoleRepository) error {
		user, err := findUser(ctx, users, userName)
		if err != nil {
			return err
		}
		user.Instance = identity.TrimTo(instance, entity.MaxInstanceLen)
		user.UpdatedAt = uc.now().UTC()
		return users.UpdateInstance(ctx, user)
	})
}

func findUser(ctx context.Context, users repository.UserRepository, userName string) (*entity.User, error) {
	key := identity.NormalizeLogin(userName)
	if key == "" {
		return nil, fmt.Errorf("%w: el nombre de usuario es requerido", domain.ErrValidation)
	}
	user, err := users.LockByUserName(ctx, key)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%s: %w", key, domain.ErrUserNotFound)
	}
	return user, nil
}

// canonicalRoles filtra al conjunto permitido, con mayúsculas canónicas y sin duplicados.
func canonicalRoles(requested []string) []string {
	out := make([]string, 0, len(requested))
	for _, r := range requested {
		canonical, ok := entity.CanonicalRole(r)
		if ok && !containsFold(out, canonical) {
			out = append(out, canonical)
		}
	}
	return out
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func entityToUserSummary(u *entity.User) *dto.UserSummary {
	if u == nil {
		return nil
	}
	roles := append([]string{}, u.Roles...)
	return &dto.UserSummary{
		UserName:       u.UserName,
		CodigoEmpleado: u.EmployeeCode,
		NombreCompleto: u.FullName,
		Instancia:      u.Instance,
		IsActive:       u.IsActive,
		LastLoginAt:    u.LastLoginAt,
		Roles:          roles,
	}
}
