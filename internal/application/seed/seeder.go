// Package seed prepara una base nueva: roles por defecto, administradores
// iniciales y la carga del maestro de empleados.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ideas-api/internal/application/access"
	"github.com/jhoicas/Ideas-api/internal/application/ports"
	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/jhoicas/Ideas-api/internal/domain/entity"
	"github.com/jhoicas/Ideas-api/internal/domain/identity"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
)

// DefaultRoles roles que deben existir siempre.
var DefaultRoles = []string{entity.RoleAdmin, entity.RoleIdeador}

// Seeder operaciones idempotentes de inicialización.
type Seeder struct {
	tx        ports.TxRunner
	employees repository.EmployeeRepository
	now       func() time.Time
}

// NewSeeder construye el seeder.
func NewSeeder(tx ports.TxRunner, employees repository.EmployeeRepository) *Seeder {
	return &Seeder{tx: tx, employees: employees, now: time.Now}
}

// EnsureRoles crea los roles por defecto que falten.
func (s *Seeder) EnsureRoles(ctx context.Context) error {
	return s.tx.RunIdentity(ctx, func(_ repository.UserRepository, roles repository.RoleRepository) error {
		for _, name := range DefaultRoles {
			if _, err := roles.EnsureByName(ctx, name); err != nil {
				return err
			}
		}
		return nil
	})
}

// EnsureAdmins crea (si faltan) los usuarios indicados y les asigna Admin.
// Devuelve los logins normalizados que recibieron el rol en esta ejecución.
func (s *Seeder) EnsureAdmins(ctx context.Context, logins []string) ([]string, error) {
	var granted []string
	err := s.tx.RunIdentity(ctx, func(users repository.UserRepository, roles repository.RoleRepository) error {
		granted = granted[:0]
		for _, login := range logins {
			userName := identity.NormalizeLogin(login)
			if userName == "" {
				continue
			}
			user, err := users.GetByUserName(ctx, userName)
			if err != nil {
				return err
			}
			if user == nil {
				now := s.now().UTC()
				user = &entity.User{
					ID:        uuid.New().String(),
					UserName:  userName,
					IsActive:  true,
					CreatedAt: now,
					UpdatedAt: now,
				}
				if err := users.Create(ctx, user); err != nil {
					return err
				}
			}
			if user.HasRole(entity.RoleAdmin) {
				continue
			}
			if err := access.Grant(ctx, users, roles, user, entity.RoleAdmin); err != nil {
				return err
			}
			granted = append(granted, userName)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return granted, nil
}

// ImportEmployees inserta el lote solo si la tabla está vacía.
// Devuelve la cantidad insertada; 0 sin error si ya había datos.
func (s *Seeder) ImportEmployees(ctx context.Context, employees []entity.Employee) (int, error) {
	n, err := s.employees.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 || len(employees) == 0 {
		return 0, nil
	}
	for i := range employees {
		if employees[i].Code == "" {
			return 0, fmt.Errorf("%w: fila %d sin código de empleado", domain.ErrValidation, i+1)
		}
	}
	return s.employees.CreateBatch(ctx, employees)
}
