package repository

import (
	"context"

	"github.com/jhoicas/Ideas-api/internal/domain/entity"
)

// EmployeeRepository puerto de persistencia del maestro de empleados.
type EmployeeRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Employee, error)
	// Create inserta un empleado. Código duplicado → domain.ErrConflict.
	Create(ctx context.Context, e *entity.Employee) error
	Update(ctx context.Context, e *entity.Employee) error
	Count(ctx context.Context) (int, error)
	// CreateBatch carga masiva para el seed; los códigos deben venir sin duplicados.
	CreateBatch(ctx context.Context, employees []entity.Employee) (int, error)
}
