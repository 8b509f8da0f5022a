package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/jhoicas/Ideas-api/internal/domain/entity"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo maestro de empleados en memoria.
type EmployeeRepo struct{ base }

// GetByCode empleado por código.
func (r *EmployeeRepo) GetByCode(ctx context.Context, code string) (*entity.Employee, error) {
	var out *entity.Employee
	err := r.read(func(d *state) error {
		if e, ok := d.employees[code]; ok {
			c := *e
			out = &c
		}
		return nil
	})
	return out, err
}

// Create inserta un empleado.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	return r.write(func(d *state) error {
		if _, ok := d.employees[e.Code]; ok {
			return fmt.Errorf("empleado %s: %w", e.Code, domain.ErrConflict)
		}
		c := *e
		d.employees[c.Code] = &c
		return nil
	})
}

// Update reemplaza los datos del empleado.
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	return r.write(func(d *state) error {
		if _, ok := d.employees[e.Code]; !ok {
			return fmt.Errorf("empleado %s: %w", e.Code, domain.ErrNotFound)
		}
		c := *e
		d.employees[c.Code] = &c
		return nil
	})
}

// Count cantidad de empleados.
func (r *EmployeeRepo) Count(ctx context.Context) (int, error) {
	n := 0
	err := r.read(func(d *state) error {
		n = len(d.employees)
		return nil
	})
	return n, err
}

// CreateBatch inserta todos o ninguno.
func (r *EmployeeRepo) CreateBatch(ctx context.Context, employees []entity.Employee) (int, error) {
	err := r.write(func(d *state) error {
		for _, e := range employees {
			if _, ok := d.employees[e.Code]; ok {
				return fmt.Errorf("empleado %s: %w", e.Code, domain.ErrConflict)
			}
		}
		for _, e := range employees {
			c := e
			d.employees[c.Code] = &c
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(employees), nil
}
