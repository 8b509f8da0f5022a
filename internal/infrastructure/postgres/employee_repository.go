package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/jhoicas/Ideas-api/internal/domain/entity"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo maestro de empleados sobre PostgreSQL.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de empleados.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

var employeeColumns = []string{"code", "first_name", "last_name1", "last_name2", "email", "department", "status"}

// GetByCode empleado por código.
func (r *EmployeeRepo) GetByCode(ctx context.Context, code string) (*entity.Employee, error) {
	query := `
		SELECT code, first_name, last_name1, last_name2, email, department, status
		FROM employees WHERE code = $1`
	var e entity.Employee
	err := r.q.QueryRow(ctx, query, code).Scan(
		&e.Code, &e.FirstName, &e.LastName1, &e.LastName2, &e.Email, &e.Department, &e.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get employee", err)
	}
	return &e, nil
}

// Create inserta un empleado. Código repetido → ErrConflict.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	query := `
		INSERT INTO employees (code, first_name, last_name1, last_name2, email, department, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, e.Code, e.FirstName, e.LastName1, e.LastName2, e.Email, e.Department, statusOrDefault(e.Status))
	if err != nil {
		return storeErr("insert employee", err)
	}
	return nil
}

// Update reemplaza los datos del empleado.
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	query := `
		UPDATE employees SET first_name = $2, last_name1 = $3, last_name2 = $4, email = $5,
		       department = $6, status = $7
		WHERE code = $1`
	cmd, err := r.q.Exec(ctx, query, e.Code, e.FirstName, e.LastName1, e.LastName2, e.Email, e.Department, statusOrDefault(e.Status))
	if err != nil {
		return storeErr("update employee", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("empleado %s: %w", e.Code, domain.ErrNotFound)
	}
	return nil
}

// Count cantidad de empleados.
func (r *EmployeeRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM employees`).Scan(&n); err != nil {
		return 0, storeErr("count employees", err)
	}
	return n, nil
}

// CreateBatch carga masiva con COPY; todos o ninguno.
func (r *EmployeeRepo) CreateBatch(ctx context.Context, employees []entity.Employee) (int, error) {
	if len(employees) == 0 {
		return 0, nil
	}
	n, err := r.q.CopyFrom(ctx, pgx.Identifier{"employees"}, employeeColumns,
		pgx.CopyFromSlice(len(employees), func(i int) ([]any, error) {
			e := employees[i]
			return []any{e.Code, e.FirstName, e.LastName1, e.LastName2, e.Email, e.Department, statusOrDefault(e.Status)}, nil
		}))
	if err != nil {
		return 0, storeErr("copy employees", err)
	}
	return int(n), nil
}

func statusOrDefault(s string) string {
	if s == "" {
		return entity.EmployeeStatusActive
	}
	return s
}
