package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Ideas-api/internal/application/dto"
	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/jhoicas/Ideas-api/internal/domain/entity"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
)

// EmployeeUseCase consultas del maestro de empleados.
type EmployeeUseCase struct {
	employees repository.EmployeeRepository
	users     repository.UserRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(employees repository.EmployeeRepository, users repository.UserRepository) *EmployeeUseCase {
	return &EmployeeUseCase{employees: employees, users: users}
}

// Me datos de empleado del usuario de la sesión; sin empleado cae en los datos del usuario.
func (uc *EmployeeUseCase) Me(ctx context.Context, userID string) (*dto.EmployeeLookup, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	if user.EmployeeCode == nil {
		return &dto.EmployeeLookup{NombreCompleto: user.FullName}, nil
	}
	emp, err := uc.employees.GetByCode(ctx, *user.EmployeeCode)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return &dto.EmployeeLookup{CodigoEmpleado: *user.EmployeeCode, NombreCompleto: user.FullName}, nil
	}
	return toLookup(emp), nil
}

// Search busca un empleado por código exacto (recortado).
func (uc *EmployeeUseCase) Search(ctx context.Context, code string) (*dto.EmployeeLookup, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: el código es requerido", domain.ErrValidation)
	}
	emp, err := uc.employees.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, fmt.Errorf("empleado %s: %w", code, domain.ErrNotFound)
	}
	return toLookup(emp), nil
}

func toLookup(e *entity.Employee) *dto.EmployeeLookup {
	return &dto.EmployeeLookup{
		CodigoEmpleado: e.Code,
		NombreCompleto: blankToNil(e.FullName()),
		Email:          blankToNil(e.Email),
		Departamento:   blankToNil(e.Department),
	}
}

func blankToNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
