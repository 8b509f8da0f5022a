package ports

import (
	"context"

	"github.com/jhoicas/Ideas-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks con repositorios atados a una misma transacción.
// Si fn devuelve error se hace rollback y ningún cambio es visible.
type TxRunner interface {
	// RunIdentity cubre reconciliación, asignación de roles y bajas de usuario.
	RunIdentity(ctx context.Context, fn func(
		users repository.UserRepository,
		roles repository.RoleRepository,
	) error) error

	// RunIdeas cubre creación de ideas (idea + historial + empleado + dueño) y revisión.
	RunIdeas(ctx context.Context, fn func(
		ideas repository.IdeaRepository,
		users repository.UserRepository,
		roles repository.RoleRepository,
		employees repository.EmployeeRepository,
	) error) error

	// RunReport ejecuta lecturas del tablero sobre una misma foto de los datos.
	// Dentro de fn las consultas deben ser secuenciales.
	RunReport(ctx context.Context, fn func(reports repository.ReportRepository) error) error
}
