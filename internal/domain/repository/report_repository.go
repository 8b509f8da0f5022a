package repository

import (
	"context"

	"github.com/jhoicas/Ideas-api/internal/domain/report"
)

// IdeaCounts contadores globales del tablero.
// Pending cuenta status = Registrada y Reviewed status <> Registrada, de modo
// que Pending + Reviewed = Total.
type IdeaCounts struct {
	Total    int
	Pending  int
	Reviewed int
}

// ReportRepository consultas de solo lectura del tablero administrativo.
// Las implementaciones deben resolver etiquetas con report.Dimension.Label y
// filtrar con report.TimelineFilter.Matches (o su equivalente SQL).
type ReportRepository interface {
	CountIdeas(ctx context.Context) (IdeaCounts, error)
	CountActiveUsers(ctx context.Context) (int, error)

	// CountByDimension agrupa todas las ideas por la etiqueta de la dimensión.
	// Instancia: LEFT JOIN users por dueño. Departamento: LEFT JOIN employees por código.
	CountByDimension(ctx context.Context, d report.Dimension) ([]report.LabelCount, error)

	// CountByDay cuenta las ideas filtradas por fecha calendario UTC, ascendente.
	CountByDay(ctx context.Context, f report.TimelineFilter) ([]report.DayCount, error)
}
