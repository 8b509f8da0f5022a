// Package analytics contiene los casos de uso del tablero administrativo:
// resumen por dimensiones y timeline filtrado.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Ideas-api/internal/application/dto"
	"github.com/jhoicas/Ideas-api/internal/application/ports"
	"github.com/jhoicas/Ideas-api/internal/domain/report"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// summaryDimensions orden de los grupos en el DTO.
var summaryDimensions = []report.Dimension{
	report.DimensionStatus,
	report.DimensionClassification,
	report.DimensionVia,
	report.DimensionInstance,
	report.DimensionDepartment,
}

// DashboardUseCase genera el resumen y el timeline de ideas.
//
// Fuente de datos: ReportRepository (consultas read-only). El resumen corre en
// una transacción de lectura para que Total y los grupos salgan de la misma foto.
type DashboardUseCase struct {
	tx         ports.TxRunner
	reportRepo repository.ReportRepository
	now        func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(tx ports.TxRunner, reportRepo repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{tx: tx, reportRepo: reportRepo, now: time.Now}
}

// GetSummary construye el DashboardDTO.
//
// Consultas, en orden y dentro de RunReport:
//  1. CountIdeas          → Total, Pendientes, Revisadas
//  2. CountActiveUsers    → UsuariosActivos
//  3. CountByDimension ×5 → PorStatus … PorDepartamento
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardDTO, error) {
	var (
		counts repository.IdeaCounts
		users  int
		groups = make([][]report.LabelCount, len(summaryDimensions))
	)
	err := uc.tx.RunReport(ctx, func(reports repository.ReportRepository) error {
		var err error
		if counts, err = reports.CountIdeas(ctx); err != nil {
			return fmt.Errorf("dashboard: contadores: %w", err)
		}
		if users, err = reports.CountActiveUsers(ctx); err != nil {
			return fmt.Errorf("dashboard: usuarios activos: %w", err)
		}
		for i, d := range summaryDimensions {
			if groups[i], err = reports.CountByDimension(ctx, d); err != nil {
				return fmt.Errorf("dashboard: por %s: %w", d, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	total := counts.Total
	return &dto.DashboardDTO{
		Total:            total,
		Pendientes:       counts.Pending,
		Revisadas:        counts.Reviewed,
		UsuariosActivos:  users,
		PorStatus:        toCountByLabel(groups[0], total),
		PorClasificacion: toCountByLabel(groups[1], total),
		PorVia:           toCountByLabel(groups[2], total),
		PorInstancia:     toCountByLabel(groups[3], total),
		PorDepartamento:  toCountByLabel(groups[4], total),
	}, nil
}

// GetTimeline devuelve la serie diaria de ideas creadas en el periodo con los filtros.
// TotalFiltrado se calcula como la suma de los puntos, así ambos siempre coinciden.
func (uc *DashboardUseCase) GetTimeline(ctx context.Context, in dto.TimelineFilterRequest) (*dto.TimelineResponse, error) {
	filter := report.NewTimelineFilter(uc.now(), report.TimelineQuery{
		Period:      in.Periodo,
		Statuses:    in.Status,
		Vias:        in.Vias,
		Instances:   in.Instancias,
		Departments: in.Departamentos,
	})
	days, err := uc.reportRepo.CountByDay(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("timeline: %w", err)
	}
	report.SortDays(days)

	points := make([]dto.TimePoint, 0, len(days))
	for _, d := range days {
		points = append(points, dto.TimePoint{Fecha: d.Date, Cantidad: d.Count})
	}
	return &dto.TimelineResponse{Puntos: points, TotalFiltrado: report.Total(days)}, nil
}

// toCountByLabel agrega el porcentaje de cada grupo sobre total (2 decimales).
func toCountByLabel(groups []report.LabelCount, total int) []dto.CountByLabel {
	out := make([]dto.CountByLabel, 0, len(groups))
	hundred := decimal.NewFromInt(100)
	for _, g := range groups {
		pct := decimal.Zero
		if total > 0 {
			pct = decimal.NewFromInt(int64(g.Count)).Mul(hundred).Div(decimal.NewFromInt(int64(total))).Round(2)
		}
		out = append(out, dto.CountByLabel{Label: g.Label, Count: g.Count, Porcentaje: pct})
	}
	return out
}
