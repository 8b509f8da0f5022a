package memory

import (
	"context"

	"github.com/jhoicas/Ideas-api/internal/domain/report"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo tablero calculado sobre el estado en memoria con las funciones de report.
type ReportRepo struct{ base }

// facts une cada idea con su dueño (instancia) y su empleado (departamento).
func (d *state) facts() []report.IdeaFact {
	out := make([]report.IdeaFact, 0, len(d.ideas))
	for _, i := range d.ideas {
		f := report.IdeaFact{
			CreatedAt:      i.CreatedAt,
			Status:         i.Status,
			Classification: i.Classification,
			Via:            i.Via,
		}
		if u, ok := d.users[i.OwnerID]; ok {
			f.Instance = u.Instance
		}
		if e, ok := d.employees[i.EmployeeCode]; ok {
			dep := e.Department
			f.Department = &dep
		}
		out = append(out, f)
	}
	return out
}

// CountIdeas total, pendientes y revisadas.
func (r *ReportRepo) CountIdeas(ctx context.Context) (repository.IdeaCounts, error) {
	var c repository.IdeaCounts
	err := r.read(func(d *state) error {
		for _, i := range d.ideas {
			c.Total++
			if i.IsPending() {
				c.Pending++
			} else {
				c.Reviewed++
			}
		}
		return nil
	})
	return c, err
}

// CountActiveUsers usuarios con IsActive.
func (r *ReportRepo) CountActiveUsers(ctx context.Context) (int, error) {
	n := 0
	err := r.read(func(d *state) error {
		for _, u := range d.users {
			if u.IsActive {
				n++
			}
		}
		return nil
	})
	return n, err
}

// CountByDimension agrupa por la etiqueta de la dimensión.
func (r *ReportRepo) CountByDimension(ctx context.Context, dim report.Dimension) ([]report.LabelCount, error) {
	var out []report.LabelCount
	err := r.read(func(d *state) error {
		out = report.GroupBy(d.facts(), dim)
		return nil
	})
	return out, err
}

// CountByDay serie diaria de las ideas que pasan el filtro.
func (r *ReportRepo) CountByDay(ctx context.Context, f report.TimelineFilter) ([]report.DayCount, error) {
	var out []report.DayCount
	err := r.read(func(d *state) error {
		kept := make([]report.IdeaFact, 0)
		for _, fact := range d.facts() {
			if f.Matches(fact) {
				kept = append(kept, fact)
			}
		}
		out = report.BucketByDay(kept)
		return nil
	})
	return out, err
}
