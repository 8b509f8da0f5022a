package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/jhoicas/Ideas-api/internal/domain/entity"
	"github.com/jhoicas/Ideas-api/internal/domain/report"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura del tablero. Replica en SQL la semántica
// del paquete report (etiquetas de respaldo, token desconocido, días UTC).
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador del tablero.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// factsFrom ideas con LEFT JOIN al dueño (instancia) y al empleado (departamento).
const factsFrom = `
	FROM ideas i
	LEFT JOIN users u     ON u.id = i.owner_id
	LEFT JOIN employees e ON e.code = i.employee_code`

// dimensionColumn expresión SQL del valor opcional de cada dimensión.
func dimensionColumn(d report.Dimension) (string, error) {
	switch d {
	case report.DimensionStatus:
		return "i.status", nil
	case report.DimensionClassification:
		return "i.classification", nil
	case report.DimensionVia:
		return "i.via", nil
	case report.DimensionInstance:
		return "u.instance", nil
	case report.DimensionDepartment:
		return "e.department", nil
	default:
		return "", fmt.Errorf("%w: dimensión desconocida %q", domain.ErrValidation, d)
	}
}

// sqlArgs acumula parámetros posicionales.
type sqlArgs struct {
	values []any
}

func (a *sqlArgs) add(v any) string {
	a.values = append(a.values, v)
	return "$" + strconv.Itoa(len(a.values))
}

// blank equivalente SQL de report.IsBlank.
func blank(col string) string {
	return "btrim(COALESCE(" + col + ", '')) = ''"
}

// filterClause traduce report.Filter; vacío si el filtro no está activo.
func filterClause(col string, f report.Filter, args *sqlArgs) string {
	if !f.Active() {
		return ""
	}
	var parts []string
	if len(f.Values) > 0 {
		parts = append(parts, col+" = ANY("+args.add(f.Values)+")")
	}
	if f.IncludeUnknown {
		parts = append(parts, blank(col))
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// CountIdeas total, pendientes y revisadas en una sola lectura.
func (r *ReportRepo) CountIdeas(ctx context.Context) (repository.IdeaCounts, error) {
	query := `
		SELECT count(*),
		       count(*) FILTER (WHERE status = $1),
		       count(*) FILTER (WHERE status <> $1)
		FROM ideas`
	var c repository.IdeaCounts
	if err := r.q.QueryRow(ctx, query, entity.StatusRegistrada).Scan(&c.Total, &c.Pending, &c.Reviewed); err != nil {
		return c, storeErr("count ideas", err)
	}
	return c, nil
}

// CountActiveUsers usuarios con is_active.
func (r *ReportRepo) CountActiveUsers(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM users WHERE is_active`).Scan(&n); err != nil {
		return 0, storeErr("count active users", err)
	}
	return n, nil
}

// CountByDimension agrupa por etiqueta; la etiqueta de respaldo se sustituye en la expresión del GROUP BY.
func (r *ReportRepo) CountByDimension(ctx context.Context, d report.Dimension) ([]report.LabelCount, error) {
	col, err := dimensionColumn(d)
	if err != nil {
		return nil, err
	}
	args := &sqlArgs{}
	label := col
	if fb := d.Fallback(); fb != "" {
		label = "CASE WHEN " + blank(col) + " THEN " + args.add(fb) + "::text ELSE " + col + " END"
	}
	query := `SELECT ` + label + ` AS label, count(*) AS n` + factsFrom + ` GROUP BY 1`

	rows, err := r.q.Query(ctx, query, args.values...)
	if err != nil {
		return nil, storeErr("count by "+string(d), err)
	}
	defer rows.Close()

	out := make([]report.LabelCount, 0)
	for rows.Next() {
		var lc report.LabelCount
		if err := rows.Scan(&lc.Label, &lc.Count); err != nil {
			return nil, storeErr("scan count by "+string(d), err)
		}
		out = append(out, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("count by "+string(d), err)
	}
	report.SortLabels(out)
	return out, nil
}

// CountByDay serie diaria (fecha UTC) de las ideas que pasan el filtro.
func (r *ReportRepo) CountByDay(ctx context.Context, f report.TimelineFilter) ([]report.DayCount, error) {
	args := &sqlArgs{}
	where := []string{"i.created_at >= " + args.add(f.Since)}
	for _, c := range []string{
		filterClause("i.status", f.Status, args),
		filterClause("i.via", f.Via, args),
		filterClause("u.instance", f.Instance, args),
		filterClause("e.department", f.Department, args),
	} {
		if c != "" {
			where = append(where, c)
		}
	}
	query := `SELECT (i.created_at AT TIME ZONE 'UTC')::date AS day, count(*)` + factsFrom +
		` WHERE ` + strings.Join(where, " AND ") + ` GROUP BY 1 ORDER BY 1`

	rows, err := r.q.Query(ctx, query, args.values...)
	if err != nil {
		return nil, storeErr("count by day", err)
	}
	defer rows.Close()

	out := make([]report.DayCount, 0)
	for rows.Next() {
		var (
			day time.Time
			n   int
		)
		if err := rows.Scan(&day, &n); err != nil {
			return nil, storeErr("scan count by day", err)
		}
		out = append(out, report.DayCount{Date: report.Day(day), Count: n})
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("count by day", err)
	}
	return out, nil
}
