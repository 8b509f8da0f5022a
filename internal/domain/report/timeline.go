package report

import (
	"sort"
	"time"
)

// TimelineQuery parámetros crudos recibidos del cliente.
type TimelineQuery struct {
	Period      string
	Statuses    []string
	Vias        []string
	Instances   []string
	Departments []string
}

// TimelineFilter filtros ya normalizados. Las dimensiones se combinan con AND.
type TimelineFilter struct {
	Since      time.Time
	Status     Filter // sin token "desconocido"
	Via        Filter
	Instance   Filter
	Department Filter
}

// NewTimelineFilter normaliza la consulta contra el instante now (UTC).
func NewTimelineFilter(now time.Time, q TimelineQuery) TimelineFilter {
	return TimelineFilter{
		Since:      ParsePeriod(q.Period).Since(now.UTC()),
		Status:     ParseFilter(DimensionStatus, q.Statuses),
		Via:        ParseFilter(DimensionVia, q.Vias),
		Instance:   ParseFilter(DimensionInstance, q.Instances),
		Department: ParseFilter(DimensionDepartment, q.Departments),
	}
}

// IdeaFact fila de idea ya unida (LEFT JOIN) con su usuario y su empleado.
// Instance es nil si el dueño no existe o no tiene instancia; Department es nil
// si no hay empleado con ese código.
type IdeaFact struct {
	CreatedAt      time.Time
	Status         string
	Classification *string
	Via            *string
	Instance       *string
	Department     *string
}

// Value devuelve el valor opcional de la dimensión.
func (f IdeaFact) Value(d Dimension) *string {
	switch d {
	case DimensionStatus:
		s := f.Status
		return &s
	case DimensionClassification:
		return f.Classification
	case DimensionVia:
		return f.Via
	case DimensionInstance:
		return f.Instance
	case DimensionDepartment:
		return f.Department
	default:
		return nil
	}
}

// Matches aplica todos los filtros.
func (tf TimelineFilter) Matches(f IdeaFact) bool {
	if f.CreatedAt.Before(tf.Since) {
		return false
	}
	return tf.Status.Matches(f.Value(DimensionStatus)) &&
		tf.Via.Matches(f.Via) &&
		tf.Instance.Matches(f.Instance) &&
		tf.Department.Matches(f.Department)
}

// DayCount punto del timeline: fecha UTC (00:00) y cantidad de ideas.
type DayCount struct {
	Date  time.Time
	Count int
}

// Day trunca un instante a su fecha calendario UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// BucketByDay agrupa por fecha y ordena ascendente. Sin hechos devuelve lista vacía.
func BucketByDay(facts []IdeaFact) []DayCount {
	counts := make(map[time.Time]int)
	for _, f := range facts {
		counts[Day(f.CreatedAt)]++
	}
	points := make([]DayCount, 0, len(counts))
	for d, c := range counts {
		points = append(points, DayCount{Date: d, Count: c})
	}
	SortDays(points)
	return points
}

// SortDays ordena los puntos por fecha ascendente.
func SortDays(points []DayCount) {
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
}

// Total suma las cantidades de todos los puntos.
func Total(points []DayCount) int {
	n := 0
	for _, p := range points {
		n += p.Count
	}
	return n
}

// GroupBy cuenta hechos por etiqueta de la dimensión. Las etiquetas son únicas;
// el orden (mayor cantidad primero, luego etiqueta) es solo para estabilidad.
func GroupBy(facts []IdeaFact, d Dimension) []LabelCount {
	counts := make(map[string]int)
	for _, f := range facts {
		counts[d.Label(f.Value(d))]++
	}
	out := make([]LabelCount, 0, len(counts))
	for l, c := range counts {
		out = append(out, LabelCount{Label: l, Count: c})
	}
	SortLabels(out)
	return out
}

// SortLabels orden estable: cantidad descendente y luego etiqueta.
func SortLabels(groups []LabelCount) {
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Label < groups[j].Label
	})
}
