package report

import (
	"strings"
	"time"
)

// Period ventana hacia atrás del timeline.
type Period string

const (
	Period1M Period = "1M"
	Period3M Period = "3M"
	Period6M Period = "6M"
	Period1Y Period = "1Y"
	Period5Y Period = "5Y"
)

// ParsePeriod acepta los códigos conocidos; cualquier otro valor cae en 1M.
func ParsePeriod(s string) Period {
	switch p := Period(strings.TrimSpace(s)); p {
	case Period1M, Period3M, Period6M, Period1Y, Period5Y:
		return p
	default:
		return Period1M
	}
}

// Since límite inferior (inclusive) de CreatedAt para el periodo.
func (p Period) Since(now time.Time) time.Time {
	switch p {
	case Period3M:
		return addMonths(now, -3)
	case Period6M:
		return addMonths(now, -6)
	case Period1Y:
		return addMonths(now, -12)
	case Period5Y:
		return addMonths(now, -60)
	default:
		return addMonths(now, -1)
	}
}

// addMonths suma meses fijando el día al último del mes destino si no existe
// (31-mar menos un mes = 28/29-feb), a diferencia de time.AddDate que normaliza.
func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
