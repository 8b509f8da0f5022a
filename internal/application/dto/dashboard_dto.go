package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountByLabel grupo del tablero. Porcentaje es la participación sobre el total
// de ideas (2 decimales; 0 si no hay ideas).
type CountByLabel struct {
	Label      string          `json:"label"`
	Count      int             `json:"count"`
	Porcentaje decimal.Decimal `json:"porcentaje"`
}

// DashboardDTO respuesta de GET /api/admin/dashboard.
type DashboardDTO struct {
	Total            int            `json:"total"`
	Pendientes       int            `json:"pendientes"`
	Revisadas        int            `json:"revisadas"`
	UsuariosActivos  int            `json:"usuariosActivos"`
	PorStatus        []CountByLabel `json:"porStatus"`
	PorClasificacion []CountByLabel `json:"porClasificacion"`
	PorVia           []CountByLabel `json:"porVia"`
	PorInstancia     []CountByLabel `json:"porInstancia"`
	PorDepartamento  []CountByLabel `json:"porDepartamento"`
}

// TimelineFilterRequest filtros del timeline. Cuerpo vacío = 1M sin filtros.
type TimelineFilterRequest struct {
	Periodo       string   `json:"periodo"`
	Status        []string `json:"status"`
	Vias          []string `json:"vias"`
	Instancias    []string `json:"instancias"`
	Departamentos []string `json:"departamentos"`
}

// TimePoint cantidad de ideas creadas en una fecha UTC.
type TimePoint struct {
	Fecha    time.Time `json:"fecha"`
	Cantidad int       `json:"cantidad"`
}

// TimelineResponse serie diaria ascendente; TotalFiltrado = suma de Cantidad.
type TimelineResponse struct {
	Puntos        []TimePoint `json:"puntos"`
	TotalFiltrado int         `json:"totalFiltrado"`
}
