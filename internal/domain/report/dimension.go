// Package report contiene la semántica pura del tablero administrativo:
// dimensiones de agrupación, etiquetas de respaldo, filtros con token
// "desconocido", periodos y agrupación por día.
//
// Los adaptadores de persistencia deben producir exactamente los mismos
// resultados que estas funciones (el adaptador en memoria las usa tal cual;
// el de PostgreSQL las traduce a SQL).
package report

import "strings"

// Dimension eje de agrupación o filtrado de ideas.
type Dimension string

const (
	DimensionStatus         Dimension = "status"
	DimensionClassification Dimension = "classification"
	DimensionVia            Dimension = "via"
	DimensionInstance       Dimension = "instance"   // LEFT JOIN users por dueño
	DimensionDepartment     Dimension = "department" // LEFT JOIN employees por código
)

// Etiquetas de respaldo; también son los tokens "desconocido" de los filtros.
const (
	LabelSinClasificar   = "Sin Clasificar"
	LabelSinVia          = "Sin Vía"
	LabelSinInstancia    = "Sin Instancia"
	LabelSinDepartamento = "Sin Departamento"
)

// Fallback etiqueta para valores ausentes o en blanco. Status no tiene.
func (d Dimension) Fallback() string {
	switch d {
	case DimensionClassification:
		return LabelSinClasificar
	case DimensionVia:
		return LabelSinVia
	case DimensionInstance:
		return LabelSinInstancia
	case DimensionDepartment:
		return LabelSinDepartamento
	default:
		return ""
	}
}

// Label resuelve un valor opcional a su etiqueta de grupo. Es el único punto
// donde se sustituye la etiqueta de respaldo.
func (d Dimension) Label(v *string) string {
	if IsBlank(v) {
		return d.Fallback()
	}
	return *v
}

// IsBlank informa si el valor está ausente o solo tiene espacios.
func IsBlank(v *string) bool {
	return v == nil || strings.TrimSpace(*v) == ""
}

// LabelCount par (etiqueta, cantidad) de un grupo.
type LabelCount struct {
	Label string
	Count int
}
