package entity

// CatalogKind identifica una lista de catálogo.
type CatalogKind string

const (
	CatalogClassifications CatalogKind = "classifications"
	CatalogInstances       CatalogKind = "instances"
)

// MaxCatalogNameLen límite del nombre de un ítem.
const MaxCatalogNameLen = 200

// CatalogItem fila de catálogo con baja lógica (Active=false).
type CatalogItem struct {
	ID     string
	Kind   CatalogKind
	Name   string
	Active bool
}
