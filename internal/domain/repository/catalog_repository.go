package repository

import (
	"context"

	"github.com/jhoicas/Ideas-api/internal/domain/entity"
)

// CatalogRepository listas de clasificaciones e instancias.
type CatalogRepository interface {
	// ListActive ítems activos ordenados por nombre.
	ListActive(ctx context.Context, kind entity.CatalogKind) ([]entity.CatalogItem, error)
	Create(ctx context.Context, item *entity.CatalogItem) error
	// Deactivate baja lógica; false si el id no existe en esa lista.
	Deactivate(ctx context.Context, kind entity.CatalogKind, id string) (bool, error)
}
