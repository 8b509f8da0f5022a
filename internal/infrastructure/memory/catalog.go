package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Ideas-api/internal/domain/entity"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo catálogos en memoria.
type CatalogRepo struct{ base }

// ListActive ítems activos por nombre.
func (r *CatalogRepo) ListActive(ctx context.Context, kind entity.CatalogKind) ([]entity.CatalogItem, error) {
	out := make([]entity.CatalogItem, 0)
	err := r.read(func(d *state) error {
		for _, it := range d.catalog {
			if it.Kind == kind && it.Active {
				out = append(out, *it)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

// Create agrega un ítem.
func (r *CatalogRepo) Create(ctx context.Context, item *entity.CatalogItem) error {
	return r.write(func(d *state) error {
		c := *item
		d.catalog[c.ID] = &c
		return nil
	})
}

// Deactivate baja lógica.
func (r *CatalogRepo) Deactivate(ctx context.Context, kind entity.CatalogKind, id string) (bool, error) {
	found := false
	err := r.write(func(d *state) error {
		if it, ok := d.catalog[id]; ok && it.Kind == kind {
			it.Active = false
			found = true
		}
		return nil
	})
	return found, err
}
