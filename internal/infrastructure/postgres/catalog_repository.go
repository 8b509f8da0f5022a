package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/jhoicas/Ideas-api/internal/domain/entity"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo catálogos de clasificaciones e instancias (una tabla por tipo).
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador de catálogos.
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

func catalogTable(kind entity.CatalogKind) (string, error) {
	switch kind {
	case entity.CatalogClassifications:
		return "classifications", nil
	case entity.CatalogInstances:
		return "instances", nil
	default:
		return "", fmt.Errorf("%w: catálogo desconocido %q", domain.ErrValidation, kind)
	}
}

// ListActive ítems activos ordenados por nombre.
func (r *CatalogRepo) ListActive(ctx context.Context, kind entity.CatalogKind) ([]entity.CatalogItem, error) {
	table, err := catalogTable(kind)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, `SELECT id, name FROM `+table+` WHERE active ORDER BY name COLLATE "C"`)
	if err != nil {
		return nil, storeErr("list "+table, err)
	}
	defer rows.Close()

	out := make([]entity.CatalogItem, 0)
	for rows.Next() {
		it := entity.CatalogItem{Kind: kind, Active: true}
		if err := rows.Scan(&it.ID, &it.Name); err != nil {
			return nil, storeErr("scan "+table, err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list "+table, err)
	}
	return out, nil
}

// Create agrega un ítem.
func (r *CatalogRepo) Create(ctx context.Context, item *entity.CatalogItem) error {
	table, err := catalogTable(item.Kind)
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, `INSERT INTO `+table+` (id, name, active) VALUES ($1, $2, $3)`, item.ID, item.Name, item.Active); err != nil {
		return storeErr("insert "+table, err)
	}
	return nil
}

// Deactivate baja lógica; false si el ítem no existe.
func (r *CatalogRepo) Deactivate(ctx context.Context, kind entity.CatalogKind, id string) (bool, error) {
	table, err := catalogTable(kind)
	if err != nil {
		return false, err
	}
	if !validID(id) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `UPDATE `+table+` SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return false, storeErr("deactivate "+table, err)
	}
	return cmd.RowsAffected() > 0, nil
}
