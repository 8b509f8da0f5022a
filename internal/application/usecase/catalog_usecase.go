package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jhoicas/Ideas-api/internal/application/dto"
	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/jhoicas/Ideas-api/internal/domain/entity"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
)

// CatalogUseCase catálogos de clasificaciones e instancias.
type CatalogUseCase struct {
	repo repository.CatalogRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

// List ítems activos ordenados por nombre.
func (uc *CatalogUseCase) List(ctx context.Context, kind entity.CatalogKind) ([]dto.CatalogItemDTO, error) {
	items, err := uc.repo.ListActive(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CatalogItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.CatalogItemDTO{ID: it.ID, Nombre: it.Name})
	}
	return out, nil
}

// Create agrega un ítem activo.
func (uc *CatalogUseCase) Create(ctx context.Context, kind entity.CatalogKind, in dto.CreateCatalogItemRequest) (*dto.CatalogItemDTO, error) {
	name := strings.TrimSpace(in.Nombre)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrValidation)
	}
	if utf8.RuneCountInString(name) > entity.MaxCatalogNameLen {
		return nil, fmt.Errorf("%w: el nombre excede %d caracteres", domain.ErrValidation, entity.MaxCatalogNameLen)
	}
	item := &entity.CatalogItem{ID: uuid.New().String(), Kind: kind, Name: name, Active: true}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return &dto.CatalogItemDTO{ID: item.ID, Nombre: item.Name}, nil
}

// Delete baja lógica del ítem.
func (uc *CatalogUseCase) Delete(ctx context.Context, kind entity.CatalogKind, id string) error {
	ok, err := uc.repo.Deactivate(ctx, kind, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	return nil
}
