package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ideas-api/internal/application/dto"
	"github.com/jhoicas/Ideas-api/internal/application/usecase"
	"github.com/jhoicas/Ideas-api/internal/domain/entity"
)

// CatalogHandler catálogos de un tipo (clasificaciones o instancias).
type CatalogHandler struct {
	uc   *usecase.CatalogUseCase
	kind entity.CatalogKind
}

// NewCatalogHandler construye el handler para un tipo de catálogo.
func NewCatalogHandler(uc *usecase.CatalogUseCase, kind entity.CatalogKind) *CatalogHandler {
	return &CatalogHandler{uc: uc, kind: kind}
}

// List ítems activos.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), h.kind)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create agrega un ítem (Admin).
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCatalogItemRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), h.kind, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete baja lógica (Admin).
func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), h.kind, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
