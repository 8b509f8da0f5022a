package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ideas-api/internal/application/dto"
	"github.com/jhoicas/Ideas-api/internal/application/ideas"
)

// IdeaHandler endpoints de ideas del propio usuario.
type IdeaHandler struct {
	uc *ideas.IdeaUseCase
}

// NewIdeaHandler construye el handler.
func NewIdeaHandler(uc *ideas.IdeaUseCase) *IdeaHandler {
	return &IdeaHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar una idea
// @Tags         ideas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IdeaCreateRequest  true  "descripción, detalle y datos opcionales del empleado"
// @Success      201   {object}  dto.IdeaSummary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ideas [post]
func (h *IdeaHandler) Create(c *fiber.Ctx) error {
	var in dto.IdeaCreateRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMine GET /api/ideas/mine
func (h *IdeaHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetMine GET /api/ideas/:id; solo el dueño.
func (h *IdeaHandler) GetMine(c *fiber.Ctx) error {
	out, err := h.uc.GetMine(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
