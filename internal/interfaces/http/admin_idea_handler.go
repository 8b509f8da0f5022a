package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ideas-api/internal/application/dto"
	"github.com/jhoicas/Ideas-api/internal/application/ideas"
)

// AdminIdeaHandler revisión y administración de ideas.
type AdminIdeaHandler struct {
	uc *ideas.IdeaUseCase
}

// NewAdminIdeaHandler construye el handler.
func NewAdminIdeaHandler(uc *ideas.IdeaUseCase) *AdminIdeaHandler {
	return &AdminIdeaHandler{uc: uc}
}

// ListPending GET /api/admin/ideas/pending
func (h *AdminIdeaHandler) ListPending(c *fiber.Ctx) error {
	out, err := h.uc.ListPending(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListReviewed GET /api/admin/ideas/reviewed
func (h *AdminIdeaHandler) ListReviewed(c *fiber.Ctx) error {
	out, err := h.uc.ListReviewed(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get GET /api/admin/ideas/:id
func (h *AdminIdeaHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetForAdmin(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Review godoc
// @Summary      Revisar una idea
// @Tags         admin
// @Accept       json
// @Param        id    path  string                 true  "ID de la idea"
// @Param        body  body  dto.IdeaReviewRequest  true  "estatus, clasificación, comentario"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/ideas/{id}/review [put]
func (h *AdminIdeaHandler) Review(c *fiber.Ctx) error {
	var in dto.IdeaReviewRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	if err := h.uc.Review(c.UserContext(), GetUserID(c), c.Params("id"), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateManual godoc
// @Summary      Registrar una idea manualmente en nombre de un empleado
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IdeaManualRequest  true  "datos de la idea y del empleado"
// @Success      201   {object}  dto.IdeaSummary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/ideas/manual [post]
func (h *AdminIdeaHandler) CreateManual(c *fiber.Ctx) error {
	var in dto.IdeaManualRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateManual(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete DELETE /api/admin/ideas/:id
func (h *AdminIdeaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
