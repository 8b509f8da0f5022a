package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/Ideas-api/internal/application/analytics"
	"github.com/jhoicas/Ideas-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints del tablero administrativo.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve totales y agrupaciones por dimensión.
// GET /api/admin/dashboard
//
// Respuesta: DashboardDTO (total, pendientes, revisadas, usuariosActivos y
// porStatus … porDepartamento con su porcentaje sobre el total).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// GetTimeline serie diaria filtrada.
// POST /api/admin/dashboard/timeline
//
// Un cuerpo vacío equivale a periodo 1M sin filtros.
func (h *DashboardHandler) GetTimeline(c *fiber.Ctx) error {
	var in dto.TimelineFilterRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.uc.GetTimeline(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
