package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ideas-api/internal/application/usecase"
)

// EmployeeHandler consultas del maestro de empleados.
type EmployeeHandler struct {
	uc *usecase.EmployeeUseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// Me GET /api/employees/me
func (h *EmployeeHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Search GET /api/admin/employees/search?codigo=
func (h *EmployeeHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.UserContext(), c.Query("codigo"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
