package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ideas-api/internal/application/dto"
	"github.com/jhoicas/Ideas-api/internal/application/usecase"
)

// UserHandler administración de usuarios.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// userNameParam login de la ruta, decodificado (admite "usuario@dominio").
func userNameParam(c *fiber.Ctx) string {
	raw := c.Params("userName")
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// List GET /api/admin/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Dar de alta un usuario desde el directorio
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "login, instancia y rol inicial"
// @Success      201   {object}  dto.UserSummary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete baja lógica. DELETE /api/admin/users/:userName
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), userNameParam(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetRoles PUT /api/admin/users/:userName/roles
func (h *UserHandler) SetRoles(c *fiber.Ctx) error {
	var in dto.UpdateRolesRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	if err := h.uc.SetRoles(c.UserContext(), userNameParam(c), in.Roles); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetActive PUT /api/admin/users/:userName/active
func (h *UserHandler) SetActive(c *fiber.Ctx) error {
	var in dto.UpdateActiveRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	if err := h.uc.SetActive(c.UserContext(), userNameParam(c), *in.IsActive); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetInstance PUT /api/admin/users/:userName/instance
func (h *UserHandler) SetInstance(c *fiber.Ctx) error {
	var in dto.UpdateInstanceRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	if err := h.uc.SetInstance(c.UserContext(), userNameParam(c), in.Instancia); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
