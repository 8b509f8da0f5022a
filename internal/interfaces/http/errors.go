package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jhoicas/Ideas-api/internal/application/dto"
	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/rs/zerolog/log"
)

const msgInternal = "Error interno del servidor"

// errorMapping estado HTTP y código por error de dominio, en orden de evaluación.
var errorMapping = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrValidation, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUnauthenticated, fiber.StatusUnauthorized, "UNAUTHENTICATED"},
	{domain.ErrAccountDisabled, fiber.StatusForbidden, "ACCOUNT_DISABLED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrLastAdminProtected, fiber.StatusConflict, "LAST_ADMIN_PROTECTED"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrDirectoryUnavailable, fiber.StatusServiceUnavailable, "DIRECTORY_UNAVAILABLE"},
}

// writeError traduce un error de caso de uso a dto.ErrorResponse.
// Errores de persistencia y desconocidos se registran y responden 500 sin detalle.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMapping {
		if errors.Is(err, m.target) {
			msg := err.Error()
			if m.target == domain.ErrDirectoryUnavailable {
				msg = m.target.Error()
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
		}
	}
	code := "INTERNAL"
	if errors.Is(err, domain.ErrStore) {
		code = "STORE_ERROR"
	}
	log.Error().Err(err).
		Str("request_id", requestID(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: code, Message: msgInternal})
}

// ErrorHandler último recurso de Fiber: rutas inexistentes, cuerpos demasiado
// grandes y errores devueltos sin pasar por writeError. Con dev=true incluye el detalle.
func ErrorHandler(dev bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: codeForStatus(fe.Code), Message: fe.Message})
		}
		log.Error().Err(err).
			Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error no controlado")
		resp := dto.ErrorResponse{Code: "INTERNAL", Message: msgInternal}
		if dev {
			resp.Details = map[string]string{"error": err.Error()}
		}
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	case fiber.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	case fiber.StatusUnauthorized:
		return "UNAUTHENTICATED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	default:
		if status >= 500 {
			return "INTERNAL"
		}
		return "BAD_REQUEST"
	}
}

func requestID(c *fiber.Ctx) string {
	if v, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return v
	}
	return ""
}
