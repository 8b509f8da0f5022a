package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ideas-api/internal/application/dto"
	"github.com/jhoicas/Ideas-api/internal/application/ports"
	"github.com/jhoicas/Ideas-api/pkg/jwt"
	"github.com/rs/zerolog/log"
)

// Locals keys de la sesión en Fiber.
const (
	LocalUserID    = "user_id"
	LocalUserName  = "user_name"
	LocalRoles     = "roles"
	LocalSessionID = "session_id"
)

// AuthConfig parámetros del middleware de sesión.
type AuthConfig struct {
	Secret     string
	CookieName string
	Sessions   ports.SessionStore // nil = solo se valida la firma del token
}

// AuthMiddleware acepta el token en la cookie de sesión o como Bearer, valida
// firma y expiración, exige que la sesión no esté revocada y carga los claims en c.Locals.
func AuthMiddleware(cfg AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := tokenFromRequest(c, cfg.CookieName)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "sesión requerida"})
		}
		claims, err := jwt.Parse(cfg.Secret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if cfg.Sessions != nil {
			ok, err := cfg.Sessions.Exists(c.UserContext(), claims.ID)
			if err != nil {
				log.Error().Err(err).Str("session_id", claims.ID).Msg("consultar sesión")
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SESSION_STORE_UNAVAILABLE", Message: "no fue posible validar la sesión"})
			}
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_REVOKED", Message: "la sesión fue cerrada"})
			}
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUserName, claims.UserName)
		c.Locals(LocalRoles, claims.Roles)
		c.Locals(LocalSessionID, claims.ID)
		return c.Next()
	}
}

func tokenFromRequest(c *fiber.Ctx, cookieName string) string {
	if cookieName != "" {
		if v := strings.TrimSpace(c.Cookies(cookieName)); v != "" {
			return v
		}
	}
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireRole autoriza si el usuario tiene alguno de los roles (sin distinguir mayúsculas).
// Debe ir después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		held := GetRoles(c)
		if len(held) == 0 {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el usuario no tiene roles asignados"})
		}
		for _, want := range roles {
			for _, h := range held {
				if strings.EqualFold(h, want) {
					return c.Next()
				}
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tiene permisos para esta operación"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetUserName login normalizado de la sesión.
func GetUserName(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserName).(string)
	return s
}

// GetRoles roles del token de sesión.
func GetRoles(c *fiber.Ctx) []string {
	r, _ := c.Locals(LocalRoles).([]string)
	return r
}

// GetSessionID jti de la sesión.
func GetSessionID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSessionID).(string)
	return s
}
