package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Las capas superiores los envuelven con %w para añadir contexto; el borde HTTP
// los traduce a código de estado + código de error con errors.Is.
var (
	ErrValidation           = errors.New("entrada inválida")
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrUnauthenticated      = errors.New("no autenticado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrAccountDisabled      = errors.New("la cuenta está deshabilitada")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrLastAdminProtected   = errors.New("no se puede retirar el último administrador")
	ErrDirectoryUnavailable = errors.New("servicio de directorio no disponible")
	ErrStore                = errors.New("error de persistencia")
)
