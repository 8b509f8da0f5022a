package dto

// ErrorResponse cuerpo de error HTTP.
// Details lleva los errores por campo de la validación de entrada.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// MessageResponse respuesta simple para operaciones sin cuerpo propio.
type MessageResponse struct {
	Message string `json:"message"`
}
