package dto

import "time"

// IdeaCreateRequest alta de idea por el propio empleado. Los datos de empleado
// opcionales completan el maestro sin sobrescribir.
type IdeaCreateRequest struct {
	Descripcion    string `json:"descripcion"`
	Detalle        string `json:"detalle"`
	NombreCompleto string `json:"nombreCompleto" validate:"omitempty,max=300"`
	Email          string `json:"email" validate:"omitempty,email,max=200"`
	Departamento   string `json:"departamento" validate:"omitempty,max=200"`
}

// IdeaSummary fila de "mis ideas".
type IdeaSummary struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	Descripcion string    `json:"descripcion"`
	Status      string    `json:"status"`
}

// IdeaAdminSummary fila de los listados de administración.
type IdeaAdminSummary struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	Descripcion    string    `json:"descripcion"`
	Status         string    `json:"status"`
	CodigoEmpleado string    `json:"codigoEmpleado"`
	NombreCompleto *string   `json:"nombreCompleto"`
	Email          *string   `json:"email"`
	Departamento   *string   `json:"departamento"`
	Clasificacion  *string   `json:"clasificacion"`
	Instancia      *string   `json:"instancia"`
}

// IdeaHistoryEntry entrada del historial, más reciente primero.
type IdeaHistoryEntry struct {
	ChangedAt  time.Time `json:"changedAt"`
	ChangedBy  string    `json:"changedBy"`
	ChangeType string    `json:"changeType"`
	Notes      *string   `json:"notes"`
}

// IdeaDetail detalle con historial.
type IdeaDetail struct {
	ID             string             `json:"id"`
	CreatedAt      time.Time          `json:"createdAt"`
	Descripcion    string             `json:"descripcion"`
	Detalle        string             `json:"detalle"`
	Status         string             `json:"status"`
	Clasificacion  *string            `json:"clasificacion"`
	Via            *string            `json:"via"`
	AdminComment   *string            `json:"adminComment"`
	CodigoEmpleado string             `json:"codigoEmpleado"`
	NombreCompleto *string            `json:"nombreCompleto"`
	History        []IdeaHistoryEntry `json:"history"`
}

// IdeaReviewRequest revisión administrativa.
type IdeaReviewRequest struct {
	Status        string `json:"status" validate:"required,max=50"`
	Clasificacion string `json:"clasificacion" validate:"omitempty,max=200"`
	AdminComment  string `json:"adminComment" validate:"omitempty,max=1000"`
}

// IdeaManualRequest carga manual por un administrador.
type IdeaManualRequest struct {
	CodigoEmpleado string `json:"codigoEmpleado" validate:"required,max=20"`
	Descripcion    string `json:"descripcion"`
	Detalle        string `json:"detalle"`
	Via            string `json:"via" validate:"omitempty,max=100"`
	Clasificacion  string `json:"clasificacion" validate:"omitempty,max=200"`
	AdminComment   string `json:"adminComment" validate:"omitempty,max=1000"`
	NombreCompleto string `json:"nombreCompleto" validate:"omitempty,max=300"`
	Email          string `json:"email" validate:"omitempty,max=200"`
	Departamento   string `json:"departamento" validate:"omitempty,max=200"`
	Instancia      string `json:"instancia" validate:"omitempty,max=200"`
}
