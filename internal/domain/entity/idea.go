package entity

import "time"

// Estatus conocidos de una idea. El campo admite cualquier texto no vacío fijado
// por un administrador; pendientes/revisadas se definen solo contra StatusRegistrada.
const (
	StatusRegistrada  = "Registrada"
	StatusRevisada    = "Revisada"
	StatusEnEjecucion = "En Ejecución"
)

// Vías de registro.
const (
	ViaSistema = "Sistema"
	ViaManual  = "Manual"
)

// Tipos de cambio del historial.
const (
	ChangeCreacion       = "Creación"
	ChangeRevision       = "Revisión"
	ChangeManualAdmin    = "Registro Manual Administrativo"
	NotesRegistroInicial = "Registro inicial"
)

// Valores por defecto del registro manual.
const (
	DefaultManualClassification = "Manual Admin"
	DefaultManualComment        = "Carga manual"
)

// Límites de columnas de ideas.
const (
	MaxDescriptionLen    = 500
	MaxDetailLen         = 4000
	MaxStatusLen         = 50
	MaxClassificationLen = 200
	MaxViaLen            = 100
	MaxAdminCommentLen   = 1000
)

// Idea propuesta de mejora. EmployeeCode está desnormalizado y puede diferir del
// código actual del usuario dueño.
type Idea struct {
	ID             string
	CreatedAt      time.Time
	OwnerID        string
	EmployeeCode   string
	Description    string
	Detail         string
	Status         string
	Classification *string
	Via            *string
	AdminComment   *string
	History        []IdeaHistory // solo se carga en lecturas de detalle y en la creación
}

// IsPending informa si la idea sigue en el estatus inicial.
func (i *Idea) IsPending() bool { return i.Status == StatusRegistrada }
