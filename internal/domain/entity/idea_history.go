package entity

import "time"

// IdeaHistory entrada de auditoría; solo se agrega, nunca se modifica.
type IdeaHistory struct {
	ID          string
	IdeaID      string
	ChangedAt   time.Time
	ChangedByID string
	ChangedBy   string // nombre para mostrar; se resuelve en lecturas
	ChangeType  string
	Notes       *string
}
