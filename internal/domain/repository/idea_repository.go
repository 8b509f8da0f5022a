package repository

import (
	"context"

	"github.com/jhoicas/Ideas-api/internal/domain/entity"
)

// IdeaListing vista de administración: idea unida (LEFT JOIN) con su dueño y
// con el empleado de su código. Los campos de empleado quedan vacíos si no existe.
type IdeaListing struct {
	Idea             entity.Idea
	OwnerUserName    string
	OwnerDisplayName *string // users.full_name
	Instance         *string // users.instance
	HasEmployee      bool
	EmployeeName     string
	EmployeeEmail    string
	Department       string
}

// IdeaRepository puerto de persistencia de ideas y su historial.
type IdeaRepository interface {
	// Create inserta la idea y todas las entradas de idea.History (mismo Querier).
	Create(ctx context.Context, idea *entity.Idea) error
	// GetByID devuelve la idea sin historial; (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Idea, error)
	// GetListing igual que GetByID pero con datos de dueño y empleado.
	GetListing(ctx context.Context, id string) (*IdeaListing, error)
	// ListByOwner ideas del usuario, más recientes primero.
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Idea, error)
	// ListForReview pending=true → status = Registrada; false → status <> Registrada.
	// Más recientes primero.
	ListForReview(ctx context.Context, pending bool) ([]IdeaListing, error)
	// UpdateReview guarda status, classification y admin_comment.
	UpdateReview(ctx context.Context, idea *entity.Idea) error
	AddHistory(ctx context.Context, h *entity.IdeaHistory) error
	// ListHistory entradas más recientes primero, con ChangedBy resuelto
	// (nombre completo o login del autor).
	ListHistory(ctx context.Context, ideaID string) ([]entity.IdeaHistory, error)
	// Delete elimina la idea y su historial. false si no existía.
	Delete(ctx context.Context, id string) (bool, error)
}
