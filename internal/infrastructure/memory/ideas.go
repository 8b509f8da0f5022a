package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/jhoicas/Ideas-api/internal/domain/entity"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
)

var _ repository.IdeaRepository = (*IdeaRepo)(nil)

// IdeaRepo ideas e historial en memoria.
type IdeaRepo struct{ base }

// Create inserta la idea y su historial inicial.
func (r *IdeaRepo) Create(ctx context.Context, idea *entity.Idea) error {
	return r.write(func(d *state) error {
		if _, ok := d.ideas[idea.ID]; ok {
			return fmt.Errorf("crear idea %s: %w", idea.ID, domain.ErrConflict)
		}
		c := *idea
		c.History = nil
		d.ideas[c.ID] = &c
		for _, h := range idea.History {
			h.IdeaID = c.ID
			d.history[c.ID] = append(d.history[c.ID], h)
		}
		return nil
	})
}

// GetByID idea sin historial.
func (r *IdeaRepo) GetByID(ctx context.Context, id string) (*entity.Idea, error) {
	var out *entity.Idea
	err := r.read(func(d *state) error {
		if i, ok := d.ideas[id]; ok {
			c := *i
			out = &c
		}
		return nil
	})
	return out, err
}

func (d *state) listing(i *entity.Idea) repository.IdeaListing {
	l := repository.IdeaListing{Idea: *i}
	if u, ok := d.users[i.OwnerID]; ok {
		l.OwnerUserName = u.UserName
		l.OwnerDisplayName = u.FullName
		l.Instance = u.Instance
	}
	if e, ok := d.employees[i.EmployeeCode]; ok {
		l.HasEmployee = true
		l.EmployeeName = e.FullName()
		l.EmployeeEmail = e.Email
		l.Department = e.Department
	}
	return l
}

// GetListing idea con datos de dueño y empleado.
func (r *IdeaRepo) GetListing(ctx context.Context, id string) (*repository.IdeaListing, error) {
	var out *repository.IdeaListing
	err := r.read(func(d *state) error {
		if i, ok := d.ideas[id]; ok {
			l := d.listing(i)
			out = &l
		}
		return nil
	})
	return out, err
}

// ListByOwner ideas del dueño, más recientes primero.
func (r *IdeaRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Idea, error) {
	var out []*entity.Idea
	err := r.read(func(d *state) error {
		out = make([]*entity.Idea, 0)
		for _, i := range d.ideas {
			if i.OwnerID == ownerID {
				c := *i
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, err
}

// ListForReview pendientes (Registrada) o revisadas (resto), más recientes primero.
func (r *IdeaRepo) ListForReview(ctx context.Context, pending bool) ([]repository.IdeaListing, error) {
	var out []repository.IdeaListing
	err := r.read(func(d *state) error {
		out = make([]repository.IdeaListing, 0)
		for _, i := range d.ideas {
			if i.IsPending() == pending {
				out = append(out, d.listing(i))
			}
		}
		return nil
	})
	sort.SliceStable(out, func(a, b int) bool { return out[a].Idea.CreatedAt.After(out[b].Idea.CreatedAt) })
	return out, err
}

// UpdateReview guarda estatus, clasificación y comentario.
func (r *IdeaRepo) UpdateReview(ctx context.Context, idea *entity.Idea) error {
	return r.write(func(d *state) error {
		i, ok := d.ideas[idea.ID]
		if !ok {
			return fmt.Errorf("idea %s: %w", idea.ID, domain.ErrNotFound)
		}
		i.Status = idea.Status
		i.Classification = idea.Classification
		i.AdminComment = idea.AdminComment
		return nil
	})
}

// AddHistory agrega una entrada al historial.
func (r *IdeaRepo) AddHistory(ctx context.Context, h *entity.IdeaHistory) error {
	return r.write(func(d *state) error {
		if _, ok := d.ideas[h.IdeaID]; !ok {
			return fmt.Errorf("idea %s: %w", h.IdeaID, domain.ErrNotFound)
		}
		d.history[h.IdeaID] = append(d.history[h.IdeaID], *h)
		return nil
	})
}

// ListHistory entradas más recientes primero, con el nombre del autor.
func (r *IdeaRepo) ListHistory(ctx context.Context, ideaID string) ([]entity.IdeaHistory, error) {
	var out []entity.IdeaHistory
	err := r.read(func(d *state) error {
		out = make([]entity.IdeaHistory, 0, len(d.history[ideaID]))
		for _, h := range d.history[ideaID] {
			if u, ok := d.users[h.ChangedByID]; ok {
				h.ChangedBy = u.DisplayName()
			}
			out = append(out, h)
		}
		return nil
	})
	// estable: a igual fecha, la última agregada primero
	for a, b := 0, len(out)-1; a < b; a, b = a+1, b-1 {
		out[a], out[b] = out[b], out[a]
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].ChangedAt.After(out[b].ChangedAt) })
	return out, err
}

// Delete elimina la idea y su historial.
func (r *IdeaRepo) Delete(ctx context.Context, id string) (bool, error) {
	found := false
	err := r.write(func(d *state) error {
		if _, ok := d.ideas[id]; ok {
			found = true
			delete(d.ideas, id)
			delete(d.history, id)
		}
		return nil
	})
	return found, err
}
