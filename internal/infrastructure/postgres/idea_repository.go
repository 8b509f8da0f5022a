package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/jhoicas/Ideas-api/internal/domain/entity"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
)

var _ repository.IdeaRepository = (*IdeaRepo)(nil)

// IdeaRepo ideas e historial sobre PostgreSQL.
type IdeaRepo struct {
	q Querier
}

// NewIdeaRepository construye el adaptador de ideas.
func NewIdeaRepository(q Querier) *IdeaRepo {
	return &IdeaRepo{q: q}
}

const ideaColumns = `i.id, i.created_at, i.owner_id, i.employee_code, i.description, i.detail,
	       i.status, i.classification, i.via, i.admin_comment`

// listingSelect idea unida (LEFT JOIN) con su dueño y su empleado.
const listingSelect = `
	SELECT ` + ideaColumns + `,
	       COALESCE(u.user_name, ''), u.full_name, u.instance,
	       e.code IS NOT NULL,
	       COALESCE(e.first_name, ''), COALESCE(e.last_name1, ''), COALESCE(e.last_name2, ''),
	       COALESCE(e.email, ''), COALESCE(e.department, '')
	FROM ideas i
	LEFT JOIN users u     ON u.id = i.owner_id
	LEFT JOIN employees e ON e.code = i.employee_code`

func ideaDest(i *entity.Idea) []any {
	return []any{
		&i.ID, &i.CreatedAt, &i.OwnerID, &i.EmployeeCode, &i.Description, &i.Detail,
		&i.Status, &i.Classification, &i.Via, &i.AdminComment,
	}
}

func scanListing(row pgx.Row) (*repository.IdeaListing, error) {
	var (
		l   repository.IdeaListing
		emp entity.Employee
	)
	dest := append(ideaDest(&l.Idea),
		&l.OwnerUserName, &l.OwnerDisplayName, &l.Instance,
		&l.HasEmployee,
		&emp.FirstName, &emp.LastName1, &emp.LastName2,
		&l.EmployeeEmail, &l.Department,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	l.Idea.CreatedAt = l.Idea.CreatedAt.UTC()
	if l.HasEmployee {
		l.EmployeeName = emp.FullName()
	}
	return &l, nil
}

// Create inserta la idea y su historial inicial. Debe llamarse dentro de RunIdeas.
func (r *IdeaRepo) Create(ctx context.Context, idea *entity.Idea) error {
	query := `
		INSERT INTO ideas (id, created_at, owner_id, employee_code, description, detail, status, classification, via, admin_comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		idea.ID, idea.CreatedAt, idea.OwnerID, idea.EmployeeCode, idea.Description, idea.Detail,
		idea.Status, idea.Classification, idea.Via, idea.AdminComment,
	)
	if err != nil {
		return storeErr("insert idea", err)
	}
	for i := range idea.History {
		h := idea.History[i]
		h.IdeaID = idea.ID
		if err := r.AddHistory(ctx, &h); err != nil {
			return err
		}
	}
	return nil
}

// GetByID idea sin historial.
func (r *IdeaRepo) GetByID(ctx context.Context, id string) (*entity.Idea, error) {
	if !validID(id) {
		return nil, nil
	}
	var idea entity.Idea
	err := r.q.QueryRow(ctx, `SELECT `+ideaColumns+` FROM ideas i WHERE i.id = $1`, id).Scan(ideaDest(&idea)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get idea", err)
	}
	idea.CreatedAt = idea.CreatedAt.UTC()
	return &idea, nil
}

// GetListing idea con datos de dueño y empleado.
func (r *IdeaRepo) GetListing(ctx context.Context, id string) (*repository.IdeaListing, error) {
	if !validID(id) {
		return nil, nil
	}
	l, err := scanListing(r.q.QueryRow(ctx, listingSelect+` WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get idea listing", err)
	}
	return l, nil
}

// ListByOwner ideas del dueño, más recientes primero.
func (r *IdeaRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Idea, error) {
	out := make([]*entity.Idea, 0)
	if !validID(ownerID) {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+ideaColumns+` FROM ideas i WHERE i.owner_id = $1 ORDER BY i.created_at DESC`, ownerID)
	if err != nil {
		return nil, storeErr("list ideas by owner", err)
	}
	defer rows.Close()
	for rows.Next() {
		var idea entity.Idea
		if err := rows.Scan(ideaDest(&idea)...); err != nil {
			return nil, storeErr("scan idea", err)
		}
		idea.CreatedAt = idea.CreatedAt.UTC()
		out = append(out, &idea)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list ideas by owner", err)
	}
	return out, nil
}

// ListForReview pendientes (Registrada) o revisadas (resto), más recientes primero.
func (r *IdeaRepo) ListForReview(ctx context.Context, pending bool) ([]repository.IdeaListing, error) {
	cond := `i.status = $1`
	if !pending {
		cond = `i.status <> $1`
	}
	rows, err := r.q.Query(ctx, listingSelect+` WHERE `+cond+` ORDER BY i.created_at DESC`, entity.StatusRegistrada)
	if err != nil {
		return nil, storeErr("list ideas for review", err)
	}
	defer rows.Close()

	out := make([]repository.IdeaListing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, storeErr("scan idea listing", err)
		}
		out = append(out, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list ideas for review", err)
	}
	return out, nil
}

// UpdateReview guarda estatus, clasificación y comentario.
func (r *IdeaRepo) UpdateReview(ctx context.Context, idea *entity.Idea) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE ideas SET status = $2, classification = $3, admin_comment = $4 WHERE id = $1`,
		idea.ID, idea.Status, idea.Classification, idea.AdminComment)
	if err != nil {
		return storeErr("update idea review", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("idea %s: %w", idea.ID, domain.ErrNotFound)
	}
	return nil
}

// AddHistory agrega una entrada al historial.
func (r *IdeaRepo) AddHistory(ctx context.Context, h *entity.IdeaHistory) error {
	query := `
		INSERT INTO idea_history (id, idea_id, changed_at, changed_by, change_type, notes)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, h.ID, h.IdeaID, h.ChangedAt, h.ChangedByID, h.ChangeType, h.Notes); err != nil {
		return storeErr("insert idea history", err)
	}
	return nil
}

// ListHistory entradas más recientes primero; a igual fecha, la última insertada primero.
func (r *IdeaRepo) ListHistory(ctx context.Context, ideaID string) ([]entity.IdeaHistory, error) {
	out := make([]entity.IdeaHistory, 0)
	if !validID(ideaID) {
		return out, nil
	}
	query := `
		SELECT h.id, h.idea_id, h.changed_at, h.changed_by,
		       CASE WHEN btrim(COALESCE(u.full_name, '')) = '' THEN COALESCE(u.user_name, '') ELSE u.full_name END,
		       h.change_type, h.notes
		FROM idea_history h
		LEFT JOIN users u ON u.id = h.changed_by
		WHERE h.idea_id = $1
		ORDER BY h.changed_at DESC, h.seq DESC`
	rows, err := r.q.Query(ctx, query, ideaID)
	if err != nil {
		return nil, storeErr("list idea history", err)
	}
	defer rows.Close()
	for rows.Next() {
		var h entity.IdeaHistory
		if err := rows.Scan(&h.ID, &h.IdeaID, &h.ChangedAt, &h.ChangedByID, &h.ChangedBy, &h.ChangeType, &h.Notes); err != nil {
			return nil, storeErr("scan idea history", err)
		}
		h.ChangedAt = h.ChangedAt.UTC()
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list idea history", err)
	}
	return out, nil
}

// Delete elimina la idea; el historial cae por ON DELETE CASCADE.
func (r *IdeaRepo) Delete(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM ideas WHERE id = $1`, id)
	if err != nil {
		return false, storeErr("delete idea", err)
	}
	return cmd.RowsAffected() > 0, nil
}
