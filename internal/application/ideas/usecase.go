// Package ideas contiene los casos de uso del ciclo de vida de una idea:
// alta por el empleado, revisión, carga manual, baja y lecturas.
package ideas

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jhoicas/Ideas-api/internal/application/access"
	"github.com/jhoicas/Ideas-api/internal/application/dto"
	"github.com/jhoicas/Ideas-api/internal/application/ports"
	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/jhoicas/Ideas-api/internal/domain/entity"
	"github.com/jhoicas/Ideas-api/internal/domain/identity"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
)

// IdeaUseCase aplica las reglas de negocio de ideas.
type IdeaUseCase struct {
	tx    ports.TxRunner
	ideas repository.IdeaRepository
	users repository.UserRepository
	now   func() time.Time
}

// NewIdeaUseCase construye el caso de uso.
func NewIdeaUseCase(tx ports.TxRunner, ideas repository.IdeaRepository, users repository.UserRepository) *IdeaUseCase {
	return &IdeaUseCase{tx: tx, ideas: ideas, users: users, now: time.Now}
}

// Create registra una idea del usuario con estatus Registrada y su primera entrada de historial.
func (uc *IdeaUseCase) Create(ctx context.Context, userID string, in dto.IdeaCreateRequest) (*dto.IdeaSummary, error) {
	desc, detail, err := validateText(in.Descripcion, in.Detalle)
	if err != nil {
		return nil, err
	}

	var idea *entity.Idea
	err = uc.tx.RunIdeas(ctx, func(
		ideas repository.IdeaRepository,
		users repository.UserRepository,
		_ repository.RoleRepository,
		employees repository.EmployeeRepository,
	) error {
		user, err := activeUser(ctx, users, userID)
		if err != nil {
			return err
		}
		code := ""
		if user.EmployeeCode != nil {
			code = *user.EmployeeCode
		}
		if code != "" {
			if err := upsertEmployee(ctx, employees, code, in.NombreCompleto, in.Email, in.Departamento); err != nil {
				return err
			}
		}

		now := uc.now().UTC()
		via := entity.ViaSistema
		notes := entity.NotesRegistroInicial
		idea = &entity.Idea{
			ID:           uuid.New().String(),
			CreatedAt:    now,
			OwnerID:      user.ID,
			EmployeeCode: code,
			Description:  desc,
			Detail:       detail,
			Status:       entity.StatusRegistrada,
			Via:          &via,
		}
		idea.History = []entity.IdeaHistory{{
			ID:          uuid.New().String(),
			IdeaID:      idea.ID,
			ChangedAt:   now,
			ChangedByID: user.ID,
			ChangeType:  entity.ChangeCreacion,
			Notes:       &notes,
		}}
		return ideas.Create(ctx, idea)
	})
	if err != nil {
		return nil, err
	}
	return toSummary(idea), nil
}

// ListMine ideas del usuario, más recientes primero.
func (uc *IdeaUseCase) ListMine(ctx context.Context, userID string) ([]dto.IdeaSummary, error) {
	list, err := uc.ideas.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IdeaSummary, 0, len(list))
	for _, i := range list {
		out = append(out, *toSummary(i))
	}
	return out, nil
}

// GetMine detalle de una idea propia. Ideas ajenas → ErrForbidden.
func (uc *IdeaUseCase) GetMine(ctx context.Context, userID, ideaID string) (*dto.IdeaDetail, error) {
	idea, err := uc.ideas.GetByID(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if idea == nil {
		return nil, fmt.Errorf("idea %s: %w", ideaID, domain.ErrNotFound)
	}
	if idea.OwnerID != userID {
		return nil, domain.ErrForbidden
	}
	owner, err := uc.users.GetByID(ctx, idea.OwnerID)
	if err != nil {
		return nil, err
	}
	var name *string
	if owner != nil {
		name = owner.FullName
	}
	return uc.detail(ctx, idea, name)
}

// ListPending ideas con estatus Registrada, más recientes primero.
func (uc *IdeaUseCase) ListPending(ctx context.Context) ([]dto.IdeaAdminSummary, error) {
	return uc.listForReview(ctx, true)
}

// ListReviewed ideas con cualquier estatus distinto de Registrada.
func (uc *IdeaUseCase) ListReviewed(ctx context.Context) ([]dto.IdeaAdminSummary, error) {
	return uc.listForReview(ctx, false)
}

func (uc *IdeaUseCase) listForReview(ctx context.Context, pending bool) ([]dto.IdeaAdminSummary, error) {
	rows, err := uc.ideas.ListForReview(ctx, pending)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IdeaAdminSummary, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		item := dto.IdeaAdminSummary{
			ID:             r.Idea.ID,
			CreatedAt:      r.Idea.CreatedAt,
			Descripcion:    r.Idea.Description,
			Status:         r.Idea.Status,
			CodigoEmpleado: r.Idea.EmployeeCode,
			NombreCompleto: listingName(r),
			Clasificacion:  r.Idea.Classification,
			Instancia:      r.Instance,
		}
		if r.HasEmployee {
			item.Email = optional(r.EmployeeEmail)
			item.Departamento = optional(r.Department)
		}
		out = append(out, item)
	}
	return out, nil
}

// GetForAdmin detalle de cualquier idea; el nombre prioriza el maestro de empleados.
func (uc *IdeaUseCase) GetForAdmin(ctx context.Context, ideaID string) (*dto.IdeaDetail, error) {
	row, err := uc.ideas.GetListing(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("idea %s: %w", ideaID, domain.ErrNotFound)
	}
	return uc.detail(ctx, &row.Idea, listingName(row))
}

// Review fija estatus, clasificación y comentario y agrega una entrada "Revisión".
func (uc *IdeaUseCase) Review(ctx context.Context, adminID, ideaID string, in dto.IdeaReviewRequest) error {
	status := strings.TrimSpace(in.Status)
	if status == "" {
		return fmt.Errorf("%w: el estatus es requerido", domain.ErrValidation)
	}
	if utf8.RuneCountInString(status) > entity.MaxStatusLen {
		return fmt.Errorf("%w: el estatus excede %d caracteres", domain.ErrValidation, entity.MaxStatusLen)
	}
	classification := identity.TrimTo(in.Clasificacion, entity.MaxClassificationLen)
	comment := identity.TrimTo(in.AdminComment, entity.MaxAdminCommentLen)

	return uc.tx.RunIdeas(ctx, func(
		ideas repository.IdeaRepository,
		users repository.UserRepository,
		_ repository.RoleRepository,
		_ repository.EmployeeRepository,
	) error {
		idea, err := ideas.GetByID(ctx, ideaID)
		if err != nil {
			return err
		}
		if idea == nil {
			return fmt.Errorf("idea %s: %w", ideaID, domain.ErrNotFound)
		}
		admin, err := activeUser(ctx, users, adminID)
		if err != nil {
			return err
		}

		idea.Status = status
		idea.Classification = classification
		idea.AdminComment = comment
		if err := ideas.UpdateReview(ctx, idea); err != nil {
			return err
		}
		return ideas.AddHistory(ctx, &entity.IdeaHistory{
			ID:          uuid.New().String(),
			IdeaID:      idea.ID,
			ChangedAt:   uc.now().UTC(),
			ChangedByID: admin.ID,
			ChangeType:  entity.ChangeRevision,
			Notes:       comment,
		})
	})
}

// CreateManual registra una idea ya revisada en nombre de un empleado.
// Dueño: el usuario derivado del correo (se crea con Ideador si no existe);
// sin correo, el usuario con ese código de empleado; si no hay, el administrador.
func (uc *IdeaUseCase) CreateManual(ctx context.Context, adminID string, in dto.IdeaManualRequest) (*dto.IdeaSummary, error) {
	code := identity.Truncate(in.CodigoEmpleado, entity.MaxEmployeeCodeLen)
	if code == "" {
		return nil, fmt.Errorf("%w: el código de empleado es requerido", domain.ErrValidation)
	}
	desc, detail, err := validateText(in.Descripcion, in.Detalle)
	if err != nil {
		return nil, err
	}
	email := strings.TrimSpace(in.Email)
	targetUserName := ""
	if email != "" {
		targetUserName = identity.NormalizeLogin(email)
		if targetUserName == "" {
			return nil, fmt.Errorf("%w: el correo no es válido para generar el usuario", domain.ErrValidation)
		}
	}

	var idea *entity.Idea
	err = uc.tx.RunIdeas(ctx, func(
		ideas repository.IdeaRepository,
		users repository.UserRepository,
		roles repository.RoleRepository,
		employees repository.EmployeeRepository,
	) error {
		admin, err := activeUser(ctx, users, adminID)
		if err != nil {
			return err
		}
		if err := upsertEmployee(ctx, employees, code, in.NombreCompleto, email, in.Departamento); err != nil {
			return err
		}

		now := uc.now().UTC()
		owner, err := uc.resolveOwner(ctx, users, roles, targetUserName, code, in, now)
		if err != nil {
			return err
		}
		if owner == nil {
			owner = admin
		}

		idea = &entity.Idea{
			ID:             uuid.New().String(),
			CreatedAt:      now,
			OwnerID:        owner.ID,
			EmployeeCode:   code,
			Description:    desc,
			Detail:         detail,
			Status:         entity.StatusRevisada,
			Classification: orDefault(identity.TrimTo(in.Clasificacion, entity.MaxClassificationLen), entity.DefaultManualClassification),
			Via:            orDefault(identity.TrimTo(in.Via, entity.MaxViaLen), entity.ViaManual),
			AdminComment:   orDefault(identity.TrimTo(in.AdminComment, entity.MaxAdminCommentLen), entity.DefaultManualComment),
		}
		idea.History = []entity.IdeaHistory{{
			ID:          uuid.New().String(),
			IdeaID:      idea.ID,
			ChangedAt:   now,
			ChangedByID: admin.ID,
			ChangeType:  entity.ChangeManualAdmin,
			Notes:       idea.AdminComment,
		}}
		return ideas.Create(ctx, idea)
	})
	if err != nil {
		return nil, err
	}
	return toSummary(idea), nil
}

func (uc *IdeaUseCase) resolveOwner(
	ctx context.Context,
	users repository.UserRepository,
	roles repository.RoleRepository,
	userName, code string,
	in dto.IdeaManualRequest,
	now time.Time,
) (*entity.User, error) {
	instance := identity.TrimTo(in.Instancia, entity.MaxInstanceLen)
	if userName == "" {
		return users.GetByEmployeeCode(ctx, code)
	}

	owner, err := users.LockByUserName(ctx, userName)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		owner = &entity.User{
			ID:           uuid.New().String(),
			UserName:     userName,
			EmployeeCode: &code,
			FullName:     identity.TrimTo(in.NombreCompleto, entity.MaxFullNameLen),
			Instance:     instance,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := users.Create(ctx, owner); err != nil {
			return nil, err
		}
		if err := access.Grant(ctx, users, roles, owner, entity.RoleIdeador); err != nil {
			return nil, err
		}
		return owner, nil
	}
	if instance != nil {
		owner.Instance = instance
		owner.UpdatedAt = now
		if err := users.UpdateInstance(ctx, owner); err != nil {
			return nil, err
		}
	}
	return owner, nil
}

// Delete elimina la idea y su historial.
func (uc *IdeaUseCase) Delete(ctx context.Context, ideaID string) error {
	ok, err := uc.ideas.Delete(ctx, ideaID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("idea %s: %w", ideaID, domain.ErrNotFound)
	}
	return nil
}

func (uc *IdeaUseCase) detail(ctx context.Context, idea *entity.Idea, name *string) (*dto.IdeaDetail, error) {
	history, err := uc.ideas.ListHistory(ctx, idea.ID)
	if err != nil {
		return nil, err
	}
	entries := make([]dto.IdeaHistoryEntry, 0, len(history))
	for _, h := range history {
		entries = append(entries, dto.IdeaHistoryEntry{
			ChangedAt:  h.ChangedAt,
			ChangedBy:  h.ChangedBy,
			ChangeType: h.ChangeType,
			Notes:      h.Notes,
		})
	}
	return &dto.IdeaDetail{
		ID:             idea.ID,
		CreatedAt:      idea.CreatedAt,
		Descripcion:    idea.Description,
		Detalle:        idea.Detail,
		Status:         idea.Status,
		Clasificacion:  idea.Classification,
		Via:            idea.Via,
		AdminComment:   idea.AdminComment,
		CodigoEmpleado: idea.EmployeeCode,
		NombreCompleto: name,
		History:        entries,
	}, nil
}

func validateText(description, detail string) (string, string, error) {
	d := strings.TrimSpace(description)
	t := strings.TrimSpace(detail)
	if d == "" || t == "" {
		return "", "", fmt.Errorf("%w: descripción y detalle son requeridos", domain.ErrValidation)
	}
	if utf8.RuneCountInString(d) > entity.MaxDescriptionLen || utf8.RuneCountInString(t) > entity.MaxDetailLen {
		return "", "", fmt.Errorf("%w: descripción o detalle exceden el límite permitido", domain.ErrValidation)
	}
	return d, t, nil
}

func activeUser(ctx context.Context, users repository.UserRepository, id string) (*entity.User, error) {
	user, err := users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}
	return user, nil
}

// upsertEmployee crea el empleado o completa solo sus campos vacíos.
func upsertEmployee(ctx context.Context, employees repository.EmployeeRepository, code, fullName, email, department string) error {
	first, last1, last2 := entity.SplitFullName(fullName)
	incoming := entity.Employee{
		Code:       code,
		FirstName:  identity.Truncate(first, entity.MaxEmployeeNamePartLen),
		LastName1:  identity.Truncate(last1, entity.MaxEmployeeNamePartLen),
		LastName2:  identity.Truncate(last2, entity.MaxEmployeeNamePartLen),
		Email:      identity.Truncate(email, entity.MaxEmployeeEmailLen),
		Department: identity.Truncate(department, entity.MaxDepartmentLen),
		Status:     entity.EmployeeStatusActive,
	}
	existing, err := employees.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if existing == nil {
		return employees.Create(ctx, &incoming)
	}
	if existing.FillBlanks(incoming) {
		return employees.Update(ctx, existing)
	}
	return nil
}

func listingName(r *repository.IdeaListing) *string {
	if r.HasEmployee {
		if n := strings.TrimSpace(r.EmployeeName); n != "" {
			return &n
		}
	}
	return r.OwnerDisplayName
}

func toSummary(i *entity.Idea) *dto.IdeaSummary {
	return &dto.IdeaSummary{
		ID:          i.ID,
		CreatedAt:   i.CreatedAt,
		Descripcion: i.Description,
		Status:      i.Status,
	}
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func orDefault(v *string, def string) *string {
	if v == nil {
		return &def
	}
	return v
}
