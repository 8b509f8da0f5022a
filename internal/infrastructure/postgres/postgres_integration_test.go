//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Ideas-api/internal/application/access"
	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/jhoicas/Ideas-api/internal/domain/entity"
	"github.com/jhoicas/Ideas-api/internal/domain/report"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// Ejecutar con: go test -tags integration ./internal/infrastructure/postgres/...
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("requiere Docker")
	}
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("ideas_test"),
		tcPostgres.WithUsername("ideas"),
		tcPostgres.WithPassword("ideas"),
		tcPostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("no se pudo iniciar PostgreSQL: %v", err)
	}
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	n, err := Migrate(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = Migrate(ctx, pool)
	require.NoError(t, err)
	assert.Zero(t, n)
	return pool
}

func strPtr(s string) *string { return &s }

func TestPostgresAdapters(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	tx := NewTxRunner(pool)
	users := NewUserRepository(pool)
	ideas := NewIdeaRepository(pool)
	employees := NewEmployeeRepository(pool)
	reports := NewReportRepository(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	adminID, anaID := uuid.New().String(), uuid.New().String()
	err := tx.RunIdentity(ctx, func(u repository.UserRepository, r repository.RoleRepository) error {
		admin := &entity.User{ID: adminID, UserName: "jefa", FullName: strPtr("La Jefa"), IsActive: true, CreatedAt: now, UpdatedAt: now}
		ana := &entity.User{ID: anaID, UserName: "ana", EmployeeCode: strPtr("E1"), Instance: strPtr("Norte"), IsActive: true, CreatedAt: now, UpdatedAt: now}
		for _, usr := range []*entity.User{admin, ana} {
			if err := u.Create(ctx, usr); err != nil {
				return err
			}
			if err := access.Grant(ctx, u, r, usr, entity.RoleIdeador); err != nil {
				return err
			}
		}
		return access.Grant(ctx, u, r, admin, entity.RoleAdmin)
	})
	require.NoError(t, err)

	t.Run("usuarios y roles", func(t *testing.T) {
		got, err := users.GetByUserName(ctx, "jefa")
		require.NoError(t, err)
		assert.Equal(t, []string{entity.RoleAdmin, entity.RoleIdeador}, got.Roles)

		err = users.Create(ctx, &entity.User{ID: uuid.New().String(), UserName: "jefa", CreatedAt: now, UpdatedAt: now})
		assert.ErrorIs(t, err, domain.ErrConflict)

		missing, err := users.GetByID(ctx, "no-es-uuid")
		require.NoError(t, err)
		assert.Nil(t, missing)

		byCode, err := users.GetByEmployeeCode(ctx, "E1")
		require.NoError(t, err)
		assert.Equal(t, anaID, byCode.ID)
	})

	t.Run("actualizaciones parciales", func(t *testing.T) {
		id := uuid.New().String()
		require.NoError(t, users.Create(ctx, &entity.User{ID: id, UserName: "temporal", IsActive: true, CreatedAt: now, UpdatedAt: now}))

		stale, err := users.GetByUserName(ctx, "temporal")
		require.NoError(t, err)
		off := *stale
		off.IsActive = false
		require.NoError(t, users.UpdateActive(ctx, &off))

		stale.Instance = strPtr("Sur")
		stale.FullName = strPtr("Temporal")
		require.NoError(t, users.UpdateInstance(ctx, stale))
		require.NoError(t, users.UpdateProfile(ctx, stale))

		got, err := users.GetByUserName(ctx, "temporal")
		require.NoError(t, err)
		assert.False(t, got.IsActive)
		assert.Equal(t, "Sur", *got.Instance)
		assert.Equal(t, "Temporal", *got.FullName)

		err = tx.RunIdentity(ctx, func(u repository.UserRepository, _ repository.RoleRepository) error {
			locked, err := u.LockByUserName(ctx, "temporal")
			require.NoError(t, err)
			assert.Equal(t, id, locked.ID)
			none, err := u.LockByUserName(ctx, "nadie")
			require.NoError(t, err)
			assert.Nil(t, none)
			return nil
		})
		require.NoError(t, err)
		_, err = pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		require.NoError(t, err)
	})

	t.Run("último administrador protegido", func(t *testing.T) {
		err := tx.RunIdentity(ctx, func(u repository.UserRepository, r repository.RoleRepository) error {
			admin, err := u.GetByID(ctx, adminID)
			if err != nil {
				return err
			}
			return access.Revoke(ctx, u, r, admin, entity.RoleAdmin)
		})
		assert.ErrorIs(t, err, domain.ErrLastAdminProtected)
	})

	t.Run("empleados", func(t *testing.T) {
		n, err := employees.CreateBatch(ctx, []entity.Employee{
			{Code: "E1", FirstName: "Ana", LastName1: "Ruiz", Department: "Ventas"},
			{Code: "E2", FirstName: "Luis"},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		e, err := employees.GetByCode(ctx, "E2")
		require.NoError(t, err)
		assert.Equal(t, entity.EmployeeStatusActive, e.Status)
	})

	ideaID := uuid.New().String()
	t.Run("ideas e historial", func(t *testing.T) {
		err := tx.RunIdeas(ctx, func(i repository.IdeaRepository, _ repository.UserRepository, _ repository.RoleRepository, _ repository.EmployeeRepository) error {
			return i.Create(ctx, &entity.Idea{
				ID: ideaID, CreatedAt: now, OwnerID: anaID, EmployeeCode: "E1",
				Description: "d", Detail: "x", Status: entity.StatusRegistrada, Via: strPtr(entity.ViaSistema),
				History: []entity.IdeaHistory{{ID: uuid.New().String(), ChangedAt: now, ChangedByID: anaID, ChangeType: entity.ChangeCreacion}},
			})
		})
		require.NoError(t, err)
		require.NoError(t, ideas.AddHistory(ctx, &entity.IdeaHistory{ID: uuid.New().String(), IdeaID: ideaID, ChangedAt: now, ChangedByID: adminID, ChangeType: entity.ChangeRevision}))

		h, err := ideas.ListHistory(ctx, ideaID)
		require.NoError(t, err)
		require.Len(t, h, 2)
		assert.Equal(t, entity.ChangeRevision, h[0].ChangeType)
		assert.Equal(t, "La Jefa", h[0].ChangedBy)
		assert.Equal(t, "ana", h[1].ChangedBy)

		l, err := ideas.GetListing(ctx, ideaID)
		require.NoError(t, err)
		assert.True(t, l.HasEmployee)
		assert.Equal(t, "Ana Ruiz", l.EmployeeName)
		assert.Equal(t, "Norte", *l.Instance)
	})

	t.Run("tablero", func(t *testing.T) {
		require.NoError(t, ideas.Create(ctx, &entity.Idea{
			ID: uuid.New().String(), CreatedAt: now, OwnerID: adminID, EmployeeCode: "E9",
			Description: "d", Detail: "x", Status: entity.StatusRevisada, Classification: strPtr(" "),
		}))

		c, err := reports.CountIdeas(ctx)
		require.NoError(t, err)
		assert.Equal(t, repository.IdeaCounts{Total: 2, Pending: 1, Reviewed: 1}, c)

		groups, err := reports.CountByDimension(ctx, report.DimensionClassification)
		require.NoError(t, err)
		assert.Equal(t, []report.LabelCount{{Label: report.LabelSinClasificar, Count: 2}}, groups)

		groups, err = reports.CountByDimension(ctx, report.DimensionDepartment)
		require.NoError(t, err)
		assert.ElementsMatch(t, []report.LabelCount{{Label: "Ventas", Count: 1}, {Label: report.LabelSinDepartamento, Count: 1}}, groups)

		f := report.NewTimelineFilter(now, report.TimelineQuery{Vias: []string{"sin vía"}})
		days, err := reports.CountByDay(ctx, f)
		require.NoError(t, err)
		require.Len(t, days, 1)
		assert.Equal(t, report.Day(now), days[0].Date)
		assert.Equal(t, 1, days[0].Count)

		f = report.NewTimelineFilter(now, report.TimelineQuery{Departments: []string{"Planta"}})
		days, err = reports.CountByDay(ctx, f)
		require.NoError(t, err)
		assert.Empty(t, days)

		for _, tc := range []struct {
			q    report.TimelineQuery
			want int
		}{
			{report.TimelineQuery{Instances: []string{"sin instancia"}}, 1},
			{report.TimelineQuery{Instances: []string{"Norte", "Sin Instancia"}}, 2},
			{report.TimelineQuery{Departments: []string{"SIN DEPARTAMENTO"}}, 1},
		} {
			days, err = reports.CountByDay(ctx, report.NewTimelineFilter(now, tc.q))
			require.NoError(t, err)
			require.Len(t, days, 1)
			assert.Equal(t, tc.want, days[0].Count, "%+v", tc.q)
		}
	})

	t.Run("borrado en cascada", func(t *testing.T) {
		ok, err := ideas.Delete(ctx, ideaID)
		require.NoError(t, err)
		assert.True(t, ok)
		h, err := ideas.ListHistory(ctx, ideaID)
		require.NoError(t, err)
		assert.Empty(t, h)
	})
}
