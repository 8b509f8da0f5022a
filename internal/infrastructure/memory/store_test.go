package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/jhoicas/Ideas-api/internal/domain/entity"
	"github.com/jhoicas/Ideas-api/internal/domain/report"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRunIdentity_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	boom := errors.New("boom")

	err := s.RunIdentity(ctx, func(users repository.UserRepository, roles repository.RoleRepository) error {
		require.NoError(t, users.Create(ctx, &entity.User{ID: "u1", UserName: "jdoe", IsActive: true}))
		_, err := roles.EnsureByName(ctx, entity.RoleIdeador)
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	u, err := s.Users().GetByUserName(ctx, "jdoe")
	require.NoError(t, err)
	assert.Nil(t, u)
	r, err := s.Roles().GetByName(ctx, entity.RoleIdeador)
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestUserRepo_DuplicateLoginIsConflict(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()
	require.NoError(t, users.Create(ctx, &entity.User{ID: "u1", UserName: "jdoe"}))
	err := users.Create(ctx, &entity.User{ID: "u2", UserName: "jdoe"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRoleRepo_EnsureByNameIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a, err := s.Roles().EnsureByName(ctx, entity.RoleAdmin)
	require.NoError(t, err)
	b, err := s.Roles().EnsureByName(ctx, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u1", UserName: "jdoe", IsActive: true}))
	require.NoError(t, s.Users().AddRole(ctx, "u1", a.ID))
	require.NoError(t, s.Users().AddRole(ctx, "u1", a.ID))
	u, err := s.Users().GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleAdmin}, u.Roles)

	n, err := s.Users().CountRoleHolders(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestReportRepo_LeftJoinFallbacks(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now().UTC()

	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u1", UserName: "ana", IsActive: true, Instance: strPtr("Norte")}))
	require.NoError(t, s.Employees().Create(ctx, &entity.Employee{Code: "E1", Department: "TI"}))
	ideas := s.Ideas()
	require.NoError(t, ideas.Create(ctx, &entity.Idea{ID: "i1", OwnerID: "u1", EmployeeCode: "E1", Status: entity.StatusRegistrada, CreatedAt: now}))
	// dueño inexistente y código sin empleado
	require.NoError(t, ideas.Create(ctx, &entity.Idea{ID: "i2", OwnerID: "ghost", EmployeeCode: "X", Status: entity.StatusRevisada, CreatedAt: now}))

	reports := s.Reports()
	byInstance, err := reports.CountByDimension(ctx, report.DimensionInstance)
	require.NoError(t, err)
	assert.ElementsMatch(t, []report.LabelCount{{Label: "Norte", Count: 1}, {Label: report.LabelSinInstancia, Count: 1}}, byInstance)

	byDept, err := reports.CountByDimension(ctx, report.DimensionDepartment)
	require.NoError(t, err)
	assert.ElementsMatch(t, []report.LabelCount{{Label: "TI", Count: 1}, {Label: report.LabelSinDepartamento, Count: 1}}, byDept)

	counts, err := reports.CountIdeas(ctx)
	require.NoError(t, err)
	assert.Equal(t, repository.IdeaCounts{Total: 2, Pending: 1, Reviewed: 1}, counts)
}

func TestIdeaRepo_DeleteRemovesHistory(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	ideas := s.Ideas()
	require.NoError(t, ideas.Create(ctx, &entity.Idea{
		ID: "i1", Status: entity.StatusRegistrada,
		History: []entity.IdeaHistory{{ID: "h1", ChangeType: entity.ChangeCreacion}},
	}))

	ok, err := ideas.Delete(ctx, "i1")
	require.NoError(t, err)
	assert.True(t, ok)

	h, err := ideas.ListHistory(ctx, "i1")
	require.NoError(t, err)
	assert.Empty(t, h)

	ok, err = ideas.Delete(ctx, "i1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRunReport_BlocksWritersUntilDone(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u1", UserName: "jdoe", IsActive: true}))

	done := make(chan error, 1)
	err := s.RunReport(ctx, func(reports repository.ReportRepository) error {
		go func() {
			done <- s.Ideas().Create(ctx, &entity.Idea{ID: "i1", OwnerID: "u1", EmployeeCode: "E1", Description: "d", Detail: "x", Status: entity.StatusRegistrada})
		}()
		time.Sleep(20 * time.Millisecond)
		c, err := reports.CountIdeas(ctx)
		require.NoError(t, err)
		assert.Zero(t, c.Total)
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, <-done)

	c, err := s.Reports().CountIdeas(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Total)
}

func TestUserRepo_NarrowUpdatesLeaveOtherColumns(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()
	require.NoError(t, users.Create(ctx, &entity.User{ID: "u1", UserName: "jdoe", IsActive: true}))

	stale, err := users.LockByUserName(ctx, "jdoe")
	require.NoError(t, err)
	off := *stale
	off.IsActive = false
	require.NoError(t, users.UpdateActive(ctx, &off))

	stale.Instance = strPtr("Sur")
	stale.FullName = strPtr("J. Doe")
	require.NoError(t, users.UpdateInstance(ctx, stale))
	require.NoError(t, users.UpdateProfile(ctx, stale))

	got, err := users.GetByUserName(ctx, "jdoe")
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, "Sur", *got.Instance)
	assert.Equal(t, "J. Doe", *got.FullName)

	err = users.UpdateInstance(ctx, &entity.User{ID: "nadie"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
