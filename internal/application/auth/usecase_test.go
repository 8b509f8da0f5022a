package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/jhoicas/Ideas-api/internal/application/dto"
	"github.com/jhoicas/Ideas-api/internal/application/ports"
	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/jhoicas/Ideas-api/internal/domain/entity"
	"github.com/jhoicas/Ideas-api/internal/infrastructure/memory"
	"github.com/jhoicas/Ideas-api/internal/infrastructure/session"
	"github.com/jhoicas/Ideas-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	passwords map[string]string
	attrs     map[string]*ports.DirectoryAttributes
	err       error
}

func (f *fakeDirectory) Authenticate(ctx context.Context, userName, password string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.passwords[userName] == password, nil
}

func (f *fakeDirectory) FetchAttributes(ctx context.Context, userName string) (*ports.DirectoryAttributes, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.attrs[userName], nil
}

func newTestUseCase(store *memory.Store, dir ports.DirectoryGateway, bootstrap BootstrapConfig) *AuthUseCase {
	return NewAuthUseCase(store, store.Users(), store.Employees(), dir, session.NewMemoryStore(),
		JWTConfig{Secret: "secreto", ExpMinutes: 60, Issuer: "ideas-api"}, bootstrap)
}

func countMemberships(t *testing.T, store *memory.Store, userName, role string) int {
	t.Helper()
	u, err := store.Users().GetByUserName(context.Background(), userName)
	require.NoError(t, err)
	require.NotNil(t, u)
	n := 0
	for _, r := range u.Roles {
		if r == role {
			n++
		}
	}
	return n
}

func TestReconcile_SecondNameWinsAndIdeadorOnce(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := newTestUseCase(store, &fakeDirectory{}, BootstrapConfig{})

	first, err := uc.Reconcile(ctx, "jdoe", ports.DirectoryAttributes{EmployeeCode: "E1", FullName: "Juan Doe"})
	require.NoError(t, err)
	second, err := uc.Reconcile(ctx, "jdoe", ports.DirectoryAttributes{EmployeeCode: "E1", FullName: "Juan A. Doe"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	stored, err := store.Users().GetByUserName(ctx, "jdoe")
	require.NoError(t, err)
	require.NotNil(t, stored.FullName)
	assert.Equal(t, "Juan A. Doe", *stored.FullName)
	require.NotNil(t, stored.LastLoginAt)
	assert.Equal(t, 1, countMemberships(t, store, "jdoe", entity.RoleIdeador))
	assert.Equal(t, []string{entity.RoleIdeador}, second.Roles)
}

func TestReconcile_LoginNormalization(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := newTestUseCase(store, &fakeDirectory{}, BootstrapConfig{})

	a, err := uc.Reconcile(ctx, "jdoe@corp.local", ports.DirectoryAttributes{EmployeeCode: "E1"})
	require.NoError(t, err)
	b, err := uc.Reconcile(ctx, "  JDoe ", ports.DirectoryAttributes{EmployeeCode: "E1"})
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, "jdoe", b.UserName)
	users, err := store.Users().List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestReconcile_BlankAttributesAndTruncation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := newTestUseCase(store, &fakeDirectory{}, BootstrapConfig{})

	longCode := "123456789012345678901234"
	u, err := uc.Reconcile(ctx, "ana", ports.DirectoryAttributes{EmployeeCode: longCode, FullName: "   "})
	require.NoError(t, err)
	require.NotNil(t, u.EmployeeCode)
	assert.Len(t, *u.EmployeeCode, entity.MaxEmployeeCodeLen)
	assert.Nil(t, u.FullName)
}

func TestReconcile_InactiveUser(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: "u1", UserName: "jdoe", IsActive: false}))
	uc := newTestUseCase(store, &fakeDirectory{}, BootstrapConfig{})

	_, err := uc.Reconcile(ctx, "jdoe", ports.DirectoryAttributes{EmployeeCode: "E1"})
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)
}

func TestReconcile_BootstrapAdmins(t *testing.T) {
	ctx := context.Background()

	t.Run("habilitado", func(t *testing.T) {
		store := memory.NewStore()
		uc := newTestUseCase(store, &fakeDirectory{}, BootstrapConfig{Enabled: true, Admins: []string{"Admin.User@corp.local"}})
		u, err := uc.Reconcile(ctx, "admin.user", ports.DirectoryAttributes{EmployeeCode: "E9"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{entity.RoleIdeador, entity.RoleAdmin}, u.Roles)
	})

	t.Run("deshabilitado", func(t *testing.T) {
		store := memory.NewStore()
		uc := newTestUseCase(store, &fakeDirectory{}, BootstrapConfig{Enabled: false, Admins: []string{"admin.user"}})
		u, err := uc.Reconcile(ctx, "admin.user", ports.DirectoryAttributes{EmployeeCode: "E9"})
		require.NoError(t, err)
		assert.Equal(t, []string{entity.RoleIdeador}, u.Roles)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Employees().Create(ctx, &entity.Employee{
		Code: "E1", FirstName: "Juan", LastName1: "Pérez", Email: "jperez@corp.local", Department: "TI",
	}))
	dir := &fakeDirectory{
		passwords: map[string]string{"jperez@corp.local": "clave"},
		attrs:     map[string]*ports.DirectoryAttributes{"jperez@corp.local": {EmployeeCode: "E1", FullName: "JUAN PEREZ"}},
	}
	uc := newTestUseCase(store, dir, BootstrapConfig{})

	resp, err := uc.Login(ctx, dto.LoginRequest{UserName: " jperez@corp.local ", Password: "clave"})
	require.NoError(t, err)
	assert.Equal(t, "jperez", resp.User.UserName)
	require.NotNil(t, resp.User.NombreCompleto)
	assert.Equal(t, "Juan Pérez", *resp.User.NombreCompleto)
	assert.True(t, resp.User.HasEmployee)
	require.NotNil(t, resp.User.Departamento)
	assert.Equal(t, "TI", *resp.User.Departamento)

	claims, err := jwt.Parse("secreto", resp.Token)
	require.NoError(t, err)
	assert.True(t, claims.HasRole(entity.RoleIdeador))

	ok, err := uc.sessions.Exists(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, uc.Logout(ctx, claims.ID))
	ok, err = uc.sessions.Exists(ctx, claims.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogin_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("credenciales inválidas", func(t *testing.T) {
		uc := newTestUseCase(memory.NewStore(), &fakeDirectory{passwords: map[string]string{"jdoe": "ok"}}, BootstrapConfig{})
		_, err := uc.Login(ctx, dto.LoginRequest{UserName: "jdoe", Password: "mal"})
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("directorio caído", func(t *testing.T) {
		dir := &fakeDirectory{err: fmt.Errorf("x: %w", domain.ErrDirectoryUnavailable)}
		uc := newTestUseCase(memory.NewStore(), dir, BootstrapConfig{})
		_, err := uc.Login(ctx, dto.LoginRequest{UserName: "jdoe", Password: "ok"})
		assert.ErrorIs(t, err, domain.ErrDirectoryUnavailable)
		assert.NotErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("sin atributos", func(t *testing.T) {
		uc := newTestUseCase(memory.NewStore(), &fakeDirectory{passwords: map[string]string{"jdoe": "ok"}}, BootstrapConfig{})
		_, err := uc.Login(ctx, dto.LoginRequest{UserName: "jdoe", Password: "ok"})
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("campos vacíos", func(t *testing.T) {
		uc := newTestUseCase(memory.NewStore(), &fakeDirectory{}, BootstrapConfig{})
		_, err := uc.Login(ctx, dto.LoginRequest{UserName: "  ", Password: "x"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := newTestUseCase(store, &fakeDirectory{}, BootstrapConfig{})
	u, err := uc.Reconcile(ctx, "ana", ports.DirectoryAttributes{EmployeeCode: "E7", FullName: "Ana Ruiz"})
	require.NoError(t, err)

	info, err := uc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", info.UserName)
	assert.False(t, info.HasEmployee)
	require.NotNil(t, info.NombreCompleto)
	assert.Equal(t, "Ana Ruiz", *info.NombreCompleto)

	_, err = uc.Me(ctx, "desconocido")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
