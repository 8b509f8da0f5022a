package usecase

import (
	"context"
	"testing"

	"github.com/jhoicas/Ideas-api/internal/application/access"
	"github.com/jhoicas/Ideas-api/internal/application/dto"
	"github.com/jhoicas/Ideas-api/internal/application/ports"
	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/jhoicas/Ideas-api/internal/domain/entity"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
	"github.com/jhoicas/Ideas-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDirectory struct {
	attrs map[string]*ports.DirectoryAttributes
	err   error
}

func (s *stubDirectory) Authenticate(ctx context.Context, userName, password string) (bool, error) {
	return false, s.err
}

func (s *stubDirectory) FetchAttributes(ctx context.Context, userName string) (*ports.DirectoryAttributes, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.attrs[userName], nil
}

func addUser(t *testing.T, store *memory.Store, id, userName string, roles ...string) {
	t.Helper()
	ctx := context.Background()
	err := store.RunIdentity(ctx, func(users repository.UserRepository, rr repository.RoleRepository) error {
		u := &entity.User{ID: id, UserName: userName, IsActive: true}
		if err := users.Create(ctx, u); err != nil {
			return err
		}
		for _, r := range roles {
			if err := access.Grant(ctx, users, rr, u, r); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func getUser(t *testing.T, store *memory.Store, userName string) *entity.User {
	t.Helper()
	u, err := store.Users().GetByUserName(context.Background(), userName)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

func newUserUseCase(store *memory.Store, dir ports.DirectoryGateway) *UserUseCase {
	return NewUserUseCase(store, store.Users(), dir)
}

func TestUserCreate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	dir := &stubDirectory{attrs: map[string]*ports.DirectoryAttributes{
		"Maria.Lopez@corp.local": {EmployeeCode: " E77 ", FullName: "María López"},
	}}
	uc := newUserUseCase(store, dir)

	out, err := uc.Create(ctx, dto.CreateUserRequest{UserName: " Maria.Lopez@corp.local ", Instancia: "Centro", Role: "gestor"})
	require.NoError(t, err)
	assert.Equal(t, "maria.lopez", out.UserName)
	assert.Equal(t, "E77", *out.CodigoEmpleado)
	assert.Equal(t, "Centro", *out.Instancia)
	assert.Equal(t, []string{entity.RoleGestor}, out.Roles)

	_, err = uc.Create(ctx, dto.CreateUserRequest{UserName: "MARIA.LOPEZ"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Create(ctx, dto.CreateUserRequest{UserName: "fantasma"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Create(ctx, dto.CreateUserRequest{UserName: "otro", Role: "Root"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	dir.err = domain.ErrDirectoryUnavailable
	_, err = uc.Create(ctx, dto.CreateUserRequest{UserName: "otro"})
	assert.ErrorIs(t, err, domain.ErrDirectoryUnavailable)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSetRoles(t *testing.T) {
	ctx := context.Background()

	t.Run("reemplaza roles y descarta desconocidos", func(t *testing.T) {
		store := memory.NewStore()
		addUser(t, store, "u1", "ana", entity.RoleIdeador)
		uc := newUserUseCase(store, &stubDirectory{})

		require.NoError(t, uc.SetRoles(ctx, "Ana", []string{"gestor", "Gestor", "Superusuario", " admin "}))
		assert.ElementsMatch(t, []string{entity.RoleAdmin, entity.RoleGestor}, getUser(t, store, "ana").Roles)

		err := uc.SetRoles(ctx, "nadie", nil)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("último administrador protegido", func(t *testing.T) {
		store := memory.NewStore()
		addUser(t, store, "u1", "jefa", entity.RoleAdmin, entity.RoleIdeador)
		uc := newUserUseCase(store, &stubDirectory{})

		err := uc.SetRoles(ctx, "jefa", []string{entity.RoleIdeador})
		assert.ErrorIs(t, err, domain.ErrLastAdminProtected)
		assert.ElementsMatch(t, []string{entity.RoleAdmin, entity.RoleIdeador}, getUser(t, store, "jefa").Roles)
	})

	t.Run("con dos administradores se permite", func(t *testing.T) {
		store := memory.NewStore()
		addUser(t, store, "u1", "jefa", entity.RoleAdmin)
		addUser(t, store, "u2", "jefe", entity.RoleAdmin)
		uc := newUserUseCase(store, &stubDirectory{})

		require.NoError(t, uc.SetRoles(ctx, "jefa", []string{entity.RoleIdeador}))
		assert.Equal(t, []string{entity.RoleIdeador}, getUser(t, store, "jefa").Roles)

		err := uc.SetRoles(ctx, "jefe", nil)
		assert.ErrorIs(t, err, domain.ErrLastAdminProtected)
	})

	t.Run("un administrador inactivo no cuenta", func(t *testing.T) {
		store := memory.NewStore()
		addUser(t, store, "u1", "jefa", entity.RoleAdmin)
		addUser(t, store, "u2", "jefe", entity.RoleAdmin)
		uc := newUserUseCase(store, &stubDirectory{})
		require.NoError(t, uc.SetActive(ctx, "jefe", false))

		err := uc.SetRoles(ctx, "jefa", nil)
		assert.ErrorIs(t, err, domain.ErrLastAdminProtected)
		require.NoError(t, uc.SetRoles(ctx, "jefe", nil))
	})
}

func TestDeleteAndSetActive(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	addUser(t, store, "u1", "jefa", entity.RoleAdmin)
	addUser(t, store, "u2", "ana", entity.RoleIdeador, entity.RoleGestor)
	uc := newUserUseCase(store, &stubDirectory{})

	assert.ErrorIs(t, uc.Delete(ctx, "jefa"), domain.ErrLastAdminProtected)
	assert.ErrorIs(t, uc.SetActive(ctx, "jefa", false), domain.ErrLastAdminProtected)
	assert.True(t, getUser(t, store, "jefa").IsActive)

	require.NoError(t, uc.Delete(ctx, "ana"))
	ana := getUser(t, store, "ana")
	assert.False(t, ana.IsActive)
	assert.Empty(t, ana.Roles)

	require.NoError(t, uc.SetActive(ctx, "ana", true))
	assert.True(t, getUser(t, store, "ana").IsActive)

	assert.ErrorIs(t, uc.Delete(ctx, "nadie"), domain.ErrUserNotFound)
}

func TestSetInstance(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	addUser(t, store, "u1", "ana")
	uc := newUserUseCase(store, &stubDirectory{})

	require.NoError(t, uc.SetInstance(ctx, "ana", "  Norte "))
	assert.Equal(t, "Norte", *getUser(t, store, "ana").Instance)

	require.NoError(t, uc.SetInstance(ctx, "ana", "  "))
	assert.Nil(t, getUser(t, store, "ana").Instance)
}

// staleUsers devuelve una copia fija del usuario en las lecturas, como si otra
// transacción lo hubiera modificado después de leerlo.
type staleUsers struct {
	repository.UserRepository
	snapshot entity.User
}

func (s *staleUsers) GetByUserName(ctx context.Context, userName string) (*entity.User, error) {
	u := s.snapshot
	return &u, nil
}

func (s *staleUsers) LockByUserName(ctx context.Context, userName string) (*entity.User, error) {
	return s.GetByUserName(ctx, userName)
}

type staleTx struct {
	*memory.Store
	snapshot entity.User
}

func (s *staleTx) RunIdentity(ctx context.Context, fn func(repository.UserRepository, repository.RoleRepository) error) error {
	return s.Store.RunIdentity(ctx, func(users repository.UserRepository, roles repository.RoleRepository) error {
		return fn(&staleUsers{UserRepository: users, snapshot: s.snapshot}, roles)
	})
}

func TestSetInstance_DoesNotReactivateDeletedUser(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	addUser(t, store, "u1", "jefa", entity.RoleAdmin)
	addUser(t, store, "u2", "ana", entity.RoleIdeador)
	before := *getUser(t, store, "ana")

	require.NoError(t, newUserUseCase(store, &stubDirectory{}).Delete(ctx, "ana"))

	tx := &staleTx{Store: store, snapshot: before}
	uc := NewUserUseCase(tx, store.Users(), &stubDirectory{})
	require.NoError(t, uc.SetInstance(ctx, "ana", "Norte"))

	ana := getUser(t, store, "ana")
	assert.False(t, ana.IsActive)
	assert.Empty(t, ana.Roles)
	require.NotNil(t, ana.Instance)
	assert.Equal(t, "Norte", *ana.Instance)
}
