package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ideas-api/internal/application/access"
	"github.com/jhoicas/Ideas-api/internal/application/dto"
	"github.com/jhoicas/Ideas-api/internal/application/ports"
	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/jhoicas/Ideas-api/internal/domain/entity"
	"github.com/jhoicas/Ideas-api/internal/domain/identity"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
	"github.com/jhoicas/Ideas-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// BootstrapConfig lista de logins que reciben Admin al iniciar sesión.
// Solo aplica con Enabled (por defecto, únicamente en desarrollo).
type BootstrapConfig struct {
	Enabled bool
	Admins  []string
}

// AuthUseCase casos de uso de autenticación: login contra el directorio,
// reconciliación de identidad y sesión.
type AuthUseCase struct {
	tx        ports.TxRunner
	users     repository.UserRepository
	employees repository.EmployeeRepository
	directory ports.DirectoryGateway
	sessions  ports.SessionStore
	jwtCfg    JWTConfig
	bootstrap BootstrapConfig
	now       func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	tx ports.TxRunner,
	users repository.UserRepository,
	employees repository.EmployeeRepository,
	directory ports.DirectoryGateway,
	sessions ports.SessionStore,
	jwtCfg JWTConfig,
	bootstrap BootstrapConfig,
) *AuthUseCase {
	return &AuthUseCase{
		tx:        tx,
		users:     users,
		employees: employees,
		directory: directory,
		sessions:  sessions,
		jwtCfg:    jwtCfg,
		bootstrap: bootstrap,
		now:       time.Now,
	}
}

// Login autentica contra el directorio, reconcilia el usuario local y abre una sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	userName := strings.TrimSpace(in.UserName)
	if userName == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: usuario y contraseña son requeridos", domain.ErrValidation)
	}

	ok, err := uc.directory.Authenticate(ctx, userName, in.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthenticated)
	}

	attrs, err := uc.directory.FetchAttributes(ctx, userName)
	if err != nil {
		return nil, err
	}
	if attrs == nil {
		return nil, fmt.Errorf("%w: no fue posible obtener los datos del usuario", domain.ErrUnauthenticated)
	}

	user, err := uc.Reconcile(ctx, userName, *attrs)
	if err != nil {
		return nil, err
	}

	sessionID := uuid.New().String()
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, sessionID, user.ID, user.UserName, user.Roles, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if err := uc.sessions.Save(ctx, ports.Session{ID: sessionID, UserID: user.ID, ExpiresAt: exp}); err != nil {
		return nil, err
	}

	info, err := uc.userInfo(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresAt: exp, User: *info}, nil
}

// Reconcile crea o actualiza el usuario local a partir de los datos del directorio.
// Un alta concurrente del mismo login (ErrConflict) se reintenta una vez como actualización.
func (uc *AuthUseCase) Reconcile(ctx context.Context, login string, attrs ports.DirectoryAttributes) (*entity.User, error) {
	userName := identity.NormalizeLogin(login)
	if userName == "" {
		return nil, fmt.Errorf("%w: usuario requerido", domain.ErrValidation)
	}
	user, err := uc.reconcileOnce(ctx, userName, attrs)
	if errors.Is(err, domain.ErrConflict) {
		user, err = uc.reconcileOnce(ctx, userName, attrs)
	}
	return user, err
}

func (uc *AuthUseCase) reconcileOnce(ctx context.Context, userName string, attrs ports.DirectoryAttributes) (*entity.User, error) {
	var result *entity.User
	err := uc.tx.RunIdentity(ctx, func(users repository.UserRepository, roles repository.RoleRepository) error {
		user, err := users.LockByUserName(ctx, userName)
		if err != nil {
			return err
		}
		if user != nil && !user.IsActive {
			return fmt.Errorf("%s: %w", userName, domain.ErrAccountDisabled)
		}

		now := uc.now().UTC()
		created := user == nil
		if created {
			user = &entity.User{
				ID:        uuid.New().String(),
				UserName:  userName,
				IsActive:  true,
				CreatedAt: now,
			}
		}
		user.EmployeeCode = identity.TrimTo(attrs.EmployeeCode, entity.MaxEmployeeCodeLen)
		user.FullName = identity.TrimTo(attrs.FullName, entity.MaxFullNameLen)
		user.LastLoginAt = &now
		user.UpdatedAt = now

		if created {
			err = users.Create(ctx, user)
		} else {
			err = users.UpdateProfile(ctx, user)
		}
		if err != nil {
			return err
		}

		if err := access.Grant(ctx, users, roles, user, entity.RoleIdeador); err != nil {
			return err
		}
		if uc.isBootstrapAdmin(userName) {
			if err := access.Grant(ctx, users, roles, user, entity.RoleAdmin); err != nil {
				return err
			}
		}
		result = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *AuthUseCase) isBootstrapAdmin(userName string) bool {
	if !uc.bootstrap.Enabled {
		return false
	}
	for _, admin := range uc.bootstrap.Admins {
		if identity.SameLogin(admin, userName) {
			return true
		}
	}
	return false
}

// Me devuelve los datos de la sesión actual.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserInfo, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}
	return uc.userInfo(ctx, user)
}

// Logout revoca la sesión; el token deja de ser aceptado aunque no haya expirado.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return uc.sessions.Revoke(ctx, sessionID)
}

func (uc *AuthUseCase) userInfo(ctx context.Context, user *entity.User) (*dto.UserInfo, error) {
	info := &dto.UserInfo{
		UserName:       user.UserName,
		CodigoEmpleado: user.EmployeeCode,
		NombreCompleto: user.FullName,
		Instancia:      user.Instance,
		Roles:          append([]string{}, user.Roles...),
	}
	if user.EmployeeCode == nil {
		return info, nil
	}
	emp, err := uc.employees.GetByCode(ctx, *user.EmployeeCode)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return info, nil
	}
	info.HasEmployee = true
	if name := emp.FullName(); name != "" {
		info.NombreCompleto = &name
	}
	info.Email = identity.TrimTo(emp.Email, entity.MaxEmployeeEmailLen)
	info.Departamento = identity.TrimTo(emp.Department, entity.MaxDepartmentLen)
	return info, nil
}
