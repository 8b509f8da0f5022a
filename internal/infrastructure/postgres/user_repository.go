package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/jhoicas/Ideas-api/internal/domain/entity"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
)

var (
	_ repository.UserRepository = (*UserRepo)(nil)
	_ repository.RoleRepository = (*RoleRepo)(nil)
)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador; q puede ser el pool o una transacción.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// userSelect usuario con sus roles agregados (orden binario, igual que sort.Strings).
const userSelect = `
	SELECT u.id, u.user_name, u.employee_code, u.full_name, u.instance, u.is_active,
	       u.last_login_at, u.created_at, u.updated_at,
	       COALESCE(array_agg(r.name ORDER BY r.name COLLATE "C") FILTER (WHERE r.name IS NOT NULL), '{}') AS roles
	FROM users u
	LEFT JOIN user_roles ur ON ur.user_id = u.id
	LEFT JOIN roles r       ON r.id = ur.role_id`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.UserName, &u.EmployeeCode, &u.FullName, &u.Instance, &u.IsActive,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt, &u.Roles,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario. Login repetido → ErrConflict.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, user_name, employee_code, full_name, instance, is_active, last_login_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.UserName, user.EmployeeCode, user.FullName, user.Instance, user.IsActive,
		user.LastLoginAt, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return storeErr("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.findOne(ctx, "get user by id", userSelect+` WHERE u.id = $1 GROUP BY u.id`, id)
}

// GetByUserName obtiene un usuario por login normalizado.
func (r *UserRepo) GetByUserName(ctx context.Context, userName string) (*entity.User, error) {
	return r.findOne(ctx, "get user by user_name", userSelect+` WHERE u.user_name = $1 GROUP BY u.id`, userName)
}

// LockByUserName bloquea la fila (SELECT … FOR UPDATE) y devuelve el usuario
// leído después del bloqueo. FOR UPDATE no admite GROUP BY, por eso son dos consultas.
func (r *UserRepo) LockByUserName(ctx context.Context, userName string) (*entity.User, error) {
	var id string
	err := r.q.QueryRow(ctx, `SELECT id FROM users WHERE user_name = $1 FOR UPDATE`, userName).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("lock user", err)
	}
	return r.GetByID(ctx, id)
}

// GetByEmployeeCode primer usuario (por login) con el código de empleado.
func (r *UserRepo) GetByEmployeeCode(ctx context.Context, code string) (*entity.User, error) {
	return r.findOne(ctx, "get user by employee_code",
		userSelect+` WHERE u.employee_code = $1 GROUP BY u.id ORDER BY u.user_name COLLATE "C" LIMIT 1`, code)
}

func (r *UserRepo) findOne(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr(op, err)
	}
	return u, nil
}

// UpdateProfile guarda los datos que llegan del directorio.
func (r *UserRepo) UpdateProfile(ctx context.Context, user *entity.User) error {
	return r.update(ctx, "update user profile", `
		UPDATE users SET employee_code = $2, full_name = $3, last_login_at = $4, updated_at = $5
		WHERE id = $1`,
		user.ID, user.EmployeeCode, user.FullName, user.LastLoginAt, user.UpdatedAt)
}

// UpdateInstance guarda la instancia.
func (r *UserRepo) UpdateInstance(ctx context.Context, user *entity.User) error {
	return r.update(ctx, "update user instance",
		`UPDATE users SET instance = $2, updated_at = $3 WHERE id = $1`,
		user.ID, user.Instance, user.UpdatedAt)
}

// UpdateActive guarda el flag de actividad.
func (r *UserRepo) UpdateActive(ctx context.Context, user *entity.User) error {
	return r.update(ctx, "update user active",
		`UPDATE users SET is_active = $2, updated_at = $3 WHERE id = $1`,
		user.ID, user.IsActive, user.UpdatedAt)
}

func (r *UserRepo) update(ctx context.Context, op, query string, args ...any) error {
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return storeErr(op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s %v: %w", op, args[0], domain.ErrUserNotFound)
	}
	return nil
}

// List todos los usuarios ordenados por login.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, userSelect+` GROUP BY u.id ORDER BY u.user_name COLLATE "C"`)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	defer rows.Close()

	out := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storeErr("scan user", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list users", err)
	}
	return out, nil
}

// AddRole agrega la membresía si no existe.
func (r *UserRepo) AddRole(ctx context.Context, userID, roleID string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, userID, roleID)
	if err != nil {
		return storeErr("add role", err)
	}
	return nil
}

// RemoveRole quita la membresía.
func (r *UserRepo) RemoveRole(ctx context.Context, userID, roleID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`, userID, roleID); err != nil {
		return storeErr("remove role", err)
	}
	return nil
}

// ClearRoles quita todas las membresías del usuario.
func (r *UserRepo) ClearRoles(ctx context.Context, userID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return storeErr("clear roles", err)
	}
	return nil
}

// CountRoleHolders usuarios activos con el rol.
func (r *UserRepo) CountRoleHolders(ctx context.Context, roleID string) (int, error) {
	query := `
		SELECT count(*)
		FROM user_roles ur
		JOIN users u ON u.id = ur.user_id
		WHERE ur.role_id = $1 AND u.is_active`
	var n int
	if err := r.q.QueryRow(ctx, query, roleID).Scan(&n); err != nil {
		return 0, storeErr("count role holders", err)
	}
	return n, nil
}

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador de roles.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// EnsureByName upsert sobre la restricción única de roles.name. Idempotente.
func (r *RoleRepo) EnsureByName(ctx context.Context, name string) (*entity.Role, error) {
	query := `
		INSERT INTO roles (id, name) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name`
	var role entity.Role
	if err := r.q.QueryRow(ctx, query, uuid.New().String(), name).Scan(&role.ID, &role.Name); err != nil {
		return nil, storeErr("ensure role", err)
	}
	return &role, nil
}

// GetByName rol por nombre exacto.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	return r.find(ctx, `SELECT id, name FROM roles WHERE name = $1`, name)
}

// LockByName bloquea la fila del rol hasta el fin de la transacción.
func (r *RoleRepo) LockByName(ctx context.Context, name string) (*entity.Role, error) {
	return r.find(ctx, `SELECT id, name FROM roles WHERE name = $1 FOR UPDATE`, name)
}

func (r *RoleRepo) find(ctx context.Context, query, name string) (*entity.Role, error) {
	var role entity.Role
	err := r.q.QueryRow(ctx, query, name).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get role", err)
	}
	return &role, nil
}
