package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Ideas-api/internal/application/ports"
	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunIdentity transacción con usuarios y roles (reconciliación y administración de roles).
func (r *TxRunner) RunIdentity(ctx context.Context, fn func(
	users repository.UserRepository,
	roles repository.RoleRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewUserRepository(tx), NewRoleRepository(tx))
	})
}

// RunIdeas transacción con ideas, usuarios, roles y empleados (alta y revisión de ideas).
func (r *TxRunner) RunIdeas(ctx context.Context, fn func(
	ideas repository.IdeaRepository,
	users repository.UserRepository,
	roles repository.RoleRepository,
	employees repository.EmployeeRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewIdeaRepository(tx), NewUserRepository(tx), NewRoleRepository(tx), NewEmployeeRepository(tx))
	})
}

// RunReport transacción REPEATABLE READ de solo lectura: todas las consultas
// del resumen ven la misma foto.
func (r *TxRunner) RunReport(ctx context.Context, fn func(reports repository.ReportRepository) error) error {
	return r.runWith(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		return fn(NewReportRepository(tx))
	})
}

// run inicia la transacción, ejecuta fn y hace Commit; cualquier error hace Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return r.runWith(ctx, pgx.TxOptions{}, fn)
}

func (r *TxRunner) runWith(ctx context.Context, opts pgx.TxOptions, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w: %w", domain.ErrStore, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit transaction", err)
	}
	return nil
}
