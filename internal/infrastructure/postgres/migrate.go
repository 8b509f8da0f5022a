package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.up.sql
var migrationsFS embed.FS

// migrationLockID clave del advisory lock que serializa migraciones concurrentes.
const migrationLockID = 7_314_202

// Migrate aplica en orden los scripts embebidos que aún no figuran en
// schema_migrations. Todo corre en una sola transacción.
func Migrate(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	files, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	if err != nil {
		return 0, fmt.Errorf("listar migraciones: %w", err)
	}
	sort.Strings(files)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, storeErr("migrate begin", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, migrationLockID); err != nil {
		return 0, storeErr("migrate lock", err)
	}
	if _, err := tx.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return 0, storeErr("migrate schema_migrations", err)
	}

	applied := 0
	for _, f := range files {
		version := strings.TrimSuffix(strings.TrimPrefix(f, "migrations/"), ".up.sql")
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists); err != nil {
			return 0, storeErr("migrate check "+version, err)
		}
		if exists {
			continue
		}
		script, err := migrationsFS.ReadFile(f)
		if err != nil {
			return 0, fmt.Errorf("leer %s: %w", f, err)
		}
		if _, err := tx.Exec(ctx, string(script)); err != nil {
			return 0, storeErr("migrate "+version, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return 0, storeErr("migrate record "+version, err)
		}
		log.Info().Str("version", version).Msg("migración aplicada")
		applied++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, storeErr("migrate commit", err)
	}
	return applied, nil
}
