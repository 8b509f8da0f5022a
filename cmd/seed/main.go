// seed prepara la base de datos: aplica migraciones, crea los roles por
// defecto, asigna los administradores de BOOTSTRAP_ADMINS y, si la tabla de
// empleados está vacía, la carga desde SEED_EMPLOYEES_PATH.
//
// Uso: go run ./cmd/seed [ruta/empleados.csv]
package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/jhoicas/Ideas-api/internal/application/seed"
	"github.com/jhoicas/Ideas-api/internal/infrastructure/employeecsv"
	"github.com/jhoicas/Ideas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ideas-api/pkg/config"
	"github.com/jhoicas/Ideas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info", Service: "seed"})

	if cfg.DB.Driver != config.DriverPostgres {
		log.Fatal().Str("storage", cfg.DB.Driver).Msg("el seed solo aplica a STORAGE_DRIVER=postgres")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	n, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Int("applied", n).Msg("migraciones")

	seeder := seed.NewSeeder(postgres.NewTxRunner(pool), postgres.NewEmployeeRepository(pool))

	if err := seeder.EnsureRoles(ctx); err != nil {
		log.Fatal().Err(err).Msg("roles por defecto")
	}
	log.Info().Strs("roles", seed.DefaultRoles).Msg("roles verificados")

	granted, err := seeder.EnsureAdmins(ctx, cfg.Bootstrap.Admins)
	if err != nil {
		log.Fatal().Err(err).Msg("administradores iniciales")
	}
	for _, u := range granted {
		log.Info().Str("user", u).Msg("admin bootstrap asignado")
	}

	path := cfg.Seed.EmployeesPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path == "" {
		path = filepath.Join("seed", "empleados.csv")
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("path", path).Msg("no se encontró el CSV de empleados; se omite la carga")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("abrir CSV")
	}
	defer f.Close()

	res, err := employeecsv.Read(f, cfg.Seed.EmployeesCharset)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("leer CSV")
	}
	lines := make([]int, 0, len(res.Skipped))
	for l := range res.Skipped {
		lines = append(lines, l)
	}
	sort.Ints(lines)
	for _, l := range lines {
		log.Warn().Int("line", l).Str("reason", res.Skipped[l]).Msg("línea omitida")
	}

	inserted, err := seeder.ImportEmployees(ctx, res.Employees)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar empleados")
	}
	if inserted == 0 {
		log.Info().Msg("la tabla de empleados ya tiene datos o el CSV no tiene filas válidas; se omite la carga")
		return
	}
	log.Info().Int("employees", inserted).Int("skipped", len(res.Skipped)).Msg("empleados cargados")
}
