package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	appanalytics "github.com/jhoicas/Ideas-api/internal/application/analytics"
	"github.com/jhoicas/Ideas-api/internal/application/auth"
	"github.com/jhoicas/Ideas-api/internal/application/ideas"
	"github.com/jhoicas/Ideas-api/internal/application/ports"
	"github.com/jhoicas/Ideas-api/internal/application/usecase"
	"github.com/jhoicas/Ideas-api/internal/domain/repository"
	"github.com/jhoicas/Ideas-api/internal/infrastructure/directory"
	"github.com/jhoicas/Ideas-api/internal/infrastructure/memory"
	"github.com/jhoicas/Ideas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ideas-api/internal/infrastructure/session"
	httpRouter "github.com/jhoicas/Ideas-api/internal/interfaces/http"
	"github.com/jhoicas/Ideas-api/pkg/config"
	"github.com/jhoicas/Ideas-api/pkg/logger"
)

// storage repositorios del driver elegido.
type storage struct {
	tx        ports.TxRunner
	users     repository.UserRepository
	employees repository.EmployeeRepository
	ideas     repository.IdeaRepository
	catalogs  repository.CatalogRepository
	reports   repository.ReportRepository
	ping      func(ctx context.Context) error
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	level := cfg.App.Level
	if level == "" {
		level = "info"
		if cfg.App.IsDevelopment() {
			level = "debug"
		}
	}
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.DB.Driver).
		Msg("iniciando aplicación")

	secret := cfg.JWT.Secret
	if secret == "" {
		secret = "dev-secret-no-usar-en-produccion"
		log.Warn().Msg("JWT_SECRET vacío: se usa un secreto de desarrollo")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	var sessions ports.SessionStore
	if cfg.Redis.URL != "" {
		redisStore, err := session.NewRedisStore(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisStore.Close()
		sessions = redisStore
		prev := store.ping
		store.ping = func(ctx context.Context) error {
			if err := prev(ctx); err != nil {
				return err
			}
			return redisStore.Ping(ctx)
		}
	} else {
		log.Warn().Msg("REDIS_URL vacío: sesiones en memoria del proceso")
		sessions = session.NewMemoryStore()
	}

	if cfg.Directory.BaseURL == "" {
		log.Warn().Msg("AD_BASE_URL vacío: el login fallará con directorio no disponible")
	}
	dir := directory.NewClient(cfg.Directory.BaseURL, cfg.Directory.Timeout, log.Component("directory"))

	authUC := auth.NewAuthUseCase(store.tx, store.users, store.employees, dir, sessions,
		auth.JWTConfig{
			Secret:     secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		auth.BootstrapConfig{
			Enabled: cfg.Bootstrap.Enabled,
			Admins:  cfg.Bootstrap.Admins,
		})
	ideaUC := ideas.NewIdeaUseCase(store.tx, store.ideas, store.users)
	dashboardUC := appanalytics.NewDashboardUseCase(store.tx, store.reports)
	userUC := usecase.NewUserUseCase(store.tx, store.users, dir)
	catalogUC := usecase.NewCatalogUseCase(store.catalogs)
	employeeUC := usecase.NewEmployeeUseCase(store.employees, store.users)

	app := httpRouter.NewApp(cfg.App.Name, cfg.App.IsDevelopment())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerPath,
			Path:     "docs",
			Title:    "Ideas API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		IdeaUC:      ideaUC,
		DashboardUC: dashboardUC,
		UserUC:      userUC,
		CatalogUC:   catalogUC,
		EmployeeUC:  employeeUC,
		Auth: httpRouter.AuthConfig{
			Secret:     secret,
			CookieName: cfg.JWT.CookieName,
			Sessions:   sessions,
		},
		SecureCookie:   !cfg.App.IsDevelopment(),
		LoginRateLimit: cfg.HTTP.LoginRateLimit,
		ServiceName:    cfg.App.Name,
		HealthCheck:    store.ping,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		m := memory.NewStore()
		return &storage{
			tx:        m,
			users:     m.Users(),
			employees: m.Employees(),
			ideas:     m.Ideas(),
			catalogs:  m.Catalogs(),
			reports:   m.Reports(),
			ping:      func(context.Context) error { return nil },
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		n, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Int("applied", n).Msg("migraciones")
	}
	return &storage{
		tx:        postgres.NewTxRunner(pool),
		users:     postgres.NewUserRepository(pool),
		employees: postgres.NewEmployeeRepository(pool),
		ideas:     postgres.NewIdeaRepository(pool),
		catalogs:  postgres.NewCatalogRepository(pool),
		reports:   postgres.NewReportRepository(pool),
		ping:      pool.Ping,
		close:     pool.Close,
	}, nil
}
