package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jhoicas/Ideas-api/internal/application/analytics"
	"github.com/jhoicas/Ideas-api/internal/application/auth"
	"github.com/jhoicas/Ideas-api/internal/application/dto"
	"github.com/jhoicas/Ideas-api/internal/application/ideas"
	"github.com/jhoicas/Ideas-api/internal/application/usecase"
	"github.com/jhoicas/Ideas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	IdeaUC      *ideas.IdeaUseCase
	DashboardUC *analytics.DashboardUseCase
	UserUC      *usecase.UserUseCase
	CatalogUC   *usecase.CatalogUseCase
	EmployeeUC  *usecase.EmployeeUseCase

	Auth         AuthConfig
	SecureCookie bool
	// LoginRateLimit intentos de login por minuto e IP; 0 desactiva el límite.
	LoginRateLimit int
	ServiceName    string
	// HealthCheck opcional (ping a la base y a Redis).
	HealthCheck func(ctx context.Context) error
}

// NewApp crea la aplicación Fiber con el manejador de errores y el
// middleware común (recover, request id, log de peticiones).
func NewApp(name string, dev bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    1 << 20,
		ErrorHandler: ErrorHandler(dev),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger())
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps))

	api := app.Group("/api")

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.Auth.CookieName, deps.SecureCookie)
	authGroup := api.Group("/auth")
	if deps.LoginRateLimit > 0 {
		authGroup.Post("/login", limiter.New(limiter.Config{
			Max:        deps.LoginRateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "TOO_MANY_REQUESTS", Message: "demasiados intentos, intente más tarde"})
			},
		}), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	// Rutas con sesión
	session := AuthMiddleware(deps.Auth)
	authGroup.Get("/me", session, authHandler.Me)
	authGroup.Post("/logout", session, authHandler.Logout)

	admin := RequireRole(entity.RoleAdmin)

	ideaHandler := NewIdeaHandler(deps.IdeaUC)
	ideasGroup := api.Group("/ideas", session)
	ideasGroup.Get("/mine", ideaHandler.ListMine)
	ideasGroup.Post("/", ideaHandler.Create)
	ideasGroup.Get("/:id", ideaHandler.GetMine)

	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	api.Get("/employees/me", session, employeeHandler.Me)

	// Catálogos: lectura con sesión, escritura solo Admin.
	configGroup := api.Group("/config", session)
	for path, kind := range map[string]entity.CatalogKind{
		"/classifications": entity.CatalogClassifications,
		"/instances":       entity.CatalogInstances,
	} {
		h := NewCatalogHandler(deps.CatalogUC, kind)
		configGroup.Get(path, h.List)
		configGroup.Post(path, admin, h.Create)
		configGroup.Delete(path+"/:id", admin, h.Delete)
	}

	// Administración
	adminGroup := api.Group("/admin", session, admin)

	adminIdeas := NewAdminIdeaHandler(deps.IdeaUC)
	adminGroup.Get("/ideas/pending", adminIdeas.ListPending)
	adminGroup.Get("/ideas/reviewed", adminIdeas.ListReviewed)
	adminGroup.Post("/ideas/manual", adminIdeas.CreateManual)
	adminGroup.Get("/ideas/:id", adminIdeas.Get)
	adminGroup.Put("/ideas/:id/review", adminIdeas.Review)
	adminGroup.Delete("/ideas/:id", adminIdeas.Delete)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	adminGroup.Get("/dashboard", dashboardHandler.GetSummary)
	adminGroup.Post("/dashboard/timeline", dashboardHandler.GetTimeline)

	userHandler := NewUserHandler(deps.UserUC)
	adminGroup.Get("/users", userHandler.List)
	adminGroup.Post("/users", userHandler.Create)
	adminGroup.Delete("/users/:userName", userHandler.Delete)
	adminGroup.Put("/users/:userName/roles", userHandler.SetRoles)
	adminGroup.Put("/users/:userName/active", userHandler.SetActive)
	adminGroup.Put("/users/:userName/instance", userHandler.SetInstance)

	adminGroup.Get("/employees/search", employeeHandler.Search)
}

func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.HealthCheck != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := deps.HealthCheck(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": deps.ServiceName, "error": err.Error()})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	}
}
