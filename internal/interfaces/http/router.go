package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/reefet/reefet-api/internal/application/auth"
	"github.com/reefet/reefet-api/internal/application/ingest"
	"github.com/reefet/reefet-api/internal/application/usecase"
	"github.com/reefet/reefet-api/pkg/logger"
)

// AppConfig opciones de la aplicación Fiber.
type AppConfig struct {
	Name           string
	Production     bool
	AllowedOrigins []string
	Log            *logger.Logger
}

// NewApp crea la aplicación Fiber con el mapeo de errores, recover, log de acceso y CORS.
func NewApp(cfg AppConfig) *fiber.App {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: NewErrorHandler(log.Component("http"), cfg.Production),
	})
	app.Use(RequestLogger(log.Component("access")))
	app.Use(recover.New())
	// Sin Origin (curl, nodos de campo) CORS no interviene.
	if len(cfg.AllowedOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(cfg.AllowedOrigins, ","),
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
			AllowMethods: "GET,POST,OPTIONS",
		}))
	}
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CompanyUC  *usecase.CompanyUseCase
	DepotUC    *usecase.DepotUseCase
	NodeUC     *usecase.NodeUseCase
	DispatchUC *usecase.DispatchUseCase
	Ingest     *ingest.IngestUseCase

	// LegacyIngest se monta en /api/dispatches/legacy si no es nil.
	LegacyIngest *ingest.IngestUseCase
	ServiceName  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.AuthUC)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Get("/me", requireAuth, authHandler.Me)

	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Post("/companies", requireAuth, RequireAdmin, companyHandler.Create)
	api.Get("/companies", requireAuth, companyHandler.List)

	depotHandler := NewDepotHandler(deps.DepotUC)
	api.Post("/depots", requireAuth, depotHandler.Create)
	api.Get("/depots", requireAuth, depotHandler.List)

	nodeHandler := NewNodeHandler(deps.NodeUC)
	api.Post("/nodes", requireAuth, nodeHandler.Create)
	api.Get("/nodes", requireAuth, nodeHandler.List)

	// Ingesta sin token: los nodos de campo no tienen credenciales.
	dispatchHandler := NewDispatchHandler(deps.DispatchUC)
	api.Post("/dispatches", dispatchHandler.Ingest(deps.Ingest))
	if deps.LegacyIngest != nil {
		api.Post("/dispatches/legacy", dispatchHandler.Ingest(deps.LegacyIngest))
	}
	api.Get("/dispatches", requireAuth, dispatchHandler.List)
}
