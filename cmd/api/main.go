package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/reefet/reefet-api/internal/application/auth"
	"github.com/reefet/reefet-api/internal/application/ingest"
	"github.com/reefet/reefet-api/internal/application/usecase"
	"github.com/reefet/reefet-api/internal/application/validation"
	"github.com/reefet/reefet-api/internal/infrastructure/storage"
	httpRouter "github.com/reefet/reefet-api/internal/interfaces/http"
	"github.com/reefet/reefet-api/pkg/config"
	"github.com/reefet/reefet-api/pkg/jwt"
	"github.com/reefet/reefet-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 30*time.Second)
	repos, err := storage.Open(connectCtx, cfg.DB, log)
	cancelConnect()
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al store")
	}
	defer repos.Close()

	signer, err := jwt.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL())
	if err != nil {
		log.Fatal().Err(err).Msg("firmador JWT")
	}
	validate := validation.New()

	lookup := ingest.RepoLookup{Nodes: repos.Nodes, Depots: repos.Depots}
	resolver, err := ingest.NewResolver(cfg.Ingest.Strategy)
	if err != nil {
		log.Fatal().Err(err).Msg("INGEST_STRATEGY")
	}
	ingestUC := ingest.NewIngestUseCase(resolver, lookup, repos.Dispatches, validate, log)
	var legacyUC *ingest.IngestUseCase
	if cfg.Ingest.LegacyEndpoint {
		legacyUC = ingest.NewIngestUseCase(ingest.DepotTagResolver{}, lookup, repos.Dispatches, validate, log)
	}
	log.Info().
		Str("strategy", ingestUC.Strategy()).
		Bool("legacy_endpoint", legacyUC != nil).
		Msg("ingesta configurada")

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:           cfg.App.Name,
		Production:     cfg.App.IsProduction(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Log:            log,
	})

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Reefet API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(repos.Users, repos.Companies, repos.Depots, signer, validate),
		CompanyUC:    usecase.NewCompanyUseCase(repos.Companies, validate),
		DepotUC:      usecase.NewDepotUseCase(repos.Depots, repos.Companies, validate),
		NodeUC:       usecase.NewNodeUseCase(repos.Nodes, repos.Depots, validate),
		DispatchUC:   usecase.NewDispatchUseCase(repos.Dispatches),
		Ingest:       ingestUC,
		LegacyIngest: legacyUC,
		ServiceName:  cfg.App.Name,
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
