// seed crea el primer usuario administrador.
//
// Uso: go run ./cmd/seed --email admin@empresa.cl [--name "Admin"]
// El password se toma de --password o de SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/reefet/reefet-api/internal/application/auth"
	"github.com/reefet/reefet-api/internal/application/dto"
	"github.com/reefet/reefet-api/internal/application/validation"
	"github.com/reefet/reefet-api/internal/domain"
	"github.com/reefet/reefet-api/internal/infrastructure/storage"
	"github.com/reefet/reefet-api/pkg/config"
	"github.com/reefet/reefet-api/pkg/jwt"
	"github.com/reefet/reefet-api/pkg/logger"
)

func main() {
	flags := pflag.NewFlagSet("seed", pflag.ExitOnError)
	email := flags.String("email", "", "email del administrador")
	password := flags.String("password", os.Getenv("SEED_ADMIN_PASSWORD"), "password (mínimo 8 caracteres)")
	name := flags.String("name", "Administrador", "nombre visible")
	_ = flags.Parse(os.Args[1:])

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "uso: seed --email <email> --password <password>")
		flags.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	if cfg.DB.Driver == config.DriverMemory {
		log.Fatal().Msg("seed requiere DB_DRIVER=postgres")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	repos, err := storage.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al store")
	}
	defer repos.Close()

	// Register no emite tokens; el secreto solo hace falta para construir el servicio.
	signer, err := jwt.NewSigner("seed", cfg.JWT.Issuer, time.Minute)
	if err != nil {
		log.Fatal().Err(err).Msg("firmador JWT")
	}
	uc := auth.NewAuthUseCase(repos.Users, repos.Companies, repos.Depots, signer, validation.New())
	user, err := uc.Register(ctx, dto.RegisterRequest{
		Email:       *email,
		Password:    *password,
		DisplayName: *name,
		IsAdmin:     true,
	})
	switch {
	case errors.Is(err, domain.ErrConflict):
		log.Warn().Str("email", *email).Msg("el usuario ya existe")
	case err != nil:
		log.Fatal().Err(err).Msg("crear administrador")
	default:
		log.Info().Str("id", user.ID).Str("email", user.Email).Msg("administrador creado")
	}
}
