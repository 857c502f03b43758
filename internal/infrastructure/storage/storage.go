// Package storage elige la implementación del Entity Store según DB_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/reefet/reefet-api/internal/domain/repository"
	"github.com/reefet/reefet-api/internal/infrastructure/memory"
	"github.com/reefet/reefet-api/internal/infrastructure/postgres"
	"github.com/reefet/reefet-api/pkg/config"
	"github.com/reefet/reefet-api/pkg/logger"
)

// Repositories agrupa los puertos de persistencia de una misma conexión.
type Repositories struct {
	Companies  repository.CompanyRepository
	Depots     repository.DepotRepository
	Nodes      repository.NodeRepository
	Dispatches repository.DispatchRepository
	Users      repository.UserRepository

	// Ping comprueba que el store responde.
	Ping  func(ctx context.Context) error
	close func()
}

// Close libera la conexión al store.
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// Open conecta al store configurado. Con postgres hace ping y, si AutoMigrate,
// aplica las migraciones pendientes antes de devolver.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Repositories, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn().Msg("usando store en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &Repositories{
			Companies:  memory.NewCompanyRepository(s),
			Depots:     memory.NewDepotRepository(s),
			Nodes:      memory.NewNodeRepository(s),
			Dispatches: memory.NewDispatchRepository(s),
			Users:      memory.NewUserRepository(s),
			Ping:       func(context.Context) error { return nil },
		}, nil

	case config.DriverPostgres, "":
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			applied, err := postgres.Migrate(ctx, pool)
			if err != nil {
				pool.Close()
				return nil, fmt.Errorf("migraciones: %w", err)
			}
			for _, name := range applied {
				log.Info().Str("migration", name).Msg("migración aplicada")
			}
		}
		return &Repositories{
			Companies:  postgres.NewCompanyRepository(pool),
			Depots:     postgres.NewDepotRepository(pool),
			Nodes:      postgres.NewNodeRepository(pool),
			Dispatches: postgres.NewDispatchRepository(pool),
			Users:      postgres.NewUserRepository(pool),
			Ping:       pool.Ping,
			close:      pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("DB_DRIVER desconocido: %q", cfg.Driver)
	}
}
