package repository

import (
	"context"

	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/filter"
)

// DepotRepository define el puerto de persistencia para Depot.
type DepotRepository interface {
	// Create devuelve domain.ErrConflict si el nombre o el identificador de nodo ya existen,
	// y domain.ErrNotFound si la empresa referenciada no existe.
	Create(ctx context.Context, depot *entity.Depot) error
	GetByID(ctx context.Context, id string) (*entity.Depot, error)
	GetByNodeIdentifier(ctx context.Context, tag string) (*entity.Depot, error)
	// GetByIDs devuelve los depósitos existentes entre ids; los ids inexistentes se omiten.
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Depot, error)
	List(ctx context.Context, pred filter.Predicate, limit int) ([]entity.Ref, error)
}
