package repository

import (
	"context"

	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/filter"
)

// DispatchRepository define el puerto de persistencia para Dispatch (solo inserción).
type DispatchRepository interface {
	// Create inserta el registro completo en una sola escritura atómica.
	Create(ctx context.Context, d *entity.Dispatch) error
	// Search devuelve los registros que cumplen pred ordenados por ServiceTime descendente,
	// como máximo limit, con los datos del depósito rellenados.
	Search(ctx context.Context, pred filter.Predicate, limit int) ([]*entity.Dispatch, error)
}
