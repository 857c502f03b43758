package repository

import (
	"context"

	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/filter"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	// Create devuelve domain.ErrConflict si el nombre o el RUT ya existen.
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// List devuelve proyecciones {id, name} ordenadas por nombre.
	List(ctx context.Context, pred filter.Predicate, limit int) ([]entity.Ref, error)
}
