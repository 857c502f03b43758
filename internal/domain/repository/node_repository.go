package repository

import (
	"context"

	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/filter"
)

// NodeRepository define el puerto de persistencia para Node.
type NodeRepository interface {
	Create(ctx context.Context, node *entity.Node) error
	GetByExternalCode(ctx context.Context, code string) (*entity.Node, error)
	// List devuelve {id, name} donde name es el código externo.
	List(ctx context.Context, pred filter.Predicate, limit int) ([]entity.Ref, error)
}
