package ingest

import (
	"context"
	"fmt"

	"github.com/reefet/reefet-api/internal/domain"
	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/repository"
)

// Estrategias de resolución configurables por endpoint.
const (
	StrategyNodeCode = "node"
	StrategyDepotTag = "depot"
)

// Keys identificadores sueltos que trae un payload.
type Keys struct {
	NodeCode string // código externo del nodo (vía actual)
	DepotTag string // identificador de nodo del depósito (vía legacy)
}

// ResolvedRefs referencias canónicas obtenidas a partir de Keys.
type ResolvedRefs struct {
	NodeID  *string
	DepotID string
}

// Lookup capacidad de búsqueda que necesitan los resolvers. Devuelve (nil, nil) si no existe.
type Lookup interface {
	GetByExternalCode(ctx context.Context, code string) (*entity.Node, error)
	GetByNodeIdentifier(ctx context.Context, tag string) (*entity.Depot, error)
}

// Resolver traduce Keys a referencias canónicas sin efectos secundarios.
// Un fallo de resolución envuelve domain.ErrNotFound.
type Resolver interface {
	Strategy() string
	Resolve(ctx context.Context, keys Keys, lookup Lookup) (ResolvedRefs, error)
}

// NewResolver devuelve el resolver de la estrategia indicada.
func NewResolver(strategy string) (Resolver, error) {
	switch strategy {
	case StrategyNodeCode, "":
		return NodeCodeResolver{}, nil
	case StrategyDepotTag:
		return DepotTagResolver{}, nil
	default:
		return nil, fmt.Errorf("estrategia de ingesta desconocida: %q", strategy)
	}
}

// NodeCodeResolver busca el nodo por código externo y toma su depósito.
type NodeCodeResolver struct{}

func (NodeCodeResolver) Strategy() string { return StrategyNodeCode }

func (NodeCodeResolver) Resolve(ctx context.Context, keys Keys, lookup Lookup) (ResolvedRefs, error) {
	if keys.NodeCode == "" {
		return ResolvedRefs{}, fmt.Errorf("%w: idNodo es requerido", domain.ErrValidation)
	}
	node, err := lookup.GetByExternalCode(ctx, keys.NodeCode)
	if err != nil {
		return ResolvedRefs{}, err
	}
	if node == nil {
		return ResolvedRefs{}, fmt.Errorf("%w: no hay nodo para el código %s", domain.ErrNotFound, keys.NodeCode)
	}
	id := node.ID
	return ResolvedRefs{NodeID: &id, DepotID: node.DepotID}, nil
}

// DepotTagResolver busca el depósito directamente por su identificador de nodo (dispositivos legacy).
type DepotTagResolver struct{}

func (DepotTagResolver) Strategy() string { return StrategyDepotTag }

func (DepotTagResolver) Resolve(ctx context.Context, keys Keys, lookup Lookup) (ResolvedRefs, error) {
	if keys.DepotTag == "" {
		return ResolvedRefs{}, fmt.Errorf("%w: identificadorNodo es requerido", domain.ErrValidation)
	}
	depot, err := lookup.GetByNodeIdentifier(ctx, keys.DepotTag)
	if err != nil {
		return ResolvedRefs{}, err
	}
	if depot == nil {
		return ResolvedRefs{}, fmt.Errorf("%w: no hay depósito para el identificador %s", domain.ErrNotFound, keys.DepotTag)
	}
	return ResolvedRefs{DepotID: depot.ID}, nil
}

// RepoLookup implementa Lookup sobre los repositorios de nodos y depósitos.
type RepoLookup struct {
	Nodes  repository.NodeRepository
	Depots repository.DepotRepository
}

func (l RepoLookup) GetByExternalCode(ctx context.Context, code string) (*entity.Node, error) {
	return l.Nodes.GetByExternalCode(ctx, code)
}

func (l RepoLookup) GetByNodeIdentifier(ctx context.Context, tag string) (*entity.Depot, error) {
	return l.Depots.GetByNodeIdentifier(ctx, tag)
}
