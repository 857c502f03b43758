package postgres

import (
	"context"
	"fmt"

	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/filter"
	"github.com/reefet/reefet-api/internal/domain/repository"
)

var _ repository.NodeRepository = (*NodeRepo)(nil)

// En los listados el nombre de un nodo es su código externo.
var nodeColumns = columns{
	filter.FieldID:       {expr: "id", kind: uuidColumn},
	filter.FieldName:     {expr: "external_code"},
	filter.FieldNodeCode: {expr: "external_code"},
	filter.FieldDepotID:  {expr: "depot_id", kind: uuidColumn},
}

// NodeRepo implementación del puerto NodeRepository sobre PostgreSQL.
type NodeRepo struct {
	q Querier
}

// NewNodeRepository construye el adaptador. Acepta pool o tx.
func NewNodeRepository(q Querier) *NodeRepo {
	return &NodeRepo{q: q}
}

func (r *NodeRepo) Create(ctx context.Context, n *entity.Node) error {
	query := `INSERT INTO nodes (id, external_code, depot_id, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, query, n.ID, n.ExternalCode, n.DepotID, n.CreatedAt); err != nil {
		return writeError("insert node", err)
	}
	return nil
}

// GetByExternalCode busca por el código que envía el firmware en idNodo.
func (r *NodeRepo) GetByExternalCode(ctx context.Context, code string) (*entity.Node, error) {
	query := `SELECT id, external_code, depot_id, created_at FROM nodes WHERE external_code = $1`
	var n entity.Node
	err := r.q.QueryRow(ctx, query, code).Scan(&n.ID, &n.ExternalCode, &n.DepotID, &n.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get node: %w", err)
	}
	return &n, nil
}

func (r *NodeRepo) List(ctx context.Context, pred filter.Predicate, limit int) ([]entity.Ref, error) {
	return listRefs(ctx, r.q, "nodes", "id", "external_code", nodeColumns, pred, limit)
}
