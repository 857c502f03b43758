package postgres

import (
	"context"
	"fmt"

	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/filter"
	"github.com/reefet/reefet-api/internal/domain/repository"
)

var _ repository.DispatchRepository = (*DispatchRepo)(nil)

var dispatchColumns = columns{
	filter.FieldID:       {expr: "d.id", kind: uuidColumn},
	filter.FieldDepotID:  {expr: "d.depot_id", kind: uuidColumn},
	filter.FieldNodeCode: {expr: "d.node_code"},
	filter.FieldReeferID: {expr: "d.reefer_id"},
}

// DispatchRepo implementación del puerto DispatchRepository sobre PostgreSQL.
type DispatchRepo struct {
	q Querier
}

// NewDispatchRepository construye el adaptador. Acepta pool o tx.
func NewDispatchRepository(q Querier) *DispatchRepo {
	return &DispatchRepo{q: q}
}

// Create inserta el despacho en una sola sentencia.
func (r *DispatchRepo) Create(ctx context.Context, d *entity.Dispatch) error {
	query := `
		INSERT INTO dispatches (id, node_code, reefer_id, service_time, node_time, brand,
			set_point, software, node_id, depot_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.NodeCode, d.ReeferID, d.ServiceTime, d.NodeTime, d.Brand,
		d.SetPoint, d.Software, d.NodeID, d.DepotID, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return writeError("insert dispatch", err)
	}
	return nil
}

// Search aplica pred, ordena por tServ descendente y rellena nombre e identificador del depósito.
func (r *DispatchRepo) Search(ctx context.Context, pred filter.Predicate, limit int) ([]*entity.Dispatch, error) {
	b := newWhereBuilder(dispatchColumns)
	where, err := b.build(pred)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT d.id, d.node_code, d.reefer_id, d.service_time, d.node_time, d.brand,
			d.set_point, d.software, d.node_id, d.depot_id, d.created_at, d.updated_at,
			dp.name, dp.node_identifier
		FROM dispatches d
		JOIN depots dp ON dp.id = d.depot_id
		WHERE ` + where + `
		ORDER BY d.service_time DESC, d.id DESC`
	if limit > 0 {
		query += " LIMIT " + b.arg(limit)
	}

	rows, err := r.q.Query(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("search dispatches: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Dispatch, 0)
	for rows.Next() {
		var d entity.Dispatch
		err := rows.Scan(
			&d.ID, &d.NodeCode, &d.ReeferID, &d.ServiceTime, &d.NodeTime, &d.Brand,
			&d.SetPoint, &d.Software, &d.NodeID, &d.DepotID, &d.CreatedAt, &d.UpdatedAt,
			&d.DepotName, &d.DepotNodeIdentifier,
		)
		if err != nil {
			return nil, fmt.Errorf("scan dispatch: %w", err)
		}
		d.ServiceTime = d.ServiceTime.UTC()
		d.NodeTime = d.NodeTime.UTC()
		out = append(out, &d)
	}
	return out, rows.Err()
}
