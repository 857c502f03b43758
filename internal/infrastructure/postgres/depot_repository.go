package postgres

import (
	"context"
	"fmt"

	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/filter"
	"github.com/reefet/reefet-api/internal/domain/repository"
)

var _ repository.DepotRepository = (*DepotRepo)(nil)

var depotColumns = columns{
	filter.FieldID:        {expr: "id", kind: uuidColumn},
	filter.FieldName:      {expr: "name"},
	filter.FieldCompanyID: {expr: "company_id", kind: uuidColumn},
}

const depotSelect = `SELECT id, company_id, name, address, lat, lon, node_identifier, created_at FROM depots`

// DepotRepo implementación del puerto DepotRepository sobre PostgreSQL.
type DepotRepo struct {
	q Querier
}

// NewDepotRepository construye el adaptador. Acepta pool o tx.
func NewDepotRepository(q Querier) *DepotRepo {
	return &DepotRepo{q: q}
}

// Create persiste un depósito. La empresa inexistente llega como violación de FK.
func (r *DepotRepo) Create(ctx context.Context, d *entity.Depot) error {
	query := `
		INSERT INTO depots (id, company_id, name, address, lat, lon, node_identifier, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.CompanyID, d.Name, d.Address, d.Lat, d.Lon, d.NodeIdentifier, d.CreatedAt,
	)
	if err != nil {
		return writeError("insert depot", err)
	}
	return nil
}

func (r *DepotRepo) GetByID(ctx context.Context, id string) (*entity.Depot, error) {
	return r.getOne(ctx, depotSelect+` WHERE id = $1`, id)
}

// GetByNodeIdentifier busca por el tag que envía el firmware en identificadorNodo.
func (r *DepotRepo) GetByNodeIdentifier(ctx context.Context, tag string) (*entity.Depot, error) {
	return r.getOne(ctx, depotSelect+` WHERE node_identifier = $1`, tag)
}

func (r *DepotRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Depot, error) {
	out := make([]*entity.Depot, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, depotSelect+` WHERE id = ANY($1::uuid[]) ORDER BY name`, ids)
	if err != nil {
		return nil, fmt.Errorf("get depots: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		d, err := scanDepot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan depot: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DepotRepo) List(ctx context.Context, pred filter.Predicate, limit int) ([]entity.Ref, error) {
	return listRefs(ctx, r.q, "depots", "id", "name", depotColumns, pred, limit)
}

func (r *DepotRepo) getOne(ctx context.Context, query string, arg string) (*entity.Depot, error) {
	d, err := scanDepot(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get depot: %w", err)
	}
	return d, nil
}

func scanDepot(row pgxScanner) (*entity.Depot, error) {
	var d entity.Depot
	err := row.Scan(&d.ID, &d.CompanyID, &d.Name, &d.Address, &d.Lat, &d.Lon, &d.NodeIdentifier, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
