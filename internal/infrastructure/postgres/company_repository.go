package postgres

import (
	"context"
	"fmt"

	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/filter"
	"github.com/reefet/reefet-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

var companyColumns = columns{
	filter.FieldID:   {expr: "id", kind: uuidColumn},
	filter.FieldName: {expr: "name"},
}

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas. Acepta pool o tx.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, tax_id, created_at)
		VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, query, c.ID, c.Name, c.TaxID, c.CreatedAt); err != nil {
		return writeError("insert company", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID. Devuelve (nil, nil) si no existe.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `SELECT id, name, tax_id, created_at FROM companies WHERE id = $1`
	var c entity.Company
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.TaxID, &c.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// List devuelve {id, name} ordenado por nombre.
func (r *CompanyRepo) List(ctx context.Context, pred filter.Predicate, limit int) ([]entity.Ref, error) {
	return listRefs(ctx, r.q, "companies", "id", "name", companyColumns, pred, limit)
}

// listRefs es la consulta común de los listados administrativos.
func listRefs(ctx context.Context, q Querier, table, idCol, nameCol string, cols columns, pred filter.Predicate, limit int) ([]entity.Ref, error) {
	b := newWhereBuilder(cols)
	where, err := b.build(pred)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s ORDER BY lower(%s), %s`,
		idCol, nameCol, table, where, nameCol, idCol)
	if limit > 0 {
		query += " LIMIT " + b.arg(limit)
	}
	rows, err := q.Query(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()
	out := make([]entity.Ref, 0)
	for rows.Next() {
		var ref entity.Ref
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}
