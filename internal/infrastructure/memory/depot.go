package memory

import (
	"context"
	"fmt"

	"github.com/reefet/reefet-api/internal/domain"
	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/filter"
	"github.com/reefet/reefet-api/internal/domain/repository"
)

var _ repository.DepotRepository = (*DepotRepo)(nil)

// DepotRepo adaptador en memoria para Depot.
type DepotRepo struct{ s *Store }

// NewDepotRepository construye el adaptador sobre s.
func NewDepotRepository(s *Store) *DepotRepo { return &DepotRepo{s: s} }

func (r *DepotRepo) Create(_ context.Context, d *entity.Depot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[d.CompanyID]; !ok {
		return fmt.Errorf("%w: no existe la empresa %s", domain.ErrNotFound, d.CompanyID)
	}
	if err := r.s.reserve(d.ID, map[string]string{idxDepotName: d.Name, idxDepotNodeTag: d.NodeIdentifier}); err != nil {
		return err
	}
	r.s.depots[d.ID] = *d
	return nil
}

func (r *DepotRepo) GetByID(_ context.Context, id string) (*entity.Depot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.depots[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *DepotRepo) GetByNodeIdentifier(_ context.Context, tag string) (*entity.Depot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.unique[idxDepotNodeTag][tag]
	if !ok {
		return nil, nil
	}
	d := r.s.depots[id]
	return &d, nil
}

func (r *DepotRepo) GetByIDs(_ context.Context, ids []string) ([]*entity.Depot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Depot, 0, len(ids))
	for _, id := range ids {
		if d, ok := r.s.depots[id]; ok {
			out = append(out, &d)
		}
	}
	return out, nil
}

func (r *DepotRepo) List(_ context.Context, pred filter.Predicate, limit int) ([]entity.Ref, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return refsMatching(r.s.depots, pred, limit, func(d entity.Depot) (entity.Ref, filter.Record) {
		return entity.Ref{ID: d.ID, Name: d.Name}, filter.RecordFunc(func(f string) string {
			switch f {
			case filter.FieldID:
				return d.ID
			case filter.FieldName:
				return d.Name
			case filter.FieldCompanyID:
				return d.CompanyID
			}
			return ""
		})
	}), nil
}
