package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/reefet/reefet-api/internal/domain"
	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/filter"
	"github.com/reefet/reefet-api/internal/domain/repository"
)

var _ repository.DispatchRepository = (*DispatchRepo)(nil)

// DispatchRepo adaptador en memoria para Dispatch.
type DispatchRepo struct{ s *Store }

// NewDispatchRepository construye el adaptador sobre s.
func NewDispatchRepository(s *Store) *DispatchRepo { return &DispatchRepo{s: s} }

func (r *DispatchRepo) Create(ctx context.Context, d *entity.Dispatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.depots[d.DepotID]; !ok {
		return fmt.Errorf("%w: no existe el depósito %s", domain.ErrNotFound, d.DepotID)
	}
	if d.NodeID != nil {
		if _, ok := r.s.nodes[*d.NodeID]; !ok {
			return fmt.Errorf("%w: no existe el nodo %s", domain.ErrNotFound, *d.NodeID)
		}
	}
	if _, dup := r.s.dispatches[d.ID]; dup {
		return fmt.Errorf("%w: dispatches_pkey", domain.ErrConflict)
	}
	stored := *d
	stored.DepotName, stored.DepotNodeIdentifier = "", ""
	r.s.dispatches[d.ID] = stored
	return nil
}

func (r *DispatchRepo) Search(ctx context.Context, pred filter.Predicate, limit int) ([]*entity.Dispatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Dispatch, 0)
	for _, d := range r.s.dispatches {
		rec := filter.RecordFunc(func(f string) string {
			switch f {
			case filter.FieldID:
				return d.ID
			case filter.FieldDepotID:
				return d.DepotID
			case filter.FieldNodeCode:
				return d.NodeCode
			case filter.FieldReeferID:
				return d.ReeferID
			}
			return ""
		})
		if !filter.Matches(pred, rec) {
			continue
		}
		if dep, ok := r.s.depots[d.DepotID]; ok {
			d.DepotName, d.DepotNodeIdentifier = dep.Name, dep.NodeIdentifier
		}
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ServiceTime.Equal(out[j].ServiceTime) {
			return out[i].ID > out[j].ID
		}
		return out[i].ServiceTime.After(out[j].ServiceTime)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
