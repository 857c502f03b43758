package memory

import (
	"context"
	"fmt"

	"github.com/reefet/reefet-api/internal/domain"
	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/filter"
	"github.com/reefet/reefet-api/internal/domain/repository"
)

var _ repository.NodeRepository = (*NodeRepo)(nil)

// NodeRepo adaptador en memoria para Node.
type NodeRepo struct{ s *Store }

// NewNodeRepository construye el adaptador sobre s.
func NewNodeRepository(s *Store) *NodeRepo { return &NodeRepo{s: s} }

func (r *NodeRepo) Create(_ context.Context, n *entity.Node) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.depots[n.DepotID]; !ok {
		return fmt.Errorf("%w: no existe el depósito %s", domain.ErrNotFound, n.DepotID)
	}
	if err := r.s.reserve(n.ID, map[string]string{idxNodeExternalID: n.ExternalCode}); err != nil {
		return err
	}
	r.s.nodes[n.ID] = *n
	return nil
}

func (r *NodeRepo) GetByExternalCode(_ context.Context, code string) (*entity.Node, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.unique[idxNodeExternalID][code]
	if !ok {
		return nil, nil
	}
	n := r.s.nodes[id]
	return &n, nil
}

func (r *NodeRepo) List(_ context.Context, pred filter.Predicate, limit int) ([]entity.Ref, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return refsMatching(r.s.nodes, pred, limit, func(n entity.Node) (entity.Ref, filter.Record) {
		return entity.Ref{ID: n.ID, Name: n.ExternalCode}, filter.RecordFunc(func(f string) string {
			switch f {
			case filter.FieldID:
				return n.ID
			case filter.FieldName, filter.FieldNodeCode:
				return n.ExternalCode
			case filter.FieldDepotID:
				return n.DepotID
			}
			return ""
		})
	}), nil
}
