package memory

import (
	"context"

	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/filter"
	"github.com/reefet/reefet-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo adaptador en memoria para Company.
type CompanyRepo struct{ s *Store }

// NewCompanyRepository construye el adaptador sobre s.
func NewCompanyRepository(s *Store) *CompanyRepo { return &CompanyRepo{s: s} }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.reserve(c.ID, map[string]string{idxCompanyName: c.Name, idxCompanyTaxID: c.TaxID}); err != nil {
		return err
	}
	r.s.companies[c.ID] = *c
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CompanyRepo) List(_ context.Context, pred filter.Predicate, limit int) ([]entity.Ref, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return refsMatching(r.s.companies, pred, limit, func(c entity.Company) (entity.Ref, filter.Record) {
		return entity.Ref{ID: c.ID, Name: c.Name}, filter.RecordFunc(func(f string) string {
			switch f {
			case filter.FieldID:
				return c.ID
			case filter.FieldName:
				return c.Name
			}
			return ""
		})
	}), nil
}
