package memory

import (
	"context"
	"fmt"

	"github.com/reefet/reefet-api/internal/domain"
	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo adaptador en memoria para User.
type UserRepo struct{ s *Store }

// NewUserRepository construye el adaptador sobre s.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u.CompanyID != nil {
		if _, ok := r.s.companies[*u.CompanyID]; !ok {
			return fmt.Errorf("%w: no existe la empresa %s", domain.ErrNotFound, *u.CompanyID)
		}
	}
	if err := r.s.reserve(u.ID, map[string]string{idxUserEmail: u.Email}); err != nil {
		return err
	}
	stored := *u
	stored.DepotIDs = append([]string(nil), u.DepotIDs...)
	r.s.users[u.ID] = stored
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	u.DepotIDs = append([]string(nil), u.DepotIDs...)
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	id, ok := r.s.unique[idxUserEmail][email]
	r.s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}
