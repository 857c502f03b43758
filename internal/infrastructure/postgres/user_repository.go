package postgres

import (
	"context"
	"fmt"

	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userSelect = `
	SELECT id, email, password_hash, display_name, is_admin, company_id, depot_ids, created_at, updated_at
	FROM users`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. El email duplicado llega como users_email_key.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	depotIDs := u.DepotIDs
	if depotIDs == nil {
		depotIDs = []string{}
	}
	query := `
		INSERT INTO users (id, email, password_hash, display_name, is_admin, company_id, depot_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::uuid[], $8, $9)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.DisplayName, u.IsAdmin, u.CompanyID, depotIDs,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return writeError("insert user", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, userSelect+` WHERE id = $1`, id)
}

// GetByEmail espera el email ya normalizado.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, userSelect+` WHERE email = $1`, email)
}

func (r *UserRepo) getOne(ctx context.Context, query, arg string) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.IsAdmin, &u.CompanyID, &u.DepotIDs,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
