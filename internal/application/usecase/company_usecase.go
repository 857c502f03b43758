package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reefet/reefet-api/internal/application/dto"
	"github.com/reefet/reefet-api/internal/application/validation"
	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/filter"
	"github.com/reefet/reefet-api/internal/domain/repository"
)

// MaxRefResults tope de los listados administrativos {id, name}.
const MaxRefResults = 100

// CompanyUseCase alta y listado de empresas.
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	validate *validation.Validator
}

// NewCompanyUseCase construye el caso de uso inyectando el repositorio.
func NewCompanyUseCase(repo repository.CompanyRepository, validate *validation.Validator) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, validate: validate}
}

// Create registra una empresa. Nombre o RUT repetidos devuelven ErrConflict desde el store.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.TaxID = strings.TrimSpace(in.TaxID)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	c := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CompanyResponse{ID: c.ID, Name: c.Name, TaxID: c.TaxID, CreatedAt: c.CreatedAt}, nil
}

// List devuelve {id, name} de las empresas, opcionalmente filtradas por nombre.
func (uc *CompanyUseCase) List(ctx context.Context, search string) ([]dto.RefResponse, error) {
	if err := filter.CheckTerm(search); err != nil {
		return nil, err
	}
	refs, err := uc.repo.List(ctx, filter.Compose(filter.All{}, search, filter.FieldName), MaxRefResults)
	if err != nil {
		return nil, err
	}
	return toRefResponses(refs), nil
}

func toRefResponses(refs []entity.Ref) []dto.RefResponse {
	out := make([]dto.RefResponse, 0, len(refs))
	for _, r := range refs {
		out = append(out, dto.RefResponse{ID: r.ID, Name: r.Name})
	}
	return out
}
