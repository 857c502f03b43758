package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reefet/reefet-api/internal/application/dto"
	"github.com/reefet/reefet-api/internal/application/validation"
	"github.com/reefet/reefet-api/internal/domain"
	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/filter"
	"github.com/reefet/reefet-api/internal/domain/repository"
)

// DepotUseCase alta y listado de depósitos.
type DepotUseCase struct {
	repo        repository.DepotRepository
	companyRepo repository.CompanyRepository
	validate    *validation.Validator
}

// NewDepotUseCase construye el caso de uso.
func NewDepotUseCase(repo repository.DepotRepository, companyRepo repository.CompanyRepository, validate *validation.Validator) *DepotUseCase {
	return &DepotUseCase{repo: repo, companyRepo: companyRepo, validate: validate}
}

// Create registra un depósito de una empresa existente.
// Empresa inexistente: ErrNotFound y no se persiste nada.
func (uc *DepotUseCase) Create(ctx context.Context, in dto.CreateDepotRequest) (*dto.DepotResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.NodeIdentifier = strings.TrimSpace(in.NodeIdentifier)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("%w: la empresa %s no existe", domain.ErrNotFound, in.CompanyID)
	}
	d := &entity.Depot{
		ID:             uuid.New().String(),
		CompanyID:      company.ID,
		Name:           in.Name,
		Address:        in.Address,
		Lat:            *in.Lat,
		Lon:            *in.Lon,
		NodeIdentifier: in.NodeIdentifier,
		CreatedAt:      time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return &dto.DepotResponse{
		ID:             d.ID,
		Name:           d.Name,
		Address:        d.Address,
		Lat:            d.Lat,
		Lon:            d.Lon,
		CompanyID:      d.CompanyID,
		NodeIdentifier: d.NodeIdentifier,
		CreatedAt:      d.CreatedAt,
	}, nil
}

// List devuelve {id, name} de los depósitos.
func (uc *DepotUseCase) List(ctx context.Context, search string) ([]dto.RefResponse, error) {
	if err := filter.CheckTerm(search); err != nil {
		return nil, err
	}
	refs, err := uc.repo.List(ctx, filter.Compose(filter.All{}, search, filter.FieldName), MaxRefResults)
	if err != nil {
		return nil, err
	}
	return toRefResponses(refs), nil
}
