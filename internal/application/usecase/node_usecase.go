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

// NodeUseCase alta y listado de nodos.
type NodeUseCase struct {
	repo      repository.NodeRepository
	depotRepo repository.DepotRepository
	validate  *validation.Validator
}

// NewNodeUseCase construye el caso de uso.
func NewNodeUseCase(repo repository.NodeRepository, depotRepo repository.DepotRepository, validate *validation.Validator) *NodeUseCase {
	return &NodeUseCase{repo: repo, depotRepo: depotRepo, validate: validate}
}

// Create registra un nodo en un depósito existente.
func (uc *NodeUseCase) Create(ctx context.Context, in dto.CreateNodeRequest) (*dto.NodeResponse, error) {
	in.ExternalCode = strings.TrimSpace(in.ExternalCode)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	depot, err := uc.depotRepo.GetByID(ctx, in.DepotID)
	if err != nil {
		return nil, err
	}
	if depot == nil {
		return nil, fmt.Errorf("%w: el depósito %s no existe", domain.ErrNotFound, in.DepotID)
	}
	n := &entity.Node{
		ID:           uuid.New().String(),
		ExternalCode: in.ExternalCode,
		DepotID:      depot.ID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return &dto.NodeResponse{
		ID:           n.ID,
		ExternalCode: n.ExternalCode,
		DepotID:      n.DepotID,
		DepotName:    depot.Name,
		CreatedAt:    n.CreatedAt,
	}, nil
}

// List devuelve {id, name} de los nodos; name es el código externo.
func (uc *NodeUseCase) List(ctx context.Context, search string) ([]dto.RefResponse, error) {
	if err := filter.CheckTerm(search); err != nil {
		return nil, err
	}
	refs, err := uc.repo.List(ctx, filter.Compose(filter.All{}, search, filter.FieldName), MaxRefResults)
	if err != nil {
		return nil, err
	}
	return toRefResponses(refs), nil
}
