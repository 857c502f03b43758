package usecase

import (
	"context"

	"github.com/reefet/reefet-api/internal/application/dto"
	"github.com/reefet/reefet-api/internal/application/ingest"
	"github.com/reefet/reefet-api/internal/application/scope"
	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/filter"
	"github.com/reefet/reefet-api/internal/domain/repository"
)

// DispatchUseCase listado de despachos con alcance. Es el único punto de entrada
// de lectura de Dispatch.
type DispatchUseCase struct {
	repo repository.DispatchRepository
}

// NewDispatchUseCase construye el caso de uso.
func NewDispatchUseCase(repo repository.DispatchRepository) *DispatchUseCase {
	return &DispatchUseCase{repo: repo}
}

// List devuelve como máximo scope.MaxResults despachos visibles para p, más recientes primero.
// Un usuario no admin sin depósitos recibe una lista vacía sin consultar el store.
func (uc *DispatchUseCase) List(ctx context.Context, p entity.Principal, search string) ([]dto.DispatchResponse, error) {
	if err := filter.CheckTerm(search); err != nil {
		return nil, err
	}
	pred, ok := scope.DispatchFilter(p, search)
	if !ok {
		return []dto.DispatchResponse{}, nil
	}
	list, err := uc.repo.Search(ctx, pred, scope.MaxResults)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DispatchResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *ingest.ToDispatchResponse(d))
	}
	return out, nil
}
