package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reefet/reefet-api/internal/application/dto"
	"github.com/reefet/reefet-api/internal/application/validation"
	"github.com/reefet/reefet-api/internal/domain"
	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/repository"
	"github.com/reefet/reefet-api/pkg/logger"
)

// IngestUseCase convierte un payload de campo en un Dispatch persistido con referencias resueltas.
type IngestUseCase struct {
	resolver Resolver
	lookup   Lookup
	repo     repository.DispatchRepository
	validate *validation.Validator
	log      *logger.Logger
	now      func() time.Time
}

// NewIngestUseCase construye el caso de uso para una estrategia fija.
func NewIngestUseCase(
	resolver Resolver,
	lookup Lookup,
	repo repository.DispatchRepository,
	validate *validation.Validator,
	log *logger.Logger,
) *IngestUseCase {
	return &IngestUseCase{
		resolver: resolver,
		lookup:   lookup,
		repo:     repo,
		validate: validate,
		log:      log.Component("ingest"),
		now:      time.Now,
	}
}

// Strategy devuelve la estrategia de resolución de este endpoint.
func (uc *IngestUseCase) Strategy() string { return uc.resolver.Strategy() }

// Ingest valida, resuelve y persiste. La validación ocurre antes de cualquier
// búsqueda o escritura; un fallo de resolución no deja nada escrito.
func (uc *IngestUseCase) Ingest(ctx context.Context, in dto.IngestDispatchRequest) (*dto.DispatchResponse, error) {
	in.NodeCode = strings.TrimSpace(in.NodeCode)
	in.DepotTag = strings.TrimSpace(in.DepotTag)
	in.ReeferID = strings.TrimSpace(in.ReeferID)
	in.Software = strings.TrimSpace(in.Software)
	if in.Brand != nil {
		b := strings.TrimSpace(*in.Brand)
		in.Brand = &b
		if b == "" {
			in.Brand = nil
		}
	}
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	if err := checkSetPoint(*in.SetPoint); err != nil {
		return nil, err
	}

	keys := Keys{NodeCode: in.NodeCode, DepotTag: in.DepotTag}
	refs, err := uc.resolver.Resolve(ctx, keys, uc.lookup)
	if err != nil {
		return nil, err
	}

	nodeCode := in.NodeCode
	if nodeCode == "" {
		nodeCode = in.DepotTag
	}
	serviceTime := in.ServiceTime.UTC()
	nodeTime := serviceTime
	if in.NodeTime != nil {
		nodeTime = in.NodeTime.UTC()
	}
	now := uc.now().UTC()
	d := &entity.Dispatch{
		ID:          uuid.New().String(),
		NodeCode:    nodeCode,
		ReeferID:    in.ReeferID,
		ServiceTime: serviceTime,
		NodeTime:    nodeTime,
		Brand:       in.Brand,
		SetPoint:    *in.SetPoint,
		Software:    in.Software,
		NodeID:      refs.NodeID,
		DepotID:     refs.DepotID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("guardar despacho: %w", err)
	}
	uc.log.Info().
		Str("dispatch_id", d.ID).
		Str("reefer", d.ReeferID).
		Str("depot_id", d.DepotID).
		Str("strategy", uc.resolver.Strategy()).
		Msg("despacho registrado")
	return ToDispatchResponse(d), nil
}

// maxSetPoint es el límite exclusivo de la columna NUMERIC(6,2).
var maxSetPoint = decimal.NewFromInt(10000)

// checkSetPoint exige |sp| < 10000 y como máximo dos decimales.
func checkSetPoint(sp decimal.Decimal) error {
	if sp.Abs().GreaterThanOrEqual(maxSetPoint) {
		return fmt.Errorf("%w: sp fuera de rango (debe ser menor que 10000 en valor absoluto)", domain.ErrValidation)
	}
	if !sp.Round(2).Equal(sp) {
		return fmt.Errorf("%w: sp admite como máximo 2 decimales", domain.ErrValidation)
	}
	return nil
}

// ToDispatchResponse proyecta un Dispatch a su forma JSON.
func ToDispatchResponse(d *entity.Dispatch) *dto.DispatchResponse {
	return &dto.DispatchResponse{
		ID:          d.ID,
		NodeCode:    d.NodeCode,
		ReeferID:    d.ReeferID,
		ServiceTime: d.ServiceTime,
		NodeTime:    d.NodeTime,
		Brand:       d.Brand,
		SetPoint:    d.SetPoint.InexactFloat64(),
		Software:    d.Software,
		NodeID:      d.NodeID,
		Depot: dto.DispatchDepot{
			ID:             d.DepotID,
			Name:           d.DepotName,
			NodeIdentifier: d.DepotNodeIdentifier,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
