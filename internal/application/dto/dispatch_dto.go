package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// IngestDispatchRequest payload que envían los nodos de campo. Los nombres JSON
// son los del firmware y no se pueden cambiar.
type IngestDispatchRequest struct {
	NodeCode    string           `json:"idNodo" validate:"omitempty,max=100"`
	DepotTag    string           `json:"identificadorNodo" validate:"omitempty,max=100"`
	ReeferID    string           `json:"idReefer" validate:"required,max=100"`
	ServiceTime *time.Time       `json:"tServ" validate:"required"`
	NodeTime    *time.Time       `json:"tNodo"`
	Brand       *string          `json:"marca" validate:"omitempty,oneof=Carrier TK Mitsubishi Daikin"`
	SetPoint    *decimal.Decimal `json:"sp" validate:"required"`
	Software    string           `json:"sw" validate:"required,max=50"`
}

// DispatchDepot datos del depósito incluidos en cada despacho listado.
type DispatchDepot struct {
	ID             string `json:"id"`
	Name           string `json:"name,omitempty"`
	NodeIdentifier string `json:"nodeIdentifier,omitempty"`
}

// DispatchResponse salida de un despacho.
type DispatchResponse struct {
	ID          string        `json:"id"`
	NodeCode    string        `json:"nodeCode"`
	ReeferID    string        `json:"reeferId"`
	ServiceTime time.Time     `json:"serviceTime"`
	NodeTime    time.Time     `json:"nodeTime"`
	Brand       *string       `json:"brand,omitempty"`
	SetPoint    float64       `json:"setPoint"`
	Software    string        `json:"software"`
	NodeID      *string       `json:"nodeId"`
	Depot       DispatchDepot `json:"depot"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}
