package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Marcas de equipos reefer aceptadas.
const (
	BrandCarrier    = "Carrier"
	BrandTK         = "TK"
	BrandMitsubishi = "Mitsubishi"
	BrandDaikin     = "Daikin"
)

// Dispatch es un registro de telemetría de un contenedor reefer. Solo se inserta, nunca se actualiza.
type Dispatch struct {
	ID          string
	NodeCode    string
	ReeferID    string
	ServiceTime time.Time // UTC
	NodeTime    time.Time // UTC
	Brand       *string
	SetPoint    decimal.Decimal // °C
	Software    string
	NodeID      *string // nil cuando se resolvió por tag de depósito
	DepotID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Datos del depósito, rellenados solo en lecturas.
	DepotName           string
	DepotNodeIdentifier string
}
