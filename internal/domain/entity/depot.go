package entity

import "time"

// Depot representa un depósito físico perteneciente a una Company.
// Es la unidad de granularidad del control de acceso.
type Depot struct {
	ID             string
	CompanyID      string
	Name           string
	Address        string
	Lat            float64
	Lon            float64
	NodeIdentifier string // tag externo usado por dispositivos legacy
	CreatedAt      time.Time
}
