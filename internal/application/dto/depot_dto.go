package dto

import "time"

// CreateDepotRequest entrada para crear un depósito. Lat/Lon son punteros para distinguir 0 de ausente.
type CreateDepotRequest struct {
	Name           string   `json:"name" validate:"required,max=200"`
	Address        string   `json:"address" validate:"required,max=500"`
	Lat            *float64 `json:"lat" validate:"required,latitude"`
	Lon            *float64 `json:"lon" validate:"required,longitude"`
	CompanyID      string   `json:"companyId" validate:"required,uuid"`
	NodeIdentifier string   `json:"nodeIdentifier" validate:"required,max=100"`
}

// DepotResponse salida de un depósito.
type DepotResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Lat            float64   `json:"lat"`
	Lon            float64   `json:"lon"`
	CompanyID      string    `json:"companyId"`
	NodeIdentifier string    `json:"nodeIdentifier"`
	CreatedAt      time.Time `json:"createdAt"`
}
