package dto

import "time"

// CreateNodeRequest entrada para registrar un nodo.
type CreateNodeRequest struct {
	ExternalCode string `json:"externalCode" validate:"required,max=100"`
	DepotID      string `json:"depotId" validate:"required,uuid"`
}

// NodeResponse salida de un nodo con el nombre del depósito para confirmación.
type NodeResponse struct {
	ID           string    `json:"id"`
	ExternalCode string    `json:"externalCode"`
	DepotID      string    `json:"depotId"`
	DepotName    string    `json:"depotName"`
	CreatedAt    time.Time `json:"createdAt"`
}
