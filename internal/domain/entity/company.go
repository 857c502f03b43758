package entity

import "time"

// Company es la raíz del árbol de tenencia. Una vez referenciada por un Depot no se modifica.
type Company struct {
	ID        string
	Name      string
	TaxID     string // RUT / identificador fiscal
	CreatedAt time.Time
}
