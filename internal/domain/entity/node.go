package entity

import "time"

// Node representa un sensor o gateway instalado en un Depot.
type Node struct {
	ID           string
	ExternalCode string
	DepotID      string
	CreatedAt    time.Time
}
