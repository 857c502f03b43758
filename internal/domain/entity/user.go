package entity

import "time"

// DefaultDisplayName se usa cuando el registro no trae nombre.
const DefaultDisplayName = "Usuario"

// User representa un usuario del sistema.
// Para usuarios no admin, DepotIDs es el conjunto exhaustivo de depósitos visibles.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	DisplayName  string
	IsAdmin      bool
	CompanyID    *string
	DepotIDs     []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
