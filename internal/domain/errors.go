package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Las capas superiores los envuelven con %w para añadir contexto; el router HTTP
// los traduce a códigos de estado con errors.Is.
var (
	ErrValidation   = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrConflict     = errors.New("conflicto con un recurso existente")
)
