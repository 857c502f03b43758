package entity

// Principal son los claims verificados de un bearer token.
// Es la fuente de verdad del alcance durante toda la petición: no se vuelve a leer del store.
type Principal struct {
	UserID    string
	Email     string
	IsAdmin   bool
	CompanyID *string
	DepotIDs  []string
}
