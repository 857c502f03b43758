package entity

// Ref es la proyección {id, name} que devuelven los listados administrativos.
type Ref struct {
	ID   string
	Name string
}
