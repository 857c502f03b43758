package dto

// ErrorResponse cuerpo de error HTTP. Detail solo se rellena fuera de producción.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// RefResponse proyección {id, name} de los listados administrativos.
type RefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
