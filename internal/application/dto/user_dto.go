package dto

// RegisterRequest entrada para registro. El password solo existe en este cuerpo.
type RegisterRequest struct {
	Email       string   `json:"email" validate:"required,email,max=254"`
	Password    string   `json:"password" validate:"required,min=8,max=72"`
	DisplayName string   `json:"displayName" validate:"omitempty,max=200"`
	CompanyID   *string  `json:"companyId" validate:"omitempty,uuid"`
	DepotIDs    []string `json:"depotIds" validate:"omitempty,dive,uuid"`
	IsAdmin     bool     `json:"isAdmin"`
}

// UserSummary proyección segura del usuario (sin hash).
type UserSummary struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName"`
	IsAdmin     bool     `json:"isAdmin"`
	CompanyID   *string  `json:"companyId"`
	CompanyName *string  `json:"companyName,omitempty"`
	DepotIDs    []string `json:"depotIds"`
	DepotNames  []string `json:"depotNames,omitempty"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y usuario.
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// ClaimsResponse claims verificados del token en curso.
type ClaimsResponse struct {
	UserID    string   `json:"userId"`
	Email     string   `json:"email"`
	IsAdmin   bool     `json:"isAdmin"`
	CompanyID *string  `json:"companyId"`
	DepotIDs  []string `json:"depotIds"`
}
