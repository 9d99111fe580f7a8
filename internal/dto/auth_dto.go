package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CrearUsuarioRequest struct {
	Nombre       string `json:"nombre"       validate:"required,min=2,max=100"`
	Email        string `json:"email"        validate:"required,email"`
	Departamento string `json:"departamento" validate:"required,min=2,max=100"`
	Password     string `json:"password"     validate:"required,min=8"`
	Rol          string `json:"rol"          validate:"required,oneof=empleado people superadmin"`
}

type ActualizarUsuarioRequest struct {
	Nombre       string `json:"nombre"       validate:"omitempty,min=2,max=100"`
	Departamento string `json:"departamento" validate:"omitempty,min=2,max=100"`
	Rol          string `json:"rol"          validate:"omitempty,oneof=empleado people superadmin"`
	Password     string `json:"password"     validate:"omitempty,min=8"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID           string `json:"id"`
	Nombre       string `json:"nombre"`
	Email        string `json:"email"`
	Departamento string `json:"departamento"`
	Rol          string `json:"rol"`
	Activo       bool   `json:"activo"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"` // seconds
	User         UsuarioResponse `json:"user"`
}
