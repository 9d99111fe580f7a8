package dto

import "github.com/cortese1982/Promipointssystemdevelopment/internal/model"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ActualizarConfigRequest updates the singleton system configuration.
// Nil fields are left untouched.
type ActualizarConfigRequest struct {
	TituloLogin        *string `json:"titulo_login"        validate:"omitempty,max=200"`
	SubtituloLogin     *string `json:"subtitulo_login"     validate:"omitempty,max=500"`
	DominioCorporativo *string `json:"dominio_corporativo" validate:"omitempty,fqdn"`

	PasosOnboarding *[]model.PasoOnboarding `json:"pasos_onboarding" validate:"omitempty,min=1,dive"`

	NotificacionesEmail  *bool   `json:"notificaciones_email"`
	RemitenteEmail       *string `json:"remitente_email"       validate:"omitempty,email"`
	AsuntoReconocimiento *string `json:"asunto_reconocimiento" validate:"omitempty,max=200"`
	RecordatorioActivo   *bool   `json:"recordatorio_activo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ConfigResponse struct {
	TituloLogin        string `json:"titulo_login"`
	SubtituloLogin     string `json:"subtitulo_login"`
	DominioCorporativo string `json:"dominio_corporativo"`

	PasosOnboarding []model.PasoOnboarding `json:"pasos_onboarding"`

	NotificacionesEmail  bool   `json:"notificaciones_email"`
	RemitenteEmail       string `json:"remitente_email"`
	AsuntoReconocimiento string `json:"asunto_reconocimiento"`
	RecordatorioActivo   bool   `json:"recordatorio_activo"`
}

// LoginScreenResponse is the public subset of the config needed to render the
// login page before authentication.
type LoginScreenResponse struct {
	TituloLogin        string `json:"titulo_login"`
	SubtituloLogin     string `json:"subtitulo_login"`
	DominioCorporativo string `json:"dominio_corporativo"`
}
