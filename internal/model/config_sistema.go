package model

import "time"

// PasoOnboarding is one step of the onboarding wizard copy shown to new users.
type PasoOnboarding struct {
	Titulo      string `json:"titulo"`
	Descripcion string `json:"descripcion"`
}

// ConfigSistema is the singleton system configuration record (always id=1):
// login screen copy, corporate email domain, onboarding steps and
// email-notification settings. Categories live in their own table.
//
// Older rows may predate some columns; ConfigService back-fills defaults on
// read instead of failing.
type ConfigSistema struct {
	ID                 int16  `gorm:"primaryKey"`
	TituloLogin        string `gorm:"not null;default:''"`
	SubtituloLogin     string `gorm:"not null;default:''"`
	DominioCorporativo string `gorm:"not null;default:''"`

	PasosOnboarding []PasoOnboarding `gorm:"serializer:json"`

	NotificacionesEmail  bool   `gorm:"not null;default:true"`
	RemitenteEmail       string `gorm:"not null;default:''"`
	AsuntoReconocimiento string `gorm:"not null;default:''"`
	RecordatorioActivo   bool   `gorm:"not null;default:true"`

	UpdatedAt time.Time
}

func (ConfigSistema) TableName() string { return "config_sistema" }
