package model

import (
	"time"

	"github.com/google/uuid"
)

// PresupuestoMensual is a user's point budget state for one month:
// how many points remain to give and how many were received.
// One row per (usuario, mes); created lazily on first access.
type PresupuestoMensual struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_presupuesto_usuario_mes"`
	Mes             string    `gorm:"type:varchar(7);not null;uniqueIndex:idx_presupuesto_usuario_mes"` // "2026-08"
	PuntosRestantes int       `gorm:"not null"`
	PuntosRecibidos int       `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

func (PresupuestoMensual) TableName() string { return "presupuestos_mensuales" }
