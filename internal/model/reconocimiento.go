package model

import (
	"time"

	"github.com/google/uuid"
)

// Reconocimiento is one point transfer between two users: an immutable,
// append-only event record. Together with the presupuesto balances it forms
// the monthly ledger; rows are only ever removed by an explicit admin reset.
type Reconocimiento struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DeUsuarioID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ParaUsuarioID uuid.UUID `gorm:"type:uuid;not null;index"`
	Puntos        int       `gorm:"not null"`
	Categoria     string    `gorm:"not null"`
	Mensaje       *string
	Mes           string `gorm:"type:varchar(7);not null;index"` // "2026-08"
	CreatedAt     time.Time

	DeUsuario   *Usuario `gorm:"foreignKey:DeUsuarioID"`
	ParaUsuario *Usuario `gorm:"foreignKey:ParaUsuarioID"`
}

func (Reconocimiento) TableName() string { return "reconocimientos" }
