package repository

import (
	"context"

	"github.com/cortese1982/Promipointssystemdevelopment/internal/model"

	"gorm.io/gorm"
)

// configSistemaID is the primary key of the singleton row.
const configSistemaID int16 = 1

type ConfigRepository interface {
	Obtener(ctx context.Context) (*model.ConfigSistema, error)
	Guardar(ctx context.Context, c *model.ConfigSistema) error
}

type configRepo struct{ db *gorm.DB }

func NewConfigRepository(db *gorm.DB) ConfigRepository { return &configRepo{db: db} }

func (r *configRepo) Obtener(ctx context.Context) (*model.ConfigSistema, error) {
	var c model.ConfigSistema
	err := r.db.WithContext(ctx).First(&c, "id = ?", configSistemaID).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *configRepo) Guardar(ctx context.Context, c *model.ConfigSistema) error {
	c.ID = configSistemaID
	return r.db.WithContext(ctx).Save(c).Error
}
