package repository

import (
	"context"

	"github.com/cortese1982/Promipointssystemdevelopment/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReconocimientoRepository interface {
	CreateTx(tx *gorm.DB, rec *model.Reconocimiento) error
	ListByMes(ctx context.Context, mes string) ([]model.Reconocimiento, error)
	ListRecibidos(ctx context.Context, usuarioID uuid.UUID, mes string) ([]model.Reconocimiento, error)
	ListEnviados(ctx context.Context, usuarioID uuid.UUID, mes string) ([]model.Reconocimiento, error)
	DeleteByUsuarioMesTx(tx *gorm.DB, usuarioID uuid.UUID, mes string) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type reconocimientoRepo struct{ db *gorm.DB }

func NewReconocimientoRepository(db *gorm.DB) ReconocimientoRepository {
	return &reconocimientoRepo{db: db}
}

func (r *reconocimientoRepo) DB() *gorm.DB { return r.db }

func (r *reconocimientoRepo) CreateTx(tx *gorm.DB, rec *model.Reconocimiento) error {
	return tx.Create(rec).Error
}

func (r *reconocimientoRepo) ListByMes(ctx context.Context, mes string) ([]model.Reconocimiento, error) {
	var list []model.Reconocimiento
	err := r.db.WithContext(ctx).
		Where("mes = ?", mes).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *reconocimientoRepo) ListRecibidos(ctx context.Context, usuarioID uuid.UUID, mes string) ([]model.Reconocimiento, error) {
	var list []model.Reconocimiento
	err := r.db.WithContext(ctx).
		Where("para_usuario_id = ? AND mes = ?", usuarioID, mes).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *reconocimientoRepo) ListEnviados(ctx context.Context, usuarioID uuid.UUID, mes string) ([]model.Reconocimiento, error) {
	var list []model.Reconocimiento
	err := r.db.WithContext(ctx).
		Preload("ParaUsuario").
		Where("de_usuario_id = ? AND mes = ?", usuarioID, mes).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// DeleteByUsuarioMesTx removes every row involving the user for the month,
// whether as sender or receiver. Only the admin total reset calls this.
func (r *reconocimientoRepo) DeleteByUsuarioMesTx(tx *gorm.DB, usuarioID uuid.UUID, mes string) error {
	return tx.
		Where("mes = ? AND (de_usuario_id = ? OR para_usuario_id = ?)", mes, usuarioID, usuarioID).
		Delete(&model.Reconocimiento{}).Error
}
