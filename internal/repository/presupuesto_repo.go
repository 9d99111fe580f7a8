package repository

import (
	"context"

	"github.com/cortese1982/Promipointssystemdevelopment/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PresupuestoRepository manages the per-user monthly point budgets.
// Tx variants participate in a transaction opened by the service layer.
type PresupuestoRepository interface {
	Find(ctx context.Context, usuarioID uuid.UUID, mes string) (*model.PresupuestoMensual, error)
	FindOrCreateTx(tx *gorm.DB, usuarioID uuid.UUID, mes string, puntosIniciales int) (*model.PresupuestoMensual, error)
	// DebitarTx atomically spends puntos from the budget. Returns false when
	// the remaining balance was insufficient (no row modified).
	DebitarTx(tx *gorm.DB, id uuid.UUID, puntos int) (bool, error)
	// AcreditarTx atomically adds puntos to the budget's received counter.
	AcreditarTx(tx *gorm.DB, id uuid.UUID, puntos int) error
	UpdateTx(tx *gorm.DB, p *model.PresupuestoMensual) error
	ListByMes(ctx context.Context, mes string) ([]model.PresupuestoMensual, error)
	ListConRestantes(ctx context.Context, mes string) ([]model.PresupuestoMensual, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type presupuestoRepo struct{ db *gorm.DB }

func NewPresupuestoRepository(db *gorm.DB) PresupuestoRepository {
	return &presupuestoRepo{db: db}
}

func (r *presupuestoRepo) DB() *gorm.DB { return r.db }

func (r *presupuestoRepo) Find(ctx context.Context, usuarioID uuid.UUID, mes string) (*model.PresupuestoMensual, error) {
	var p model.PresupuestoMensual
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND mes = ?", usuarioID, mes).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *presupuestoRepo) FindOrCreateTx(tx *gorm.DB, usuarioID uuid.UUID, mes string, puntosIniciales int) (*model.PresupuestoMensual, error) {
	var p model.PresupuestoMensual
	err := tx.
		Where(model.PresupuestoMensual{UsuarioID: usuarioID, Mes: mes}).
		Attrs(model.PresupuestoMensual{PuntosRestantes: puntosIniciales, PuntosRecibidos: 0}).
		FirstOrCreate(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// The guarded UPDATE makes the balance check and the debit one statement, so
// two concurrent reconocimientos can never overspend the same budget.
func (r *presupuestoRepo) DebitarTx(tx *gorm.DB, id uuid.UUID, puntos int) (bool, error) {
	res := tx.Model(&model.PresupuestoMensual{}).
		Where("id = ? AND puntos_restantes >= ?", id, puntos).
		Update("puntos_restantes", gorm.Expr("puntos_restantes - ?", puntos))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *presupuestoRepo) AcreditarTx(tx *gorm.DB, id uuid.UUID, puntos int) error {
	return tx.Model(&model.PresupuestoMensual{}).
		Where("id = ?", id).
		Update("puntos_recibidos", gorm.Expr("puntos_recibidos + ?", puntos)).Error
}

// UpdateTx writes absolute values. Reserved for the admin reset, where the
// budget is restored to a fixed state rather than adjusted by a delta.
func (r *presupuestoRepo) UpdateTx(tx *gorm.DB, p *model.PresupuestoMensual) error {
	return tx.Model(&model.PresupuestoMensual{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"puntos_restantes": p.PuntosRestantes,
			"puntos_recibidos": p.PuntosRecibidos,
		}).Error
}

func (r *presupuestoRepo) ListByMes(ctx context.Context, mes string) ([]model.PresupuestoMensual, error) {
	var list []model.PresupuestoMensual
	err := r.db.WithContext(ctx).Where("mes = ?", mes).Find(&list).Error
	return list, err
}

// ListConRestantes returns budgets with unspent points for the month, with the
// owning user preloaded. Used by the reminder cron.
func (r *presupuestoRepo) ListConRestantes(ctx context.Context, mes string) ([]model.PresupuestoMensual, error) {
	var list []model.PresupuestoMensual
	err := r.db.WithContext(ctx).
		Preload("Usuario").
		Where("mes = ? AND puntos_restantes > 0", mes).
		Find(&list).Error
	return list, err
}
