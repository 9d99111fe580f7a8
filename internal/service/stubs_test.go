package service_test

import (
	"context"
	"errors"
	"time"

	"github.com/cortese1982/Promipointssystemdevelopment/internal/model"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repositories shared by the service tests. The Tx variants accept a
// nil *gorm.DB because services run in unit-test mode when DB() returns nil.

type presupuestoKey struct {
	usuarioID uuid.UUID
	mes       string
}

type stubPresupuestoRepo struct {
	presupuestos map[presupuestoKey]*model.PresupuestoMensual
}

func newStubPresupuestoRepo() *stubPresupuestoRepo {
	return &stubPresupuestoRepo{presupuestos: make(map[presupuestoKey]*model.PresupuestoMensual)}
}

func (r *stubPresupuestoRepo) DB() *gorm.DB { return nil }

func (r *stubPresupuestoRepo) Find(_ context.Context, usuarioID uuid.UUID, mes string) (*model.PresupuestoMensual, error) {
	p, ok := r.presupuestos[presupuestoKey{usuarioID, mes}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPresupuestoRepo) FindOrCreateTx(_ *gorm.DB, usuarioID uuid.UUID, mes string, puntosIniciales int) (*model.PresupuestoMensual, error) {
	key := presupuestoKey{usuarioID, mes}
	if p, ok := r.presupuestos[key]; ok {
		return p, nil
	}
	p := &model.PresupuestoMensual{
		ID:              uuid.New(),
		UsuarioID:       usuarioID,
		Mes:             mes,
		PuntosRestantes: puntosIniciales,
		PuntosRecibidos: 0,
	}
	r.presupuestos[key] = p
	return p, nil
}

// DebitarTx mirrors the guarded UPDATE of the real repo: the balance check and
// the decrement happen against the stored row, never against a caller's copy.
func (r *stubPresupuestoRepo) DebitarTx(_ *gorm.DB, id uuid.UUID, puntos int) (bool, error) {
	for _, stored := range r.presupuestos {
		if stored.ID == id {
			if stored.PuntosRestantes < puntos {
				return false, nil
			}
			stored.PuntosRestantes -= puntos
			return true, nil
		}
	}
	return false, nil
}

func (r *stubPresupuestoRepo) AcreditarTx(_ *gorm.DB, id uuid.UUID, puntos int) error {
	for _, stored := range r.presupuestos {
		if stored.ID == id {
			stored.PuntosRecibidos += puntos
			return nil
		}
	}
	return errors.New("presupuesto no encontrado")
}

func (r *stubPresupuestoRepo) UpdateTx(_ *gorm.DB, p *model.PresupuestoMensual) error {
	for key, stored := range r.presupuestos {
		if stored.ID == p.ID {
			r.presupuestos[key] = p
			return nil
		}
	}
	return errors.New("presupuesto no encontrado")
}

func (r *stubPresupuestoRepo) ListByMes(_ context.Context, mes string) ([]model.PresupuestoMensual, error) {
	var list []model.PresupuestoMensual
	for key, p := range r.presupuestos {
		if key.mes == mes {
			list = append(list, *p)
		}
	}
	return list, nil
}

func (r *stubPresupuestoRepo) ListConRestantes(_ context.Context, mes string) ([]model.PresupuestoMensual, error) {
	var list []model.PresupuestoMensual
	for key, p := range r.presupuestos {
		if key.mes == mes && p.PuntosRestantes > 0 {
			list = append(list, *p)
		}
	}
	return list, nil
}

var _ repository.PresupuestoRepository = (*stubPresupuestoRepo)(nil)

type stubReconRepo struct {
	recons []model.Reconocimiento
}

func (r *stubReconRepo) DB() *gorm.DB { return nil }

func (r *stubReconRepo) CreateTx(_ *gorm.DB, rec *model.Reconocimiento) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	r.recons = append(r.recons, *rec)
	return nil
}

func (r *stubReconRepo) ListByMes(_ context.Context, mes string) ([]model.Reconocimiento, error) {
	var list []model.Reconocimiento
	for _, rec := range r.recons {
		if rec.Mes == mes {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (r *stubReconRepo) ListRecibidos(_ context.Context, usuarioID uuid.UUID, mes string) ([]model.Reconocimiento, error) {
	var list []model.Reconocimiento
	for _, rec := range r.recons {
		if rec.ParaUsuarioID == usuarioID && rec.Mes == mes {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (r *stubReconRepo) ListEnviados(_ context.Context, usuarioID uuid.UUID, mes string) ([]model.Reconocimiento, error) {
	var list []model.Reconocimiento
	for _, rec := range r.recons {
		if rec.DeUsuarioID == usuarioID && rec.Mes == mes {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (r *stubReconRepo) DeleteByUsuarioMesTx(_ *gorm.DB, usuarioID uuid.UUID, mes string) error {
	kept := r.recons[:0]
	for _, rec := range r.recons {
		if rec.Mes == mes && (rec.DeUsuarioID == usuarioID || rec.ParaUsuarioID == usuarioID) {
			continue
		}
		kept = append(kept, rec)
	}
	r.recons = kept
	return nil
}

var _ repository.ReconocimientoRepository = (*stubReconRepo)(nil)

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email && u.Activo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var list []model.Usuario
	for _, u := range r.usuarios {
		if u.Activo {
			list = append(list, *u)
		}
	}
	return list, nil
}

func (r *stubUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) {
	var list []model.Usuario
	for _, u := range r.usuarios {
		list = append(list, *u)
	}
	return list, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = false
	return nil
}

func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = true
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

type stubCategoriaRepo struct {
	categorias map[uuid.UUID]*model.Categoria
}

func newStubCategoriaRepo() *stubCategoriaRepo {
	return &stubCategoriaRepo{categorias: make(map[uuid.UUID]*model.Categoria)}
}

func (r *stubCategoriaRepo) Crear(_ context.Context, c *model.Categoria) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categorias[c.ID] = c
	return nil
}

func (r *stubCategoriaRepo) Listar(_ context.Context) ([]model.Categoria, error) {
	var list []model.Categoria
	for _, c := range r.categorias {
		list = append(list, *c)
	}
	return list, nil
}

func (r *stubCategoriaRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoriaRepo) ObtenerPorNombre(_ context.Context, nombre string) (*model.Categoria, error) {
	for _, c := range r.categorias {
		if c.Nombre == nombre {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoriaRepo) Actualizar(_ context.Context, c *model.Categoria) error {
	r.categorias[c.ID] = c
	return nil
}

func (r *stubCategoriaRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	c, ok := r.categorias[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Activo = false
	return nil
}

var _ repository.CategoriaRepository = (*stubCategoriaRepo)(nil)

type stubConfigRepo struct {
	cfg *model.ConfigSistema
}

func (r *stubConfigRepo) Obtener(_ context.Context) (*model.ConfigSistema, error) {
	if r.cfg == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.cfg, nil
}

func (r *stubConfigRepo) Guardar(_ context.Context, c *model.ConfigSistema) error {
	r.cfg = c
	return nil
}

var _ repository.ConfigRepository = (*stubConfigRepo)(nil)

// fallaConfigRepo simula una base caída: toda lectura devuelve err.
type fallaConfigRepo struct {
	err      error
	guardado bool
}

func (r *fallaConfigRepo) Obtener(_ context.Context) (*model.ConfigSistema, error) {
	return nil, r.err
}

func (r *fallaConfigRepo) Guardar(_ context.Context, _ *model.ConfigSistema) error {
	r.guardado = true
	return nil
}

var _ repository.ConfigRepository = (*fallaConfigRepo)(nil)

// ── Seed helpers ──────────────────────────────────────────────────────────────

func seedUsuario(repo *stubUsuarioRepo, nombre, email, departamento, rol string) *model.Usuario {
	u := &model.Usuario{
		ID:           uuid.New(),
		Nombre:       nombre,
		Email:        email,
		Departamento: departamento,
		Rol:          rol,
		Activo:       true,
	}
	repo.usuarios[u.ID] = u
	return u
}

func seedCategoria(repo *stubCategoriaRepo, nombre string) *model.Categoria {
	c := &model.Categoria{
		ID:     uuid.New(),
		Nombre: nombre,
		Activo: true,
	}
	repo.categorias[c.ID] = c
	return c
}
