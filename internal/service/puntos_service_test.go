package service_test

import (
	"context"
	"testing"

	"github.com/cortese1982/Promipointssystemdevelopment/internal/dto"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/model"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func buildPuntosSvc() (service.PuntosService, *stubPresupuestoRepo, *stubReconRepo, *stubUsuarioRepo, *stubCategoriaRepo) {
	presupuestoRepo := newStubPresupuestoRepo()
	reconRepo := &stubReconRepo{}
	usuarioRepo := newStubUsuarioRepo()
	categoriaRepo := newStubCategoriaRepo()
	configRepo := &stubConfigRepo{}

	svc := service.NewPuntosService(presupuestoRepo, reconRepo, usuarioRepo, categoriaRepo, configRepo, nil, nil)
	return svc, presupuestoRepo, reconRepo, usuarioRepo, categoriaRepo
}

func TestEnsurePresupuesto_AsignacionInicial(t *testing.T) {
	svc, _, _, usuarioRepo, _ := buildPuntosSvc()
	u := seedUsuario(usuarioRepo, "María García", "maria@promipoints.com", "Ingeniería", "empleado")

	p, err := svc.EnsurePresupuesto(context.Background(), u.ID, "2026-08")
	require.NoError(t, err)
	assert.Equal(t, "2026-08", p.Mes)
	assert.Equal(t, 10, p.PuntosRestantes)
	assert.Equal(t, 0, p.PuntosRecibidos)
}

func TestEnsurePresupuesto_Idempotente(t *testing.T) {
	svc, presupuestoRepo, _, usuarioRepo, _ := buildPuntosSvc()
	u := seedUsuario(usuarioRepo, "María García", "maria@promipoints.com", "Ingeniería", "empleado")

	_, err := svc.EnsurePresupuesto(context.Background(), u.ID, "2026-08")
	require.NoError(t, err)
	_, err = svc.EnsurePresupuesto(context.Background(), u.ID, "2026-08")
	require.NoError(t, err)

	assert.Len(t, presupuestoRepo.presupuestos, 1)
}

func TestReconocer_TransferenciaValida(t *testing.T) {
	svc, presupuestoRepo, reconRepo, usuarioRepo, categoriaRepo := buildPuntosSvc()
	juan := seedUsuario(usuarioRepo, "Juan Pérez", "juan@promipoints.com", "Ventas", "empleado")
	maria := seedUsuario(usuarioRepo, "María García", "maria@promipoints.com", "Ingeniería", "empleado")
	seedCategoria(categoriaRepo, "Trabajo en equipo")

	resp, err := svc.Reconocer(context.Background(), juan.ID, dto.CrearReconocimientoRequest{
		ParaUsuarioID: maria.ID.String(),
		Puntos:        3,
		Categoria:     "Trabajo en equipo",
	})
	require.NoError(t, err)
	assert.Equal(t, "María García", resp.ParaUsuario)
	assert.Equal(t, 3, resp.Puntos)

	mes := service.MesActual()
	emisor, err := presupuestoRepo.Find(context.Background(), juan.ID, mes)
	require.NoError(t, err)
	assert.Equal(t, 7, emisor.PuntosRestantes)

	receptor, err := presupuestoRepo.Find(context.Background(), maria.ID, mes)
	require.NoError(t, err)
	assert.Equal(t, 3, receptor.PuntosRecibidos)
	assert.Equal(t, 10, receptor.PuntosRestantes)

	assert.Len(t, reconRepo.recons, 1)
	assert.Equal(t, juan.ID, reconRepo.recons[0].DeUsuarioID)
	assert.Equal(t, maria.ID, reconRepo.recons[0].ParaUsuarioID)
}

func TestReconocer_PuntosInsuficientes(t *testing.T) {
	svc, presupuestoRepo, reconRepo, usuarioRepo, categoriaRepo := buildPuntosSvc()
	juan := seedUsuario(usuarioRepo, "Juan Pérez", "juan@promipoints.com", "Ventas", "empleado")
	maria := seedUsuario(usuarioRepo, "María García", "maria@promipoints.com", "Ingeniería", "empleado")
	seedCategoria(categoriaRepo, "Innovación")

	// Spend 8 points first, then try to give 5 more.
	_, err := svc.Reconocer(context.Background(), juan.ID, dto.CrearReconocimientoRequest{
		ParaUsuarioID: maria.ID.String(),
		Puntos:        8,
		Categoria:     "Innovación",
	})
	require.NoError(t, err)

	_, err = svc.Reconocer(context.Background(), juan.ID, dto.CrearReconocimientoRequest{
		ParaUsuarioID: maria.ID.String(),
		Puntos:        5,
		Categoria:     "Innovación",
	})
	assert.ErrorContains(t, err, "puntos insuficientes")

	// Nothing was mutated by the rejected attempt.
	mes := service.MesActual()
	emisor, _ := presupuestoRepo.Find(context.Background(), juan.ID, mes)
	assert.Equal(t, 2, emisor.PuntosRestantes)
	receptor, _ := presupuestoRepo.Find(context.Background(), maria.ID, mes)
	assert.Equal(t, 8, receptor.PuntosRecibidos)
	assert.Len(t, reconRepo.recons, 1)
}

// lecturaDesactualizadaRepo devuelve al emisor un saldo ya viejo, como le
// ocurre a una transacción que leyó el presupuesto antes de que otra
// confirmara su débito.
type lecturaDesactualizadaRepo struct {
	*stubPresupuestoRepo
	emisor uuid.UUID
}

func (r *lecturaDesactualizadaRepo) FindOrCreateTx(tx *gorm.DB, usuarioID uuid.UUID, mes string, puntosIniciales int) (*model.PresupuestoMensual, error) {
	p, err := r.stubPresupuestoRepo.FindOrCreateTx(tx, usuarioID, mes, puntosIniciales)
	if err != nil || usuarioID != r.emisor {
		return p, err
	}
	copia := *p
	copia.PuntosRestantes = puntosIniciales
	return &copia, nil
}

func TestReconocer_SaldoDesactualizadoNoSobregira(t *testing.T) {
	// El débito decide contra el saldo almacenado, no contra la lectura
	// previa: dos envíos concurrentes nunca pueden gastar más de 10.
	presupuestoRepo := newStubPresupuestoRepo()
	reconRepo := &stubReconRepo{}
	usuarioRepo := newStubUsuarioRepo()
	categoriaRepo := newStubCategoriaRepo()
	juan := seedUsuario(usuarioRepo, "Juan Pérez", "juan@promipoints.com", "Ventas", "empleado")
	maria := seedUsuario(usuarioRepo, "María García", "maria@promipoints.com", "Ingeniería", "empleado")
	seedCategoria(categoriaRepo, "Trabajo en equipo")

	mes := service.MesActual()
	p, err := presupuestoRepo.FindOrCreateTx(nil, juan.ID, mes, 10)
	require.NoError(t, err)
	p.PuntosRestantes = 4 // otro envío ya gastó 6

	stale := &lecturaDesactualizadaRepo{stubPresupuestoRepo: presupuestoRepo, emisor: juan.ID}
	svc := service.NewPuntosService(stale, reconRepo, usuarioRepo, categoriaRepo, &stubConfigRepo{}, nil, nil)

	_, err = svc.Reconocer(context.Background(), juan.ID, dto.CrearReconocimientoRequest{
		ParaUsuarioID: maria.ID.String(),
		Puntos:        7,
		Categoria:     "Trabajo en equipo",
	})
	assert.ErrorContains(t, err, "puntos insuficientes")

	stored, err := presupuestoRepo.Find(context.Background(), juan.ID, mes)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.PuntosRestantes)
	receptor, err := presupuestoRepo.Find(context.Background(), maria.ID, mes)
	require.NoError(t, err)
	assert.Equal(t, 0, receptor.PuntosRecibidos)
	assert.Empty(t, reconRepo.recons)
}

func TestReconocer_AutoReconocimientoRechazado(t *testing.T) {
	svc, _, _, usuarioRepo, categoriaRepo := buildPuntosSvc()
	juan := seedUsuario(usuarioRepo, "Juan Pérez", "juan@promipoints.com", "Ventas", "empleado")
	seedCategoria(categoriaRepo, "Liderazgo")

	_, err := svc.Reconocer(context.Background(), juan.ID, dto.CrearReconocimientoRequest{
		ParaUsuarioID: juan.ID.String(),
		Puntos:        2,
		Categoria:     "Liderazgo",
	})
	assert.ErrorContains(t, err, "a ti mismo")
}

func TestReconocer_DestinatarioInactivo(t *testing.T) {
	svc, _, _, usuarioRepo, categoriaRepo := buildPuntosSvc()
	juan := seedUsuario(usuarioRepo, "Juan Pérez", "juan@promipoints.com", "Ventas", "empleado")
	baja := seedUsuario(usuarioRepo, "Ex Empleado", "ex@promipoints.com", "Ventas", "empleado")
	baja.Activo = false
	seedCategoria(categoriaRepo, "Liderazgo")

	_, err := svc.Reconocer(context.Background(), juan.ID, dto.CrearReconocimientoRequest{
		ParaUsuarioID: baja.ID.String(),
		Puntos:        2,
		Categoria:     "Liderazgo",
	})
	assert.ErrorContains(t, err, "destinatario no encontrado")
}

func TestReconocer_CategoriaDeshabilitada(t *testing.T) {
	svc, _, _, usuarioRepo, categoriaRepo := buildPuntosSvc()
	juan := seedUsuario(usuarioRepo, "Juan Pérez", "juan@promipoints.com", "Ventas", "empleado")
	maria := seedUsuario(usuarioRepo, "María García", "maria@promipoints.com", "Ingeniería", "empleado")
	cat := seedCategoria(categoriaRepo, "Liderazgo")
	cat.Activo = false

	_, err := svc.Reconocer(context.Background(), juan.ID, dto.CrearReconocimientoRequest{
		ParaUsuarioID: maria.ID.String(),
		Puntos:        2,
		Categoria:     "Liderazgo",
	})
	assert.ErrorContains(t, err, "deshabilitada")
}

func TestReconocer_CategoriaInexistente(t *testing.T) {
	svc, _, _, usuarioRepo, _ := buildPuntosSvc()
	juan := seedUsuario(usuarioRepo, "Juan Pérez", "juan@promipoints.com", "Ventas", "empleado")
	maria := seedUsuario(usuarioRepo, "María García", "maria@promipoints.com", "Ingeniería", "empleado")

	_, err := svc.Reconocer(context.Background(), juan.ID, dto.CrearReconocimientoRequest{
		ParaUsuarioID: maria.ID.String(),
		Puntos:        2,
		Categoria:     "No existe",
	})
	assert.ErrorContains(t, err, "categoría no encontrada")
}

func TestRecibidos_NoExponeRemitente(t *testing.T) {
	svc, _, _, usuarioRepo, categoriaRepo := buildPuntosSvc()
	juan := seedUsuario(usuarioRepo, "Juan Pérez", "juan@promipoints.com", "Ventas", "empleado")
	maria := seedUsuario(usuarioRepo, "María García", "maria@promipoints.com", "Ingeniería", "empleado")
	seedCategoria(categoriaRepo, "Trabajo en equipo")

	msg := "¡Gran trabajo en el release!"
	_, err := svc.Reconocer(context.Background(), juan.ID, dto.CrearReconocimientoRequest{
		ParaUsuarioID: maria.ID.String(),
		Puntos:        4,
		Categoria:     "Trabajo en equipo",
		Mensaje:       &msg,
	})
	require.NoError(t, err)

	recibidos, err := svc.Recibidos(context.Background(), maria.ID, service.MesActual())
	require.NoError(t, err)
	require.Len(t, recibidos, 1)
	assert.Equal(t, 4, recibidos[0].Puntos)
	assert.Equal(t, "Trabajo en equipo", recibidos[0].Categoria)
	require.NotNil(t, recibidos[0].Mensaje)
	assert.Equal(t, msg, *recibidos[0].Mensaje)
}

func TestEnviados_IncluyeDestinatario(t *testing.T) {
	svc, _, reconRepo, usuarioRepo, categoriaRepo := buildPuntosSvc()
	juan := seedUsuario(usuarioRepo, "Juan Pérez", "juan@promipoints.com", "Ventas", "empleado")
	maria := seedUsuario(usuarioRepo, "María García", "maria@promipoints.com", "Ingeniería", "empleado")
	seedCategoria(categoriaRepo, "Trabajo en equipo")

	_, err := svc.Reconocer(context.Background(), juan.ID, dto.CrearReconocimientoRequest{
		ParaUsuarioID: maria.ID.String(),
		Puntos:        2,
		Categoria:     "Trabajo en equipo",
	})
	require.NoError(t, err)

	// ListEnviados on the real repo preloads ParaUsuario; mimic that here.
	reconRepo.recons[0].ParaUsuario = maria

	enviados, err := svc.Enviados(context.Background(), juan.ID, service.MesActual())
	require.NoError(t, err)
	require.Len(t, enviados, 1)
	assert.Equal(t, "María García", enviados[0].ParaUsuario)
}

func TestResetTotal_RestauraPresupuesto(t *testing.T) {
	svc, presupuestoRepo, reconRepo, usuarioRepo, categoriaRepo := buildPuntosSvc()
	juan := seedUsuario(usuarioRepo, "Juan Pérez", "juan@promipoints.com", "Ventas", "empleado")
	maria := seedUsuario(usuarioRepo, "María García", "maria@promipoints.com", "Ingeniería", "empleado")
	seedCategoria(categoriaRepo, "Trabajo en equipo")

	mes := service.MesActual()
	_, err := svc.Reconocer(context.Background(), juan.ID, dto.CrearReconocimientoRequest{
		ParaUsuarioID: maria.ID.String(),
		Puntos:        6,
		Categoria:     "Trabajo en equipo",
	})
	require.NoError(t, err)

	require.NoError(t, svc.ResetTotal(context.Background(), juan.ID, mes))

	// Juan's ledger is back at the initial state.
	p, err := presupuestoRepo.Find(context.Background(), juan.ID, mes)
	require.NoError(t, err)
	assert.Equal(t, 10, p.PuntosRestantes)
	assert.Equal(t, 0, p.PuntosRecibidos)

	// His reconocimientos for the month are gone.
	assert.Empty(t, reconRepo.recons)

	// María's balances are left untouched.
	m, err := presupuestoRepo.Find(context.Background(), maria.ID, mes)
	require.NoError(t, err)
	assert.Equal(t, 6, m.PuntosRecibidos)
}

func TestResetTotal_UsuarioInexistente(t *testing.T) {
	svc, _, _, _, _ := buildPuntosSvc()
	err := svc.ResetTotal(context.Background(), uuid.New(), "2026-08")
	assert.ErrorContains(t, err, "usuario no encontrado")
}
