package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cortese1982/Promipointssystemdevelopment/internal/dto"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/model"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigObtener_SinFilaDevuelveDefaults(t *testing.T) {
	svc := service.NewConfigService(&stubConfigRepo{}, nil)

	cfg, err := svc.Obtener(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "PromiPoints", cfg.TituloLogin)
	assert.Equal(t, "promipoints.com", cfg.DominioCorporativo)
	assert.NotEmpty(t, cfg.PasosOnboarding)
	assert.NotEmpty(t, cfg.RemitenteEmail)
}

func TestConfigObtener_RellenaCamposVacios(t *testing.T) {
	// A row saved by an older version may miss newer fields; these get
	// back-filled while populated fields stay as stored.
	repo := &stubConfigRepo{cfg: &model.ConfigSistema{
		TituloLogin:        "Reconocimientos ACME",
		DominioCorporativo: "acme.com",
	}}
	svc := service.NewConfigService(repo, nil)

	cfg, err := svc.Obtener(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Reconocimientos ACME", cfg.TituloLogin)
	assert.Equal(t, "acme.com", cfg.DominioCorporativo)
	assert.NotEmpty(t, cfg.SubtituloLogin)
	assert.NotEmpty(t, cfg.PasosOnboarding)
}

func TestConfigObtener_ErrorDeLecturaSePropaga(t *testing.T) {
	// Only a missing row yields defaults. Any other storage failure must
	// surface to the caller instead of silently serving defaults (which
	// would, among other things, swap the corporate domain during an outage).
	repo := &fallaConfigRepo{err: errors.New("dial tcp: connection refused")}
	svc := service.NewConfigService(repo, nil)

	_, err := svc.Obtener(context.Background())
	require.ErrorIs(t, err, repo.err)

	_, err = svc.DominioCorporativo(context.Background())
	require.ErrorIs(t, err, repo.err)

	_, err = svc.LoginScreen(context.Background())
	require.ErrorIs(t, err, repo.err)
}

func TestConfigActualizar_ErrorDeLecturaNoPisaLaFila(t *testing.T) {
	repo := &fallaConfigRepo{err: errors.New("dial tcp: connection refused")}
	svc := service.NewConfigService(repo, nil)

	titulo := "Puntos ACME"
	_, err := svc.Actualizar(context.Background(), dto.ActualizarConfigRequest{TituloLogin: &titulo})
	require.ErrorIs(t, err, repo.err)
	assert.False(t, repo.guardado, "no debe escribirse nada si la lectura falló")
}

func TestConfigActualizar_SoloCamposEnviados(t *testing.T) {
	repo := &stubConfigRepo{}
	svc := service.NewConfigService(repo, nil)

	titulo := "Puntos ACME"
	notif := true
	cfg, err := svc.Actualizar(context.Background(), dto.ActualizarConfigRequest{
		TituloLogin:         &titulo,
		NotificacionesEmail: &notif,
	})
	require.NoError(t, err)
	assert.Equal(t, "Puntos ACME", cfg.TituloLogin)
	assert.True(t, cfg.NotificacionesEmail)
	// Untouched fields keep their defaults.
	assert.Equal(t, "promipoints.com", cfg.DominioCorporativo)

	// The row was persisted.
	stored, err := repo.Obtener(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Puntos ACME", stored.TituloLogin)
}

func TestConfigActualizar_DominioSeNormaliza(t *testing.T) {
	svc := service.NewConfigService(&stubConfigRepo{}, nil)

	dominio := "ACME.Com"
	cfg, err := svc.Actualizar(context.Background(), dto.ActualizarConfigRequest{
		DominioCorporativo: &dominio,
	})
	require.NoError(t, err)
	assert.Equal(t, "acme.com", cfg.DominioCorporativo)
}

func TestLoginScreen_SubconjuntoPublico(t *testing.T) {
	repo := &stubConfigRepo{cfg: &model.ConfigSistema{
		TituloLogin:    "Reconocimientos ACME",
		SubtituloLogin: "Reparte tus puntos",
	}}
	svc := service.NewConfigService(repo, nil)

	screen, err := svc.LoginScreen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Reconocimientos ACME", screen.TituloLogin)
	assert.Equal(t, "Reparte tus puntos", screen.SubtituloLogin)
	assert.NotEmpty(t, screen.DominioCorporativo)
}
