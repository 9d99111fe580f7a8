package service_test

import (
	"context"
	"testing"

	"github.com/cortese1982/Promipointssystemdevelopment/internal/config"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/dto"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func buildAuthSvc() (service.AuthService, *stubUsuarioRepo) {
	usuarioRepo := newStubUsuarioRepo()
	configSvc := service.NewConfigService(&stubConfigRepo{}, nil)
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return service.NewAuthService(usuarioRepo, configSvc, cfg), usuarioRepo
}

func seedConPassword(t *testing.T, repo *stubUsuarioRepo, email, password string) {
	t.Helper()
	u := seedUsuario(repo, "María García", email, "Ingeniería", "empleado")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u.PasswordHash = string(hash)
}

func TestLogin_CorreoNoCorporativo(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedConPassword(t, repo, "maria@gmail.com", "promi1234")

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "maria@gmail.com",
		Password: "promi1234",
	})
	assert.ErrorIs(t, err, service.ErrCorreoNoCorporativo)
}

func TestLogin_Exitoso(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedConPassword(t, repo, "maria@promipoints.com", "promi1234")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "maria@promipoints.com",
		Password: "promi1234",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "maria@promipoints.com", resp.User.Email)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedConPassword(t, repo, "maria@promipoints.com", "promi1234")

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "maria@promipoints.com",
		Password: "otra-clave",
	})
	assert.ErrorContains(t, err, "credenciales invalidas")
}

func TestRefresh_EmiteNuevoPar(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedConPassword(t, repo, "maria@promipoints.com", "promi1234")

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "maria@promipoints.com",
		Password: "promi1234",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.User.ID, refreshed.User.ID)
}

func TestRefresh_TokenInvalido(t *testing.T) {
	svc, _ := buildAuthSvc()
	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	assert.ErrorContains(t, err, "invalido")
}

func TestCrearUsuario_DominioValidado(t *testing.T) {
	svc, _ := buildAuthSvc()

	_, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Nombre:       "Juan Pérez",
		Email:        "juan@hotmail.com",
		Departamento: "Ventas",
		Password:     "clave-larga",
		Rol:          "empleado",
	})
	assert.ErrorIs(t, err, service.ErrCorreoNoCorporativo)
}

func TestCrearUsuario_GuardaHashNoElTexto(t *testing.T) {
	svc, repo := buildAuthSvc()

	resp, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Nombre:       "Juan Pérez",
		Email:        "juan@promipoints.com",
		Departamento: "Ventas",
		Password:     "clave-larga",
		Rol:          "empleado",
	})
	require.NoError(t, err)
	assert.Equal(t, "juan@promipoints.com", resp.Email)
	assert.True(t, resp.Activo)

	stored, err := repo.FindByEmail(context.Background(), "juan@promipoints.com")
	require.NoError(t, err)
	assert.NotEqual(t, "clave-larga", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave-larga")))
}

func TestDesactivarUsuario_BloqueaLogin(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedConPassword(t, repo, "maria@promipoints.com", "promi1234")

	usuarios, err := svc.ListarUsuarios(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, usuarios, 1)

	uid := uuid.MustParse(usuarios[0].ID)
	require.NoError(t, svc.DesactivarUsuario(context.Background(), uid))

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "maria@promipoints.com",
		Password: "promi1234",
	})
	assert.Error(t, err)

	// Inactive users disappear from the default listing.
	activos, err := svc.ListarUsuarios(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, activos)

	todos, err := svc.ListarUsuarios(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, todos, 1)
}
