package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/cortese1982/Promipointssystemdevelopment/internal/dto"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/model"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/repository"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Defaults back-filled into configuration rows that predate a field.
const (
	defaultTituloLogin        = "PromiPoints"
	defaultSubtituloLogin     = "Reconoce a tus compañeros con puntos cada mes"
	defaultDominioCorporativo = "promipoints.com"
	defaultRemitenteEmail     = "no-reply@promipoints.com"
	defaultAsuntoEmail        = "¡Has recibido PromiPoints!"
)

// loginScreenCacheKey backs the public login-screen endpoint, which is hit
// by every visitor before authentication.
const (
	loginScreenCacheKey = "config:login"
	loginScreenCacheTTL = 5 * time.Minute
)

func defaultPasosOnboarding() []model.PasoOnboarding {
	return []model.PasoOnboarding{
		{Titulo: "Bienvenido a PromiPoints", Descripcion: "Cada mes recibes 10 puntos para reconocer a tus compañeros."},
		{Titulo: "Elige una categoría", Descripcion: "Cada reconocimiento lleva una categoría que representa un valor de la empresa."},
		{Titulo: "Reparte tus puntos", Descripcion: "Envía puntos con un mensaje opcional; el reconocimiento es anónimo."},
		{Titulo: "Revisa tu progreso", Descripcion: "Consulta cuántos puntos has recibido y cuántos te quedan por dar."},
	}
}

// ConfigService manages the singleton system configuration. Reads apply a
// migration-on-read policy: fields missing from older saved rows are
// back-filled with defaults without touching the populated ones.
type ConfigService interface {
	Obtener(ctx context.Context) (*dto.ConfigResponse, error)
	Actualizar(ctx context.Context, req dto.ActualizarConfigRequest) (*dto.ConfigResponse, error)
	LoginScreen(ctx context.Context) (*dto.LoginScreenResponse, error)
	DominioCorporativo(ctx context.Context) (string, error)
}

type configService struct {
	repo repository.ConfigRepository
	rdb  *redis.Client
}

func NewConfigService(repo repository.ConfigRepository, rdb *redis.Client) ConfigService {
	return &configService{repo: repo, rdb: rdb}
}

// cargar reads the stored row and back-fills missing fields. A missing row is
// treated as "not yet initialized" and yields pure defaults.
func (s *configService) cargar(ctx context.Context) (*model.ConfigSistema, error) {
	c, err := s.repo.Obtener(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// Sin fila todavia: arrancamos desde los valores por defecto.
		c = &model.ConfigSistema{}
	}
	if c.TituloLogin == "" {
		c.TituloLogin = defaultTituloLogin
	}
	if c.SubtituloLogin == "" {
		c.SubtituloLogin = defaultSubtituloLogin
	}
	if c.DominioCorporativo == "" {
		c.DominioCorporativo = defaultDominioCorporativo
	}
	if len(c.PasosOnboarding) == 0 {
		c.PasosOnboarding = defaultPasosOnboarding()
	}
	if c.RemitenteEmail == "" {
		c.RemitenteEmail = defaultRemitenteEmail
	}
	if c.AsuntoReconocimiento == "" {
		c.AsuntoReconocimiento = defaultAsuntoEmail
	}
	return c, nil
}

func (s *configService) Obtener(ctx context.Context) (*dto.ConfigResponse, error) {
	c, err := s.cargar(ctx)
	if err != nil {
		return nil, err
	}
	return configToResponse(c), nil
}

func (s *configService) Actualizar(ctx context.Context, req dto.ActualizarConfigRequest) (*dto.ConfigResponse, error) {
	c, err := s.cargar(ctx)
	if err != nil {
		return nil, err
	}

	if req.TituloLogin != nil {
		c.TituloLogin = *req.TituloLogin
	}
	if req.SubtituloLogin != nil {
		c.SubtituloLogin = *req.SubtituloLogin
	}
	if req.DominioCorporativo != nil {
		c.DominioCorporativo = strings.ToLower(*req.DominioCorporativo)
	}
	if req.PasosOnboarding != nil {
		c.PasosOnboarding = *req.PasosOnboarding
	}
	if req.NotificacionesEmail != nil {
		c.NotificacionesEmail = *req.NotificacionesEmail
	}
	if req.RemitenteEmail != nil {
		c.RemitenteEmail = *req.RemitenteEmail
	}
	if req.AsuntoReconocimiento != nil {
		c.AsuntoReconocimiento = *req.AsuntoReconocimiento
	}
	if req.RecordatorioActivo != nil {
		c.RecordatorioActivo = *req.RecordatorioActivo
	}

	if err := s.repo.Guardar(ctx, c); err != nil {
		return nil, err
	}

	// The public login screen is cached; drop it so edits show up immediately.
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, loginScreenCacheKey).Err()
	}
	return configToResponse(c), nil
}

func (s *configService) LoginScreen(ctx context.Context) (*dto.LoginScreenResponse, error) {
	// 1. Try Redis cache; this endpoint is public and unauthenticated.
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, loginScreenCacheKey).Bytes(); err == nil {
			var resp dto.LoginScreenResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	c, err := s.cargar(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.LoginScreenResponse{
		TituloLogin:        c.TituloLogin,
		SubtituloLogin:     c.SubtituloLogin,
		DominioCorporativo: c.DominioCorporativo,
	}

	// 2. Populate cache, best effort. Actualizar drops the key so edits
	// show up immediately.
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(ctx, loginScreenCacheKey, b, loginScreenCacheTTL).Err()
		}
	}
	return resp, nil
}

func (s *configService) DominioCorporativo(ctx context.Context) (string, error) {
	c, err := s.cargar(ctx)
	if err != nil {
		return "", err
	}
	return c.DominioCorporativo, nil
}

func configToResponse(c *model.ConfigSistema) *dto.ConfigResponse {
	return &dto.ConfigResponse{
		TituloLogin:          c.TituloLogin,
		SubtituloLogin:       c.SubtituloLogin,
		DominioCorporativo:   c.DominioCorporativo,
		PasosOnboarding:      c.PasosOnboarding,
		NotificacionesEmail:  c.NotificacionesEmail,
		RemitenteEmail:       c.RemitenteEmail,
		AsuntoReconocimiento: c.AsuntoReconocimiento,
		RecordatorioActivo:   c.RecordatorioActivo,
	}
}
