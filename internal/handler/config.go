package handler

import (
	"net/http"

	"github.com/cortese1982/Promipointssystemdevelopment/internal/apierror"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/dto"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/service"

	"github.com/gin-gonic/gin"
)

type ConfigHandler struct{ svc service.ConfigService }

func NewConfigHandler(svc service.ConfigService) *ConfigHandler {
	return &ConfigHandler{svc: svc}
}

// LoginScreen godoc
// @Summary Datos públicos de la pantalla de login (sin autenticacion)
// @Tags config
// @Produce json
// @Success 200 {object} dto.LoginScreenResponse
// @Router /v1/config/login [get]
func (h *ConfigHandler) LoginScreen(c *gin.Context) {
	resp, err := h.svc.LoginScreen(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al cargar configuracion"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Onboarding GET /v1/config/onboarding
func (h *ConfigHandler) Onboarding(c *gin.Context) {
	cfg, err := h.svc.Obtener(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al cargar configuracion"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"pasos_onboarding": cfg.PasosOnboarding})
}

// Obtener GET /v1/config — full configuration, People only.
func (h *ConfigHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al cargar configuracion"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar PUT /v1/config — People only.
func (h *ConfigHandler) Actualizar(c *gin.Context) {
	var req dto.ActualizarConfigRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
