package handler

import (
	"net/http"

	"github.com/cortese1982/Promipointssystemdevelopment/internal/apierror"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/dto"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/middleware"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PerfilHandler serves the authenticated employee's own view: who am I,
// how many points do I have left, and who can I recognize.
type PerfilHandler struct {
	authSvc   service.AuthService
	puntosSvc service.PuntosService
}

func NewPerfilHandler(authSvc service.AuthService, puntosSvc service.PuntosService) *PerfilHandler {
	return &PerfilHandler{authSvc: authSvc, puntosSvc: puntosSvc}
}

// Perfil GET /v1/perfil
func (h *PerfilHandler) Perfil(c *gin.Context) {
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token invalido"))
		return
	}

	usuario, err := h.authSvc.ObtenerUsuario(c.Request.Context(), usuarioID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Usuario no encontrado"))
		return
	}

	presupuesto, err := h.puntosSvc.EnsurePresupuesto(c.Request.Context(), usuarioID, service.MesActual())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar presupuesto"))
		return
	}

	c.JSON(http.StatusOK, dto.PerfilResponse{
		Usuario:     *usuario,
		Presupuesto: *presupuesto,
	})
}

// Companeros GET /v1/companeros
// Active colleagues eligible to receive points. Excludes the caller: nobody
// can send points to themselves.
func (h *PerfilHandler) Companeros(c *gin.Context) {
	claims := middleware.GetClaims(c)

	usuarios, err := h.authSvc.ListarUsuarios(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar compañeros"))
		return
	}

	companeros := make([]dto.CompaneroResponse, 0, len(usuarios))
	for _, u := range usuarios {
		if u.ID == claims.UserID {
			continue
		}
		companeros = append(companeros, dto.CompaneroResponse{
			ID:           u.ID,
			Nombre:       u.Nombre,
			Departamento: u.Departamento,
		})
	}
	c.JSON(http.StatusOK, companeros)
}
