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

type ReconocimientosHandler struct{ svc service.PuntosService }

func NewReconocimientosHandler(svc service.PuntosService) *ReconocimientosHandler {
	return &ReconocimientosHandler{svc: svc}
}

// Crear godoc
// @Summary      Reconocer a un compañero
// @Description  Transfiere puntos del presupuesto mensual del emisor al receptor y registra el reconocimiento. Atómico: o se aplica todo o nada.
// @Tags         reconocimientos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearReconocimientoRequest true "Detalle del reconocimiento"
// @Success      201  {object} dto.ReconocimientoEnviado
// @Failure      400  {object} apierror.APIError
// @Router       /v1/reconocimientos [post]
func (h *ReconocimientosHandler) Crear(c *gin.Context) {
	var req dto.CrearReconocimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	deUsuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Reconocer(c.Request.Context(), deUsuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Recibidos GET /v1/reconocimientos/recibidos?mes=YYYY-MM
// The sender is never included — recognition stays anonymous.
func (h *ReconocimientosHandler) Recibidos(c *gin.Context) {
	mes, ok := mesQuery(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Recibidos(c.Request.Context(), usuarioID, mes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar reconocimientos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Enviados GET /v1/reconocimientos/enviados?mes=YYYY-MM
func (h *ReconocimientosHandler) Enviados(c *gin.Context) {
	mes, ok := mesQuery(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Enviados(c.Request.Context(), usuarioID, mes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar reconocimientos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Presupuesto GET /v1/presupuesto?mes=YYYY-MM
// Creates the month's allocation on first access.
func (h *ReconocimientosHandler) Presupuesto(c *gin.Context) {
	mes, ok := mesQuery(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.EnsurePresupuesto(c.Request.Context(), usuarioID, mes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar presupuesto"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResetPresupuesto godoc
// @Summary      Resetear presupuesto de un usuario (solo People)
// @Description  Restaura el presupuesto del mes al valor inicial y elimina los reconocimientos del usuario en ese mes.
// @Tags         reconocimientos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path string true "UUID del usuario"
// @Param        mes path string true "Mes YYYY-MM"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/usuarios/{id}/presupuesto/{mes} [delete]
func (h *ReconocimientosHandler) ResetPresupuesto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	mes, ok := mesParam(c)
	if !ok {
		return
	}
	if svcErr := h.svc.ResetTotal(c.Request.Context(), id, mes); svcErr != nil {
		c.JSON(http.StatusBadRequest, apierror.New(svcErr.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
