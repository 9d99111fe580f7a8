package handler

import (
	"net/http"

	"github.com/cortese1982/Promipointssystemdevelopment/internal/apierror"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Resumen godoc
// @Summary      Reporte mensual de reconocimientos
// @Description  Resumen por usuario: puntos recibidos, cantidad de reconocimientos, puntos dados y desglose por categoría.
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        mes path string true "Mes YYYY-MM"
// @Success      200 {object} dto.ReporteMensualResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reportes/{mes} [get]
func (h *ReportesHandler) Resumen(c *gin.Context) {
	mes, ok := mesParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ResumenMensual(c.Request.Context(), mes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar reporte"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportCSV GET /v1/reportes/:mes/csv
func (h *ReportesHandler) ExportCSV(c *gin.Context) {
	mes, ok := mesParam(c)
	if !ok {
		return
	}
	data, err := h.svc.ExportCSV(c.Request.Context(), mes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al exportar CSV"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="reporte-`+mes+`.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ExportPDF GET /v1/reportes/:mes/pdf
func (h *ReportesHandler) ExportPDF(c *gin.Context) {
	mes, ok := mesParam(c)
	if !ok {
		return
	}
	data, err := h.svc.ExportPDF(c.Request.Context(), mes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al exportar PDF"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="reporte-`+mes+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
