package handler

import (
	"net/http"
	"regexp"

	"github.com/cortese1982/Promipointssystemdevelopment/internal/apierror"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// mesPattern matches a ledger month, e.g. "2026-08".
var mesPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// mesQuery reads the optional "mes" query param, defaulting to the current
// month. Returns ("", false) after writing a 400 when the format is bad.
func mesQuery(c *gin.Context) (string, bool) {
	mes := c.DefaultQuery("mes", service.MesActual())
	if !mesPattern.MatchString(mes) {
		c.JSON(http.StatusBadRequest, apierror.New("Mes invalido, formato esperado YYYY-MM"))
		return "", false
	}
	return mes, true
}

// mesParam reads the required ":mes" path param.
func mesParam(c *gin.Context) (string, bool) {
	mes := c.Param("mes")
	if !mesPattern.MatchString(mes) {
		c.JSON(http.StatusBadRequest, apierror.New("Mes invalido, formato esperado YYYY-MM"))
		return "", false
	}
	return mes, true
}
