package handler

import (
	"net/http"

	"correcaja/internal/apierror"
	"correcaja/internal/dto"
	"correcaja/internal/service"

	"github.com/gin-gonic/gin"
)

type ComisionesHandler struct{ svc service.ComisionService }

func NewComisionesHandler(svc service.ComisionService) *ComisionesHandler {
	return &ComisionesHandler{svc: svc}
}

// Obtener returns the user's default fee schedule. A user who never
// configured one gets the zero-fee flat schedule.
func (h *ComisionesHandler) Obtener(c *gin.Context) {
	usuarioID, ok := usuarioDesdeToken(c)
	if !ok {
		return
	}
	cfg, err := h.svc.ObtenerConfiguracion(c.Request.Context(), usuarioID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.ConfiguracionComisionesResponse{Comisiones: cfg})
}

// Actualizar godoc
// @Summary Reemplaza la configuración de comisiones por defecto
// @Tags comisiones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ConfiguracionComisionesRequest true "Nueva configuración"
// @Success 200 {object} dto.ConfiguracionComisionesResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/comisiones [put]
func (h *ComisionesHandler) Actualizar(c *gin.Context) {
	var req dto.ConfiguracionComisionesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, ok := usuarioDesdeToken(c)
	if !ok {
		return
	}
	cfg, err := h.svc.ActualizarConfiguracion(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.ConfiguracionComisionesResponse{Comisiones: cfg})
}
