package handler

import (
	"net/http"

	"correcaja/internal/apierror"
	"correcaja/internal/dto"
	"correcaja/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TransaccionesHandler struct{ svc service.TransaccionService }

func NewTransaccionesHandler(svc service.TransaccionService) *TransaccionesHandler {
	return &TransaccionesHandler{svc: svc}
}

// Crear godoc
// @Summary Registra una transacción en la caja abierta
// @Tags transacciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearTransaccionRequest true "Datos de la transacción"
// @Success 201 {object} dto.TransaccionResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/transacciones [post]
func (h *TransaccionesHandler) Crear(c *gin.Context) {
	var req dto.CrearTransaccionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, ok := usuarioDesdeToken(c)
	if !ok {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar returns the transactions of a caja. Voided ones are included
// only when con_anuladas=true.
func (h *TransaccionesHandler) Listar(c *gin.Context) {
	usuarioID, ok := usuarioDesdeToken(c)
	if !ok {
		return
	}
	cajaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	conAnuladas := c.Query("con_anuladas") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), usuarioID, cajaID, conAnuladas)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Anular godoc
// @Summary Anula una transacción de la caja abierta
// @Tags transacciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de transacción"
// @Param body body dto.AnularTransaccionRequest true "Motivo de anulación"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/transacciones/{id}/anular [post]
func (h *TransaccionesHandler) Anular(c *gin.Context) {
	usuarioID, ok := usuarioDesdeToken(c)
	if !ok {
		return
	}
	transaccionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AnularTransaccionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Anular(c.Request.Context(), usuarioID, transaccionID, req.Motivo); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ComisionSugerida calculates the fee the schedule would charge for the
// given amount, category and channel, without persisting anything.
func (h *TransaccionesHandler) ComisionSugerida(c *gin.Context) {
	var req dto.ComisionSugeridaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, ok := usuarioDesdeToken(c)
	if !ok {
		return
	}
	comision, err := h.svc.SugerirComision(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.ComisionSugeridaResponse{Comision: comision})
}
