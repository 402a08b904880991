package handler

import (
	"net/http"

	"correcaja/internal/apierror"
	"correcaja/internal/dto"
	"correcaja/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CanalesHandler struct{ svc service.CanalService }

func NewCanalesHandler(svc service.CanalService) *CanalesHandler {
	return &CanalesHandler{svc: svc}
}

// Listar returns the user's transaction channels. Inactive ones are
// included only when incluir_inactivos=true.
func (h *CanalesHandler) Listar(c *gin.Context) {
	usuarioID, ok := usuarioDesdeToken(c)
	if !ok {
		return
	}
	incluirInactivos := c.Query("incluir_inactivos") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), usuarioID, incluirInactivos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary Crea un canal de transacciones propio
// @Tags canales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearCanalRequest true "Datos del canal"
// @Success 201 {object} dto.CanalResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/canales [post]
func (h *CanalesHandler) Crear(c *gin.Context) {
	var req dto.CrearCanalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, ok := usuarioDesdeToken(c)
	if !ok {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CanalesHandler) Actualizar(c *gin.Context) {
	usuarioID, ok := usuarioDesdeToken(c)
	if !ok {
		return
	}
	canalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarCanalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), usuarioID, canalID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar removes a custom channel. Default channels can only be
// deactivated, never deleted.
func (h *CanalesHandler) Eliminar(c *gin.Context) {
	usuarioID, ok := usuarioDesdeToken(c)
	if !ok {
		return
	}
	canalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), usuarioID, canalID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// EstablecerComision sets a personalized fee schedule on a channel and
// enables it.
func (h *CanalesHandler) EstablecerComision(c *gin.Context) {
	usuarioID, ok := usuarioDesdeToken(c)
	if !ok {
		return
	}
	canalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ConfiguracionComisionesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EstablecerComision(c.Request.Context(), usuarioID, canalID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// QuitarComision disables the personalized schedule; the channel falls
// back to the user's default.
func (h *CanalesHandler) QuitarComision(c *gin.Context) {
	usuarioID, ok := usuarioDesdeToken(c)
	if !ok {
		return
	}
	canalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.QuitarComision(c.Request.Context(), usuarioID, canalID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
