package handler

import (
	"net/http"
	"strconv"

	"correcaja/internal/apierror"
	"correcaja/internal/dto"
	"correcaja/internal/infra"
	"correcaja/internal/middleware"
	"correcaja/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CajaHandler struct {
	svc            service.CajaService
	pdfStoragePath string
}

func NewCajaHandler(svc service.CajaService, pdfStoragePath string) *CajaHandler {
	return &CajaHandler{svc: svc, pdfStoragePath: pdfStoragePath}
}

// Abrir godoc
// @Summary Abre una nueva caja con los saldos iniciales por canal
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCajaRequest true "Datos de apertura"
// @Success 201 {object} dto.ResumenCajaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/caja/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, ok := usuarioDesdeToken(c)
	if !ok {
		return
	}

	resp, err := h.svc.Abrir(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Activa returns the currently open caja for the authenticated user.
func (h *CajaHandler) Activa(c *gin.Context) {
	usuarioID, ok := usuarioDesdeToken(c)
	if !ok {
		return
	}
	resp, err := h.svc.Activa(c.Request.Context(), usuarioID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, apierror.New("Sin caja abierta"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resumen godoc
// @Summary Resumen de una caja: totales y conciliación por canal
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de caja"
// @Success 200 {object} dto.ResumenCajaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/caja/{id}/resumen [get]
func (h *CajaHandler) Resumen(c *gin.Context) {
	usuarioID, ok := usuarioDesdeToken(c)
	if !ok {
		return
	}
	cajaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Resumen(c.Request.Context(), usuarioID, cajaID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cerrar godoc
// @Summary Cierra la caja abierta declarando el efectivo contado
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CerrarCajaRequest true "Declaración de cierre"
// @Success 200 {object} dto.CerrarCajaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/caja/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, ok := usuarioDesdeToken(c)
	if !ok {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historial returns a paginated list of closed cajas.
func (h *CajaHandler) Historial(c *gin.Context) {
	usuarioID, ok := usuarioDesdeToken(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	resp, total, err := h.svc.Historial(c.Request.Context(), usuarioID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp, "total": total, "page": page, "limit": limit})
}

// Reporte generates and downloads the closing report PDF of a closed caja.
func (h *CajaHandler) Reporte(c *gin.Context) {
	usuarioID, ok := usuarioDesdeToken(c)
	if !ok {
		return
	}
	cajaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	rep, err := h.svc.ReporteCierre(c.Request.Context(), usuarioID, cajaID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	pdfPath, err := infra.GenerateCierrePDF(rep, h.pdfStoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("No se pudo generar el reporte"))
		return
	}
	c.FileAttachment(pdfPath, "cierre_"+rep.CajaID+".pdf")
}

// usuarioDesdeToken extracts the authenticated user ID from the JWT claims.
// Writes the error response itself when the token is malformed.
func usuarioDesdeToken(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de usuario inválido"))
		return uuid.Nil, false
	}
	return usuarioID, true
}
