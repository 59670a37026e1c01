package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"doorquote/internal/dto"
	"doorquote/internal/service"
)

// CatalogoHandler exposes the shared catalog state: read, reset, and the
// client/notes/editing sub-state setters.
type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

// Estado godoc
// @Summary Estado completo del catalogo con totales por producto
// @Tags catalogo
// @Produce json
// @Success 200 {object} dto.EstadoResponse
// @Router /v1/catalogo [get]
func (h *CatalogoHandler) Estado(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Estado())
}

// Reset clears products, notes and editing marker and restores the default
// client block.
func (h *CatalogoHandler) Reset(c *gin.Context) {
	h.svc.Reset()
	c.JSON(http.StatusOK, h.svc.Estado())
}

func (h *CatalogoHandler) SetCliente(c *gin.Context) {
	var req dto.ClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.svc.SetCliente(req)
	c.JSON(http.StatusOK, h.svc.Estado())
}

func (h *CatalogoHandler) SetNotas(c *gin.Context) {
	var req dto.NotasRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.svc.SetNotas(req.GeneralNotes)
	c.JSON(http.StatusOK, h.svc.Estado())
}

func (h *CatalogoHandler) SetEdicion(c *gin.Context) {
	var req dto.EdicionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.svc.SetEdicion(req.EditingDoorID)
	c.JSON(http.StatusOK, h.svc.Estado())
}
