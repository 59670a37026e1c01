package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"doorquote/internal/apierror"
	"doorquote/internal/dto"
	"doorquote/internal/service"
)

type ProductosHandler struct{ svc service.CatalogoService }

func NewProductosHandler(svc service.CatalogoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

// Crear godoc
// @Summary Añade un producto al final del catalogo
// @Tags productos
// @Accept json
// @Produce json
// @Param body body dto.CrearProductoRequest true "Producto"
// @Success 201 {object} dto.ProductoResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/productos [post]
func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	c.JSON(http.StatusCreated, h.svc.Crear(req))
}

func (h *ProductosHandler) Actualizar(c *gin.Context) {
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, ok := h.svc.Actualizar(c.Param("id"), req)
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar removes the product. An unknown id leaves the catalog unchanged
// and still returns the current state.
func (h *ProductosHandler) Eliminar(c *gin.Context) {
	h.svc.Eliminar(c.Param("id"))
	c.JSON(http.StatusOK, h.svc.Estado())
}

// Mover swaps the product with its neighbor in the given direction. Boundary
// moves are a no-op, not an error.
func (h *ProductosHandler) Mover(c *gin.Context) {
	var req dto.MoverProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.svc.Mover(c.Param("id"), req.Direction)
	c.JSON(http.StatusOK, h.svc.Estado())
}

// Totales prices a draft without touching the catalog (live preview for the
// input form).
func (h *ProductosHandler) Totales(c *gin.Context) {
	var req dto.TotalesPreviewRequest
	if !bindAndValidate(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.svc.Totales(req))
}
