package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"doorquote/internal/apierror"
	"doorquote/internal/codec"
	"doorquote/internal/dto"
	"doorquote/internal/service"
)

// maxImportSize caps raw snapshot uploads at 5 MB.
const maxImportSize = 5 << 20

type PresupuestosHandler struct{ svc service.PresupuestoService }

func NewPresupuestosHandler(svc service.PresupuestoService) *PresupuestosHandler {
	return &PresupuestosHandler{svc: svc}
}

// Guardar godoc
// @Summary Guarda el estado actual como presupuesto con nombre
// @Tags presupuestos
// @Accept json
// @Produce json
// @Param body body dto.GuardarPresupuestoRequest true "Nombre"
// @Success 201 {object} dto.GuardarPresupuestoResponse
// @Router /v1/presupuestos [post]
func (h *PresupuestosHandler) Guardar(c *gin.Context) {
	var req dto.GuardarPresupuestoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Guardar(c.Request.Context(), req.Nombre)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al guardar el presupuesto"))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PresupuestosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar presupuestos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Descargar streams the archived snapshot as a JSON attachment.
func (h *PresupuestosHandler) Descargar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	data, fileName, err := h.svc.Descargar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Presupuesto no encontrado"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

// ImportarArchivado replaces the catalog with an archived snapshot.
func (h *PresupuestosHandler) ImportarArchivado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if _, err := h.svc.ImportarArchivado(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrPresupuestoNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Presupuesto no encontrado"))
			return
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.New("Error al importar el archivo. Formato no válido."))
		return
	}
	c.Status(http.StatusNoContent)
}

// Importar accepts raw snapshot JSON in the request body and replaces the
// full catalog state. All-or-nothing: a malformed body leaves state intact.
func (h *PresupuestosHandler) Importar(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el archivo"))
		return
	}
	if _, err := h.svc.ImportarCrudo(raw); err != nil {
		if errors.Is(err, codec.ErrFormatoInvalido) {
			c.JSON(http.StatusUnprocessableEntity, apierror.New("Error al importar el archivo. Formato no válido."))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al importar el presupuesto"))
		return
	}
	c.Status(http.StatusNoContent)
}

// Abrir reads a saved budget file from the exchange directory by name,
// without importing it.
func (h *PresupuestosHandler) Abrir(c *gin.Context) {
	nombre := c.Query("nombre")
	if nombre == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Parametro 'nombre' requerido"))
		return
	}
	budget, err := h.svc.Abrir(codec.FileName(nombre))
	if err != nil {
		if errors.Is(err, service.ErrPresupuestoNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Presupuesto no encontrado"))
			return
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.New("Error al importar el archivo. Formato no válido."))
		return
	}
	c.JSON(http.StatusOK, budget)
}
