package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"doorquote/internal/apierror"
	"doorquote/internal/dto"
	"doorquote/internal/service"
)

type DocumentoHandler struct{ svc service.DocumentoService }

func NewDocumentoHandler(svc service.DocumentoService) *DocumentoHandler {
	return &DocumentoHandler{svc: svc}
}

// Paginas godoc
// @Summary Estructura paginada del documento de presupuesto
// @Tags documento
// @Produce json
// @Success 200 {array} paginator.Page
// @Failure 409 {object} apierror.APIError
// @Router /v1/documento/paginas [get]
func (h *DocumentoHandler) Paginas(c *gin.Context) {
	pages, err := h.svc.Paginas()
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, pages)
}

// DescargarPDF renders the document and streams the resulting file.
func (h *DocumentoHandler) DescargarPDF(c *gin.Context) {
	path, err := h.svc.GenerarPDF()
	if err != nil {
		if errors.Is(err, service.ErrCatalogoVacio) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el PDF"))
		return
	}
	c.FileAttachment(path, "presupuesto.pdf")
}

// Enviar renders the document and queues its delivery by email.
func (h *DocumentoHandler) Enviar(c *gin.Context) {
	var req dto.EnviarDocumentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Enviar(c.Request.Context(), req); err != nil {
		if errors.Is(err, service.ErrCatalogoVacio) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al enviar el presupuesto"))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"queued": true})
}
