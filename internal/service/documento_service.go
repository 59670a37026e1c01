package service

import (
	"context"
	"errors"

	"doorquote/internal/dto"
	"doorquote/internal/paginator"
	"doorquote/internal/store"
	"doorquote/internal/worker"
)

// ErrCatalogoVacio is returned when a document operation is attempted on an
// empty catalog.
var ErrCatalogoVacio = errors.New("Añade productos para generar el presupuesto.")

// PDFGenerator renders paginated quote pages into a PDF file and returns its
// path on disk.
type PDFGenerator func(pages []paginator.Page) (string, error)

// DocumentoService turns the current catalog into the printable quote
// document: the paginated layout, the rendered PDF, and email delivery.
type DocumentoService interface {
	Paginas() ([]paginator.Page, error)
	GenerarPDF() (string, error)
	Enviar(ctx context.Context, req dto.EnviarDocumentoRequest) error
}

type documentoService struct {
	store      *store.CatalogStore
	paginator  paginator.Paginator
	genPDF     PDFGenerator
	dispatcher *worker.Dispatcher
}

func NewDocumentoService(st *store.CatalogStore, pg paginator.Paginator, gen PDFGenerator, d *worker.Dispatcher) DocumentoService {
	return &documentoService{store: st, paginator: pg, genPDF: gen, dispatcher: d}
}

func (s *documentoService) Paginas() ([]paginator.Page, error) {
	state := s.store.Current()
	pages := s.paginator.Paginate(state)
	if pages == nil {
		return nil, ErrCatalogoVacio
	}
	return pages, nil
}

func (s *documentoService) GenerarPDF() (string, error) {
	pages, err := s.Paginas()
	if err != nil {
		return "", err
	}
	return s.genPDF(pages)
}

// Enviar renders the PDF synchronously and hands delivery off to the email
// queue, so the HTTP response does not wait on SMTP.
func (s *documentoService) Enviar(ctx context.Context, req dto.EnviarDocumentoRequest) error {
	path, err := s.GenerarPDF()
	if err != nil {
		return err
	}

	subject := req.Asunto
	if subject == "" {
		subject = "Presupuesto Comercial"
	}
	body := req.Mensaje
	if body == "" {
		body = "Adjuntamos el presupuesto solicitado. Gracias por su confianza."
	}

	return s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
		ToEmail: req.Email,
		Subject: subject,
		Body:    body,
		PDFPath: path,
	})
}
