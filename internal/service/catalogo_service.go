package service

import (
	"strings"

	"github.com/google/uuid"

	"doorquote/internal/dto"
	"doorquote/internal/model"
	"doorquote/internal/pricing"
	"doorquote/internal/store"
)

// CatalogoService is the intake boundary for catalog mutations: it assigns
// ids, rounds monetary amounts, filters empty cost concepts, and annotates
// read responses with computed totals. The store itself stays free of
// validation by design.
type CatalogoService interface {
	Estado() dto.EstadoResponse
	Crear(req dto.CrearProductoRequest) dto.ProductoResponse
	Actualizar(id string, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, bool)
	Eliminar(id string) store.State
	Mover(id string, direction string) store.State
	Totales(req dto.TotalesPreviewRequest) pricing.Totals
	SetCliente(req dto.ClienteRequest) store.State
	SetNotas(notes string) store.State
	SetEdicion(id *string) store.State
	Reset() store.State
}

type catalogoService struct {
	store *store.CatalogStore
	calc  pricing.Calculator
}

func NewCatalogoService(st *store.CatalogStore, calc pricing.Calculator) CatalogoService {
	return &catalogoService{store: st, calc: calc}
}

func (s *catalogoService) Estado() dto.EstadoResponse {
	return s.toEstado(s.store.Current())
}

// Crear persists a draft as a new product at the end of the catalog,
// assigning it a fresh id.
func (s *catalogoService) Crear(req dto.CrearProductoRequest) dto.ProductoResponse {
	p := model.Product{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Model:    req.Model,
		Images:   normalizeImages(req.Images),
		Specs:    req.Specs,
		Concepts: sanitizeConcepts(req.Concepts),
		Margin:   req.Margin,
	}
	s.store.AddDoor(p)
	return dto.ProductoResponse{Product: p, Totals: s.calc.Compute(p.Concepts, p.Margin)}
}

// Actualizar merges the partial update into the matching product. The second
// return is false when the id is unknown (the store treats that as a no-op,
// but the API reports it).
func (s *catalogoService) Actualizar(id string, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, bool) {
	patch := store.DoorPatch{
		Name:   req.Name,
		Model:  req.Model,
		Specs:  req.Specs,
		Margin: req.Margin,
	}
	if req.Images != nil {
		imgs := normalizeImages(*req.Images)
		patch.Images = &imgs
	}
	if req.Concepts != nil {
		cs := sanitizeConcepts(*req.Concepts)
		patch.Concepts = &cs
	}

	st := s.store.UpdateDoor(id, patch)
	for _, d := range st.Doors {
		if d.ID == id {
			return &dto.ProductoResponse{Product: d, Totals: s.calc.Compute(d.Concepts, d.Margin)}, true
		}
	}
	return nil, false
}

func (s *catalogoService) Eliminar(id string) store.State {
	return s.store.RemoveDoor(id)
}

func (s *catalogoService) Mover(id string, direction string) store.State {
	return s.store.MoveDoor(id, store.Direction(direction))
}

func (s *catalogoService) Totales(req dto.TotalesPreviewRequest) pricing.Totals {
	return s.calc.Compute(sanitizeConcepts(req.Concepts), req.Margin)
}

func (s *catalogoService) SetCliente(req dto.ClienteRequest) store.State {
	return s.store.SetClientInfo(model.ClientInfo{
		Name:             req.Name,
		Address:          req.Address,
		Phone:            req.Phone,
		CompanyName:      req.CompanyName,
		ValidityText:     req.ValidityText,
		InstallationText: req.InstallationText,
		TaxText:          req.TaxText,
	})
}

func (s *catalogoService) SetNotas(notes string) store.State {
	return s.store.SetGeneralNotes(notes)
}

func (s *catalogoService) SetEdicion(id *string) store.State {
	return s.store.SetEditingDoorID(id)
}

func (s *catalogoService) Reset() store.State {
	return s.store.ResetAll()
}

func (s *catalogoService) toEstado(st store.State) dto.EstadoResponse {
	doors := make([]dto.ProductoResponse, 0, len(st.Doors))
	for _, d := range st.Doors {
		doors = append(doors, dto.ProductoResponse{
			Product: d,
			Totals:  s.calc.Compute(d.Concepts, d.Margin),
		})
	}
	return dto.EstadoResponse{
		Doors:         doors,
		GeneralNotes:  st.GeneralNotes,
		EditingDoorID: st.EditingDoorID,
		ClientInfo:    st.ClientInfo,
	}
}

// sanitizeConcepts rounds amounts to two decimals and drops line items that
// are both unnamed and zero-amount, so those never reach the catalog.
// Import bypasses this on purpose (snapshots are copied verbatim).
func sanitizeConcepts(concepts []model.PriceConcept) []model.PriceConcept {
	out := make([]model.PriceConcept, 0, len(concepts))
	for _, c := range concepts {
		c.Amount = pricing.Round2(c.Amount)
		if strings.TrimSpace(c.Name) == "" && c.Amount == 0 {
			continue
		}
		out = append(out, c)
	}
	return out
}

// normalizeImages pads or truncates to exactly the two image slots.
func normalizeImages(images []string) []string {
	out := make([]string, model.MaxImages)
	copy(out, images)
	return out
}
