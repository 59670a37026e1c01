package dto

import (
	"doorquote/internal/model"
	"doorquote/internal/pricing"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CrearProductoRequest is a fully-populated product draft. Name and model are
// the required-field check the input form performs before submitting.
type CrearProductoRequest struct {
	Name     string                `json:"name"     validate:"required,min=1,max=120"`
	Model    string                `json:"model"    validate:"required,min=1,max=120"`
	Images   []string              `json:"images"   validate:"max=2"`
	Specs    []model.TechnicalSpec `json:"specs"`
	Concepts []model.PriceConcept  `json:"concepts"`
	Margin   float64               `json:"margin"`
}

// ActualizarProductoRequest is a partial update; nil fields keep their
// current value.
type ActualizarProductoRequest struct {
	Name     *string                `json:"name"     validate:"omitempty,min=1,max=120"`
	Model    *string                `json:"model"    validate:"omitempty,min=1,max=120"`
	Images   *[]string              `json:"images"   validate:"omitempty,max=2"`
	Specs    *[]model.TechnicalSpec `json:"specs"`
	Concepts *[]model.PriceConcept  `json:"concepts"`
	Margin   *float64               `json:"margin"`
}

type MoverProductoRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

// TotalesPreviewRequest prices a draft without persisting it (the input
// form's live preview).
type TotalesPreviewRequest struct {
	Concepts []model.PriceConcept `json:"concepts"`
	Margin   float64              `json:"margin"`
}

type ClienteRequest struct {
	Name             string `json:"name"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	CompanyName      string `json:"companyName"`
	ValidityText     string `json:"validityText"`
	InstallationText string `json:"installationText"`
	TaxText          string `json:"taxText"`
}

type NotasRequest struct {
	GeneralNotes string `json:"generalNotes"`
}

// EdicionRequest sets (or clears, with null) the product targeted by the
// input form.
type EdicionRequest struct {
	EditingDoorID *string `json:"editingDoorId"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ProductoResponse is a product together with its computed totals.
type ProductoResponse struct {
	model.Product
	Totals pricing.Totals `json:"totals"`
}

// EstadoResponse is the full catalog state with per-product totals.
type EstadoResponse struct {
	Doors         []ProductoResponse `json:"doors"`
	GeneralNotes  string             `json:"generalNotes"`
	EditingDoorID *string            `json:"editingDoorId"`
	ClientInfo    model.ClientInfo   `json:"clientInfo"`
}
