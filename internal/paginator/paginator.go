// Package paginator partitions the ordered product list into fixed-capacity
// pages and resolves, per page, what the rendering surface must place on it:
// the shared header on every page, the client/terms block on the first page
// only, the general notes on the last page only, and 1-based page numbering.
// It is a pure structural transform, re-run on every read and never cached.
package paginator

import (
	"fmt"
	"strings"
	"time"

	"doorquote/internal/model"
	"doorquote/internal/pricing"
	"doorquote/internal/store"
)

// DefaultPageCapacity is the number of products per printed page.
// Policy constant, overridable via configuration.
const DefaultPageCapacity = 3

// maxSpecsPerProduct limits how many technical specs a product block shows.
const maxSpecsPerProduct = 5

// highlightKeys mark spec names the renderer emphasizes (case-insensitive
// substring match). Display hint only; the data is untouched.
var highlightKeys = []string{"material", "dimensiones", "medidas"}

// Header is repeated on every page of the document.
type Header struct {
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	Date        string `json:"date"`      // Spanish long date, e.g. "30 de agosto de 2026"
	Reference   string `json:"reference"` // last 6 digits of the epoch-ms clock
}

// SpecLine is a spec prepared for display.
type SpecLine struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Highlight bool   `json:"highlight"`
}

// PageProduct is a product annotated with its computed pricing and the specs
// selected for display.
type PageProduct struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Model  string         `json:"model"`
	Image  string         `json:"image"` // primary slot, empty when unset
	Specs  []SpecLine     `json:"specs"`
	Totals pricing.Totals `json:"totals"`
}

// Page is one fixed-capacity grouping of consecutive products.
// ClientInfo is non-nil on the first page only; Notes is non-empty on the
// last page only (and only when the catalog has notes).
type Page struct {
	Number     int               `json:"number"` // 1-based
	TotalPages int               `json:"total_pages"`
	Header     Header            `json:"header"`
	ClientInfo *model.ClientInfo `json:"client_info,omitempty"`
	Products   []PageProduct     `json:"products"`
	Notes      string            `json:"notes,omitempty"`
}

// Paginator builds the page sequence for the current catalog state.
type Paginator struct {
	Capacity int
	Calc     pricing.Calculator

	// Now is the clock for header date/reference; defaults to time.Now.
	Now func() time.Time
}

// New builds a paginator, coercing a non-positive capacity to the default.
func New(capacity int, calc pricing.Calculator) Paginator {
	if capacity <= 0 {
		capacity = DefaultPageCapacity
	}
	return Paginator{Capacity: capacity, Calc: calc}
}

// Paginate partitions the state's products into pages, preserving order:
// page k holds the products at indices [k*capacity, (k+1)*capacity). Zero
// products yield zero pages; the caller substitutes its own empty-state
// presentation.
func (p Paginator) Paginate(st store.State) []Page {
	if len(st.Doors) == 0 {
		return nil
	}
	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}
	capacity := p.Capacity
	if capacity <= 0 {
		capacity = DefaultPageCapacity
	}

	companyName := st.ClientInfo.CompanyName
	if companyName == "" {
		companyName = model.DefaultCompanyName
	}
	header := Header{
		Title:       "Presupuesto Comercial",
		CompanyName: companyName,
		Date:        fechaLargaES(now),
		Reference:   referencia(now),
	}

	total := (len(st.Doors) + capacity - 1) / capacity
	pages := make([]Page, 0, total)
	for k := 0; k < total; k++ {
		lo := k * capacity
		hi := lo + capacity
		if hi > len(st.Doors) {
			hi = len(st.Doors)
		}

		products := make([]PageProduct, 0, hi-lo)
		for _, d := range st.Doors[lo:hi] {
			products = append(products, p.buildProduct(d))
		}

		page := Page{
			Number:     k + 1,
			TotalPages: total,
			Header:     header,
			Products:   products,
		}
		if k == 0 {
			info := st.ClientInfo
			page.ClientInfo = &info
		}
		if k == total-1 && st.GeneralNotes != "" {
			page.Notes = st.GeneralNotes
		}
		pages = append(pages, page)
	}
	return pages
}

func (p Paginator) buildProduct(d model.Product) PageProduct {
	specs := d.Specs
	if len(specs) > maxSpecsPerProduct {
		specs = specs[:maxSpecsPerProduct]
	}
	lines := make([]SpecLine, 0, len(specs))
	for _, sp := range specs {
		lines = append(lines, SpecLine{
			Name:      sp.Name,
			Value:     sp.Value,
			Highlight: isHighlighted(sp.Name),
		})
	}

	image := ""
	if len(d.Images) > 0 {
		image = d.Images[0]
	}

	return PageProduct{
		ID:     d.ID,
		Name:   d.Name,
		Model:  d.Model,
		Image:  image,
		Specs:  lines,
		Totals: p.Calc.Compute(d.Concepts, d.Margin),
	}
}

func isHighlighted(name string) bool {
	lower := strings.ToLower(name)
	for _, k := range highlightKeys {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

var mesesES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// fechaLargaES renders a Spanish long date: "2 de enero de 2026".
func fechaLargaES(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), mesesES[t.Month()-1], t.Year())
}

// referencia derives the document reference from the clock: the last six
// digits of the epoch-millisecond timestamp.
func referencia(t time.Time) string {
	ms := fmt.Sprintf("%d", t.UnixMilli())
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return ms
}
