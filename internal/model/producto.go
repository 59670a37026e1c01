package model

// MaxImages is the number of image slots a product carries: slot 0 is the
// primary ("vista técnica") image, slot 1 the detail image. An empty string
// means the slot is unused. The contents are opaque encoded references — the
// backend never decodes them.
const MaxImages = 2

// TechnicalSpec is a display-ordered name/value pair attached to a product
// (e.g. "Material" → "Roble macizo"). IDs are unique within the owning
// product only.
type TechnicalSpec struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PriceConcept is a cost line-item contributing to a product's base price.
// Amount is stored rounded to two decimals at intake. Order is
// display-significant (it drives the cost breakdown order).
type PriceConcept struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Product is a catalog line entry. Historically these were doors, and the
// wire format still calls the collection "doors" — see SavedBudget.
//
// Margin is a percentage markup (expected 0–100, not clamped) applied to the
// summed concepts to obtain the taxable base ("Base Imponible").
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Model    string          `json:"model"`
	Images   []string        `json:"images"`
	Specs    []TechnicalSpec `json:"specs"`
	Concepts []PriceConcept  `json:"concepts"`
	Margin   float64         `json:"margin"`
}

// Clone returns a deep copy so readers can never mutate stored state.
func (p Product) Clone() Product {
	c := p
	c.Images = append([]string(nil), p.Images...)
	c.Specs = append([]TechnicalSpec(nil), p.Specs...)
	c.Concepts = append([]PriceConcept(nil), p.Concepts...)
	return c
}

// CloneProducts deep-copies a product slice, preserving order.
// A nil input yields an empty (non-nil) slice so it serializes as [].
func CloneProducts(ps []Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Clone())
	}
	return out
}
