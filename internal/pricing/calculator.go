package pricing

import (
	"math"

	"github.com/shopspring/decimal"

	"doorquote/internal/model"
)

// DefaultTaxRate is the IVA applied on top of the margin-adjusted base.
// Policy constant — override via configuration, not by editing this value.
const DefaultTaxRate = 0.21

// Totals is the full monetary breakdown of a single product:
//
//	Base          — sum of the cost concepts
//	BaseImponible — Base with the margin applied (the taxable base shown to
//	                the customer)
//	IVA           — tax over BaseImponible
//	Total         — BaseImponible + IVA
//
// Every field has passed through Round2.
type Totals struct {
	Base          float64 `json:"base"`
	BaseImponible float64 `json:"base_imponible"`
	IVA           float64 `json:"iva"`
	Total         float64 `json:"total"`
}

// Calculator derives product totals from cost concepts and a margin
// percentage. It is a pure function of its inputs: identical inputs always
// yield identical outputs.
type Calculator struct {
	TaxRate float64
}

// NewCalculator builds a calculator with the given tax rate, falling back to
// DefaultTaxRate when the rate is not positive.
func NewCalculator(taxRate float64) Calculator {
	if taxRate <= 0 {
		taxRate = DefaultTaxRate
	}
	return Calculator{TaxRate: taxRate}
}

// Compute returns the monetary breakdown for the given concepts and margin.
// Non-finite amounts are coerced to 0; negative amounts and out-of-range
// margins pass through unclamped. Empty concepts yield all-zero totals.
func (c Calculator) Compute(concepts []model.PriceConcept, margin float64) Totals {
	sum := 0.0
	for _, con := range concepts {
		a := con.Amount
		if math.IsNaN(a) || math.IsInf(a, 0) {
			a = 0
		}
		sum += a
	}
	if math.IsNaN(margin) || math.IsInf(margin, 0) {
		margin = 0
	}

	base := Round2(sum)
	baseImponible := Round2(base * (1 + margin/100))
	iva := Round2(baseImponible * c.TaxRate)
	total := Round2(baseImponible + iva)

	return Totals{
		Base:          base,
		BaseImponible: baseImponible,
		IVA:           iva,
		Total:         total,
	}
}

// FormatEUR renders a monetary value with exactly two decimals, e.g. "195.00".
// Used by the PDF renderer and API labels.
func FormatEUR(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(2)
}
