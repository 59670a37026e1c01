package infra

// pdf.go
// Print-ready quote document generation using go-pdf/fpdf.
// Renders the paginator's page sequence onto A4 pages:
//   - Shared header on every page (title, date, reference, company name)
//   - Client data + validity terms block on the first page only
//   - One block per product: name, model, Base Imponible, up to 5 specs
//     (material/dimensiones/medidas emphasized), IVA note
//   - General notes on the last page only
//   - "Página X de Y" footer
//
// The output file is saved to storagePath/presupuesto_{ref}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"doorquote/internal/paginator"
	"doorquote/internal/pricing"
)

// GenerateBudgetPDF renders the page sequence and returns the absolute path
// of the generated file. The caller guarantees pages is non-empty.
func GenerateBudgetPDF(pages []paginator.Page, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("presupuesto_%s.pdf", pages[0].Header.Reference)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 18)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	for _, page := range pages {
		pdf.AddPage()

		// ── Header ───────────────────────────────────────────────────────
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(37, 99, 235)
		pdf.CellFormat(contentW*0.6, 8, tr(page.Header.Title), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(23, 23, 23)
		pdf.CellFormat(contentW*0.4, 8, tr(page.Header.CompanyName), "", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(140, 140, 140)
		pdf.CellFormat(contentW, 5, tr(fmt.Sprintf("%s   ·   Ref: %s", page.Header.Date, page.Header.Reference)), "", 1, "L", false, 0, "")
		pdf.Ln(2)
		pdf.SetDrawColor(229, 229, 229)
		pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
		pdf.Ln(4)

		// ── Client / terms block (first page only) ───────────────────────
		if page.ClientInfo != nil {
			info := page.ClientInfo
			colW := contentW / 2

			top := pdf.GetY()
			pdf.SetFont("Helvetica", "B", 7)
			pdf.SetTextColor(140, 140, 140)
			pdf.CellFormat(colW, 5, tr("DATOS DEL CLIENTE"), "B", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "B", 9)
			pdf.SetTextColor(23, 23, 23)
			pdf.CellFormat(colW, 5, tr(orDash(info.Name)), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetTextColor(115, 115, 115)
			pdf.CellFormat(colW, 4, tr(coalesce(info.Address, "Sin dirección especificada")), "", 1, "L", false, 0, "")
			pdf.CellFormat(colW, 4, tr(orDash(info.Phone)), "", 1, "L", false, 0, "")
			bottomLeft := pdf.GetY()

			pdf.SetXY(15+colW+4, top)
			pdf.SetFont("Helvetica", "B", 7)
			pdf.SetTextColor(140, 140, 140)
			pdf.CellFormat(colW-4, 5, tr("TÉRMINOS DE VALIDEZ"), "B", 2, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetTextColor(115, 115, 115)
			pdf.SetX(15 + colW + 4)
			pdf.CellFormat(colW-4, 4, tr("Validez: "+coalesce(info.ValidityText, "15 días naturales")), "", 2, "L", false, 0, "")
			pdf.SetX(15 + colW + 4)
			pdf.CellFormat(colW-4, 4, tr("Instalación: "+coalesce(info.InstallationText, "No incluida (salvo indicación)")), "", 2, "L", false, 0, "")
			pdf.SetX(15 + colW + 4)
			pdf.CellFormat(colW-4, 4, tr("Impuestos: "+coalesce(info.TaxText, "IVA 21% Desglosado")), "", 1, "L", false, 0, "")

			if pdf.GetY() < bottomLeft {
				pdf.SetY(bottomLeft)
			}
			pdf.Ln(6)
		}

		// ── Product blocks ───────────────────────────────────────────────
		for _, prod := range page.Products {
			blockTop := pdf.GetY()

			pdf.SetFont("Helvetica", "B", 13)
			pdf.SetTextColor(23, 23, 23)
			pdf.CellFormat(contentW*0.62, 7, tr(prod.Name), "", 0, "L", false, 0, "")

			pdf.SetFont("Helvetica", "B", 12)
			pdf.SetTextColor(37, 99, 235)
			pdf.CellFormat(contentW*0.38, 7, pricing.FormatEUR(prod.Totals.BaseImponible)+" EUR", "", 1, "R", false, 0, "")

			pdf.SetFont("Helvetica", "", 8)
			pdf.SetTextColor(140, 140, 140)
			pdf.CellFormat(contentW*0.62, 4, tr("Modelo: "+prod.Model), "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "B", 6)
			pdf.CellFormat(contentW*0.38, 4, tr("BASE IMPONIBLE"), "", 1, "R", false, 0, "")
			pdf.Ln(2)

			for _, sp := range prod.Specs {
				pdf.SetFont("Helvetica", "B", 6)
				pdf.SetTextColor(140, 140, 140)
				pdf.CellFormat(35, 4, tr(upperES(sp.Name)), "L", 0, "L", false, 0, "")
				if sp.Highlight {
					pdf.SetFont("Helvetica", "B", 9)
				} else {
					pdf.SetFont("Helvetica", "", 8)
				}
				pdf.SetTextColor(38, 38, 38)
				pdf.CellFormat(contentW-35, 4, tr(orDash(sp.Value)), "", 1, "L", false, 0, "")
			}

			pdf.Ln(1)
			pdf.SetFont("Helvetica", "", 7)
			pdf.SetTextColor(140, 140, 140)
			pdf.CellFormat(contentW, 4, tr("I.V.A. (21%) NO INCLUIDO"), "", 1, "L", false, 0, "")

			pdf.SetDrawColor(240, 240, 240)
			pdf.Rect(15, blockTop-1, contentW, pdf.GetY()-blockTop+3, "D")
			pdf.Ln(6)
		}

		// ── General notes (last page only) ───────────────────────────────
		if page.Notes != "" {
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", 7)
			pdf.SetTextColor(163, 163, 163)
			pdf.CellFormat(contentW, 5, tr("INFORMACIÓN ADICIONAL Y CONDICIONES"), "T", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetTextColor(115, 115, 115)
			pdf.MultiCell(contentW, 4, tr(page.Notes), "", "L", false)
		}

		// ── Page number ──────────────────────────────────────────────────
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(163, 163, 163)
		pdf.CellFormat(contentW, 5, tr(fmt.Sprintf("Página %d de %d", page.Number, page.TotalPages)), "", 0, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

func orDash(s string) string {
	if s == "" {
		return "---"
	}
	return s
}

func coalesce(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func upperES(s string) string {
	// ASCII-uppercase is enough for spec labels; accented letters pass through.
	out := []rune(s)
	for i, r := range out {
		if r >= 'a' && r <= 'z' {
			out[i] = r - 32
		}
	}
	return string(out)
}
