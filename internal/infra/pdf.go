package infra

// pdf.go renders the printable order sheet handed to the workshop: customer
// block, then one boxed table per product with every zone value. Empty
// values print as "-".

import (
	"bytes"
	"fmt"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/model"

	"github.com/go-pdf/fpdf"
)

// OrderPDF returns the A4 order sheet for o.
func OrderPDF(o *model.CustomerRequest, businessName string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("") // core fonts are cp1252

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr(businessName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, tr("Pedido N° "+o.ID.String()), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, tr(fmt.Sprintf("Fecha: %s   Estado: %s", o.CreatedAt.Format("02/01/2006 15:04"), o.Status)), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// ── Customer ─────────────────────────────────────────────────────────────
	labelW := contentW * 0.35
	valueW := contentW - labelW
	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(labelW, 6, tr(label), "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(valueW, 6, tr(value), "1", 1, "L", false, 0, "")
	}

	pdf.SetFillColor(235, 235, 235)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Cliente", "", 1, "L", false, 0, "")
	row("Nombre", o.Name+" "+o.Lastname)
	row("Email", o.Email)
	row("Teléfono", o.PhoneOrEmpty())
	if notes := o.NotesOrEmpty(); notes != "" {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 6, "Observaciones", "1", 1, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(contentW, 5, tr(notes), "1", "L", false)
	}

	// ── Products ─────────────────────────────────────────────────────────────
	for i, p := range o.Products {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, tr(fmt.Sprintf("Producto %d de %d", i+1, len(o.Products))), "", 1, "L", false, 0, "")
		for _, f := range p.Fields() {
			row(f.Label, f.Value)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}
