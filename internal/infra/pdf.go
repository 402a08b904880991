package infra

// pdf.go — Closing report PDF generation using go-pdf/fpdf.
// Generates an A5 report with:
//   - Business name header
//   - Session period and agent
//   - Totals block (apertura, ingresos, egresos, comisiones)
//   - Expected vs counted cash with difference
//   - Per-channel balance table
//
// The output file is saved to storagePath/cierre_{cajaID}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"correcaja/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateCierrePDF renders the closing report for a finished Caja.
// storagePath is the directory where the PDF will be written (created if needed).
// Returns the absolute path to the generated file.
func GenerateCierrePDF(rep *dto.ReporteCierre, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("cierre_%s.pdf", rep.CajaID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20 // total margins = 20mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, rep.NombreNegocio, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Reporte de cierre de caja", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Session info ──────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 4.5, "Agente: "+rep.Agente, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4.5, "Apertura: "+rep.AbiertaAt, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4.5, "Cierre: "+rep.CerradaAt, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	colL := contentW * 0.6
	colR := contentW * 0.4

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	row := func(label, value string) {
		pdf.CellFormat(colL, 5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(colR, 5, value, "", 1, "R", false, 0, "")
	}
	row("Monto de apertura:", "$"+rep.MontoApertura.StringFixed(2))
	row("Ingresos:", "$"+rep.Totales.Ingresos.StringFixed(2))
	row("Egresos:", "-$"+rep.Totales.Egresos.StringFixed(2))
	row("Comisiones:", "$"+rep.Totales.Comisiones.StringFixed(2))

	pdf.SetFont("Helvetica", "B", 9)
	row("Efectivo esperado:", "$"+rep.MontoEsperado.StringFixed(2))
	row("Efectivo contado:", "$"+rep.MontoReal.StringFixed(2))

	diferencia := rep.Diferencia
	signo := "$"
	if diferencia.IsNegative() {
		signo = "-$"
		diferencia = diferencia.Neg()
	}
	row("Diferencia:", signo+diferencia.StringFixed(2))

	// ── Channel balances ──────────────────────────────────────────────────────
	if len(rep.Canales) > 0 {
		pdf.Ln(3)
		pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
		pdf.Ln(2)

		c1 := contentW * 0.34 // channel name
		c2 := contentW * 0.22 // apertura
		c3 := contentW * 0.22 // movimiento neto
		c4 := contentW * 0.22 // esperado

		pdf.SetFont("Helvetica", "B", 7.5)
		pdf.CellFormat(c1, 5, "Canal", "B", 0, "L", false, 0, "")
		pdf.CellFormat(c2, 5, "Apertura", "B", 0, "R", false, 0, "")
		pdf.CellFormat(c3, 5, "Movimiento", "B", 0, "R", false, 0, "")
		pdf.CellFormat(c4, 5, "Esperado", "B", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 7.5)
		for _, c := range rep.Canales {
			nombre := c.CanalNombre
			if len(nombre) > 20 {
				nombre = nombre[:19] + "…"
			}
			neto := c.Entradas.Sub(c.Salidas)
			pdf.CellFormat(c1, 5, nombre, "", 0, "L", false, 0, "")
			pdf.CellFormat(c2, 5, "$"+c.SaldoApertura.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(c3, 5, "$"+neto.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(c4, 5, "$"+c.SaldoEsperado.StringFixed(2), "", 1, "R", false, 0, "")
		}
	}

	// ── Observations ──────────────────────────────────────────────────────────
	if rep.Observaciones != nil && *rep.Observaciones != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "I", 7.5)
		pdf.MultiCell(contentW, 4, "Observaciones: "+*rep.Observaciones, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
