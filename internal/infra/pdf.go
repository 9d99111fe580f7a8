package infra

// pdf.go — Monthly report rendering using go-pdf/fpdf.
// Generates an A4 table with one row per user:
//   - Name and department
//   - Points received / recognition count / points given
// Category breakdowns stay in the CSV export; the PDF is the printable summary
// handed out in People meetings.

import (
	"bytes"
	"fmt"

	"github.com/cortese1982/Promipointssystemdevelopment/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateReportePDF renders the monthly report table and returns the PDF bytes.
func GenerateReportePDF(reporte *dto.ReporteMensualResponse) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "PromiPoints", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Reporte mensual de reconocimientos — %s", reporte.Mes), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Table header ─────────────────────────────────────────────────────────
	col1 := contentW * 0.30 // nombre
	col2 := contentW * 0.25 // departamento
	col3 := contentW * 0.15 // recibidos
	col4 := contentW * 0.15 // reconocimientos
	col5 := contentW * 0.15 // dados

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 7, "Nombre", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Departamento", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 7, "Recibidos", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "Reconoc.", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 7, "Dados", "B", 1, "R", false, 0, "")

	// ── Rows ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	for _, fila := range reporte.Filas {
		pdf.CellFormat(col1, 6, recortarNombre(fila.Nombre, 32), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fila.Departamento, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, fmt.Sprintf("%d", fila.PuntosRecibidos), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, fmt.Sprintf("%d", fila.Reconocimientos), "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 6, fmt.Sprintf("%d", fila.PuntosDados), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render reporte: %w", err)
	}
	return buf.Bytes(), nil
}

// recortarNombre caps the name column at max characters. Counted in runes, not
// bytes: accented names are the norm here and a byte slice could split one.
func recortarNombre(nombre string, max int) string {
	r := []rune(nombre)
	if len(r) <= max {
		return nombre
	}
	return string(r[:max-1]) + "…"
}
