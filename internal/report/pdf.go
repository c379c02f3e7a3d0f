package report

import (
	"bytes"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/innovadata/inventario-backend/internal/domain"
	"github.com/innovadata/inventario-backend/pkg/e"
	"github.com/jimlawless/whereami"
)

// Геометрия страницы отчета (A4 в пунктах).
const (
	pageHeight = 842.0
	leftMargin = 40.0
	qtyColumn  = 260.0
	descColumn = 310.0
	bottomPad  = 40.0
)

// BuildInventoryPDF строит одностраничный отчет по текущему списку товаров.
// Строки, не поместившиеся на страницу, молча отбрасываются.
func BuildInventoryPDF(products []domain.Product, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	translate := pdf.UnicodeTranslatorFromDescriptor("")
	y := 40.0

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(leftMargin, y, translate("Reporte de Inventario"))
	y += 25

	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(leftMargin, y, translate("Generado: "+generatedAt.Format("02/01/2006 15:04")))
	y += 30

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(leftMargin, y, translate("Nombre"))
	pdf.Text(qtyColumn, y, translate("Cant."))
	pdf.Text(descColumn, y, translate("Descripción"))
	y += 15

	pdf.Line(leftMargin, y, 595-leftMargin, y)
	y += 15

	pdf.SetFont("Helvetica", "", 11)
	for _, p := range products {
		if y > pageHeight-bottomPad {
			break
		}

		pdf.Text(leftMargin, y, translate(truncate(p.Name, 20)))
		pdf.Text(qtyColumn, y, strconv.Itoa(p.Qty))
		pdf.Text(descColumn, y, translate(truncate(p.Description, 30)))
		y += 15
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return buf.Bytes(), nil
}

// truncate обрезает строку до limit символов (рун, не байт).
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}
