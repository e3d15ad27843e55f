package export

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
)

const (
	pdfRowHeight = 7.0
	pdfFont      = "Helvetica"
)

// WritePDF writes t as a landscape A4 table. Cell text that does not fit its
// column is cut with an ellipsis.
func WritePDF(w io.Writer, t Table) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(t.Title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 14)
	pdf.CellFormat(0, 10, tr(t.Title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(t.Columns) == 0 {
		pdf.SetFont(pdfFont, "", 10)
		pdf.CellFormat(0, pdfRowHeight, "No columns.", "", 1, "L", false, 0, "")
		return output(pdf, w)
	}

	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	colW := (pageW - left - right) / float64(len(t.Columns))

	header := func() {
		pdf.SetFont(pdfFont, "B", 9)
		pdf.SetFillColor(26, 101, 158)
		pdf.SetTextColor(255, 255, 255)
		for _, h := range t.headers() {
			pdf.CellFormat(colW, pdfRowHeight, fit(pdf, tr(h), colW), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(pdfFont, "", 9)
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 {
			header()
		}
	})
	header()

	for _, row := range t.Rows {
		for _, c := range t.Columns {
			pdf.CellFormat(colW, pdfRowHeight, fit(pdf, tr(CellText(row[c.Key])), colW), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	return output(pdf, w)
}

func output(pdf *gofpdf.Fpdf, w io.Writer) error {
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func fit(pdf *gofpdf.Fpdf, s string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > limit {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
