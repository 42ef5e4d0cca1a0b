// Package render provides the document renderers for the briefing pipeline.
// This file implements the PDF renderer: one paragraph per summary line,
// one blank line per blank line, paginated on US Letter with fixed margins.
package render

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/gaurav-prasanna/newscast/core"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/encoding/charmap"
)

// Page geometry in points.
const (
	marginLeft   = 40.0
	marginTop    = 50.0
	marginRight  = 40.0
	marginBottom = 40.0
	lineHeight   = 18.0
	bodyFontSize = 11.0
)

// PDFRenderer renders the clean summary as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the clean summary into PDF bytes.
func (r *PDFRenderer) Render(summary core.Summary, meta core.BriefingMeta) ([]byte, error) {
	pdf := r.layout(summary, meta)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// MIMEType returns the PDF media type.
func (r *PDFRenderer) MIMEType() string {
	return "application/pdf"
}

// layout draws the document without serializing it.
func (r *PDFRenderer) layout(summary core.Summary, meta core.BriefingMeta) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetTitle("News Briefing "+meta.DateStamp(), true)
	if !meta.Date.IsZero() {
		pdf.SetCreationDate(meta.Date)
	}
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, lineHeight*1.5, "News Briefing - "+meta.DateStamp(), "", 1, "L", false, 0, "")
	pdf.Ln(lineHeight / 2)

	pdf.SetFont("Helvetica", "", bodyFontSize)
	for _, line := range strings.Split(summary.Clean, "\n") {
		text := strings.TrimSpace(toWinAnsi(line))
		if text == "" {
			pdf.Ln(lineHeight)
			continue
		}
		pdf.MultiCell(0, lineHeight, text, "", "L", false)
	}
	return pdf
}

// replacements maps common typographic runes that are absent from
// Windows-1252 to close equivalents.
var replacements = map[rune]string{
	'\u2212': "-",   // minus sign
	'\u2011': "-",   // non-breaking hyphen
	'\u202f': " ",   // narrow no-break space
	'\u20b9': "Rs.", // rupee sign
}

// toWinAnsi re-encodes s to Windows-1252, the encoding of the PDF core
// fonts. Runes without a mapping (emoji, flags) are dropped.
func toWinAnsi(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
			continue
		}
		if rep, ok := replacements[r]; ok {
			b.WriteString(rep)
			continue
		}
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
		}
	}
	return b.String()
}
