package document

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	fontFamily   = "Helvetica"
	lineHeight   = 7.0
	pageMargin   = 15.0
	signatureCol = 80.0
	signatureGap = 30.0
	signatureBar = "______________________________"
)

// Renderer turns composed sections into a printable byte stream.
type Renderer interface {
	Render(w io.Writer, sections []Section) error
	ContentType() string
}

// PDFRenderer renders A4 PDFs with the core Helvetica font.
type PDFRenderer struct {
	Author string
	// Now stamps the creation date; nil means time.Now.
	Now func() time.Time
}

func NewPDFRenderer(author string) *PDFRenderer {
	return &PDFRenderer{Author: author}
}

func (r *PDFRenderer) ContentType() string { return "application/pdf" }

func (r *PDFRenderer) Render(w io.Writer, sections []Section) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; accented Portuguese text must be translated.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	pdf.SetCreationDate(now())
	pdf.SetTitle(Title, true)
	if r.Author != "" {
		pdf.SetAuthor(r.Author, true)
	}

	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(0, 10, tr(Title), "", 1, "C", false, 0, "")

	for _, s := range sections {
		switch s.Kind {
		case KindSummary:
			pdf.SetFont(fontFamily, "", 11)
			pdf.Ln(8)
			pdf.MultiCell(0, lineHeight, tr(s.Body), "", "L", false)
			pdf.Ln(4)
		case KindClause:
			pdf.SetFont(fontFamily, "B", 12)
			pdf.CellFormat(0, 8, tr(s.Heading), "", 1, "L", false, 0, "")
			pdf.SetFont(fontFamily, "", 11)
			pdf.MultiCell(0, lineHeight, tr(s.Body), "", "L", false)
			pdf.Ln(2)
		case KindDeclaration:
			pdf.Ln(6)
			pdf.SetFont(fontFamily, "B", 11)
			pdf.CellFormat(0, 8, tr(s.Heading), "", 1, "L", false, 0, "")
			pdf.SetFont(fontFamily, "", 11)
			pdf.MultiCell(0, lineHeight, tr(s.Body), "", "L", false)
		case KindFooter:
			pdf.Ln(14)
			for _, line := range strings.Split(s.Body, "\n") {
				pdf.CellFormat(0, lineHeight, tr(line), "", 1, "L", false, 0, "")
			}
		case KindSignature:
			pdf.Ln(18)
			renderSignatures(pdf, tr, strings.Split(s.Body, "\n"))
		default:
			return fmt.Errorf("render pdf: unknown section kind %q", s.Kind)
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

// renderSignatures draws two side-by-side signature lines with a label under
// each one.
func renderSignatures(pdf *fpdf.Fpdf, tr func(string) string, labels []string) {
	for len(labels) < 2 {
		labels = append(labels, "")
	}
	pdf.CellFormat(signatureCol, lineHeight, signatureBar, "", 0, "L", false, 0, "")
	pdf.CellFormat(signatureGap, lineHeight, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(signatureCol, lineHeight, signatureBar, "", 1, "L", false, 0, "")
	pdf.CellFormat(signatureCol, lineHeight, tr(labels[0]), "", 0, "L", false, 0, "")
	pdf.CellFormat(signatureGap, lineHeight, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(signatureCol, lineHeight, tr(labels[1]), "", 1, "L", false, 0, "")
}
