package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	margin    = 72.0
	bodyLine  = 12.0
	transLine = 11.0
)

// PDF renders the document on US Letter pages with one inch margins.
func PDF(doc Document) ([]byte, error) {
	pdf := build(doc)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func build(doc Document) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle(doc.title(), true)
	pdf.SetCreator("teachlens", true)
	// core fonts are cp1252; bullets and dashes survive the translation
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	r := doc.Result

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 28, tr(doc.title()), "", 1, "L", false, 0, "")

	if t := doc.Teacher; t != nil {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 14, tr("Teacher: "+t.Name()), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 14, tr("Email: "+t.Email), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, bodyLine, "Educational Details:", "", 1, "L", false, 0, "")
		pdf.MultiCell(0, bodyLine, tr(t.EducationDetails), "", "L", false)
		pdf.Ln(10)
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 18, tr("Source file: "+doc.source()), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 14, fmt.Sprintf("Clarity Score: %.1f/10", r.ClarityScore), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 14, fmt.Sprintf("Engagement Score: %.1f/10", r.EngagementScore), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 20, fmt.Sprintf("Words per minute: %.1f   Filler words: %d   Lexical diversity: %.3f",
		r.WordsPerMinute, r.FillerCount, r.LexicalDiversity), "", 1, "L", false, 0, "")

	section(pdf, "Summary")
	pdf.MultiCell(0, bodyLine, tr(r.Summary), "", "L", false)
	pdf.Ln(10)

	bullets(pdf, tr, "Strengths", r.Strengths)
	bullets(pdf, tr, "Weaknesses", r.Weaknesses)
	bullets(pdf, tr, "Suggestions", r.Suggestions)

	if len(doc.Pacing) > 0 {
		section(pdf, "Pacing")
		for _, p := range doc.Pacing {
			pdf.CellFormat(0, bodyLine, fmt.Sprintf("%s   %d words   %.1f wpm   %d fillers",
				p.Span(), p.Words, p.WPM, p.Fillers), "", 1, "L", false, 0, "")
		}
		pdf.Ln(6)
	}
	if len(doc.Warnings) > 0 {
		bullets(pdf, tr, "Warnings", doc.Warnings)
	}

	// keep the transcript heading off the bottom of a page
	_, pageH := pdf.GetPageSize()
	if pdf.GetY() > pageH-margin-100 {
		pdf.AddPage()
	}
	section(pdf, "Transcript (excerpt)")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, transLine, tr(excerpt(doc.Transcript)), "", "L", false)
	return pdf
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 16, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}

func bullets(pdf *gofpdf.Fpdf, tr func(string) string, title string, items []string) {
	section(pdf, title)
	for _, it := range items {
		pdf.MultiCell(0, bodyLine, tr("• "+it), "", "L", false)
	}
	pdf.Ln(6)
}
