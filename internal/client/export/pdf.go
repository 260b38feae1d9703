// Package export renders the question history to PDF.
package export

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/doubtsolver/internal/client/models"
	"github.com/phpdave11/gofpdf"
)

const (
	lineHeight = 6.0
	margin     = 15.0
)

// HistoryPDF writes one section per question: subject, question, solution and
// numbered steps.
func HistoryPDF(w io.Writer, owner string, doubts []models.Doubt, now time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Question history"), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	header := fmt.Sprintf("%d question(s), exported %s", len(doubts), now.Format("2006-01-02 15:04"))
	if owner != "" {
		header = owner + " - " + header
	}
	pdf.CellFormat(0, lineHeight, tr(header), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for i, d := range doubts {
		pdf.SetFont("Helvetica", "B", 12)
		title := fmt.Sprintf("%d. %s (%s)", i+1, d.Subject, d.Type)
		pdf.CellFormat(0, 8, tr(title), "B", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, lineHeight, d.CreatedAt.Format("2006-01-02 15:04")+"  "+d.ID, "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 11)
		question := d.Question
		if question == "" && d.HasImage() {
			question = "[image]"
		}
		pdf.MultiCell(0, lineHeight, tr("Q: "+question), "", "L", false)
		if d.OCR != nil && d.OCR.ExtractedText != "" {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.MultiCell(0, lineHeight, tr("Extracted text: "+d.OCR.ExtractedText), "", "L", false)
			pdf.SetFont("Helvetica", "", 11)
		}

		if d.Answer != nil {
			pdf.MultiCell(0, lineHeight, tr("A: "+d.Answer.Solution), "", "L", false)
			for n, step := range d.Answer.Steps {
				pdf.MultiCell(0, lineHeight, tr(fmt.Sprintf("   %d) %s", n+1, step)), "", "L", false)
			}
		}
		pdf.Ln(4)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

// HistoryPDFFile writes HistoryPDF output to path.
func HistoryPDFFile(path, owner string, doubts []models.Doubt, now time.Time) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return HistoryPDF(f, owner, doubts, now)
}
