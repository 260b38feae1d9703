package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/doubtsolver/internal/client/history"
	"github.com/dmitrijs2005/doubtsolver/internal/client/models"
)

const previewLen = 60

func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > previewLen {
		return string(r[:previewLen-3]) + "..."
	}
	return s
}

func questionText(d models.Doubt) string {
	if strings.TrimSpace(d.Question) == "" && d.HasImage() {
		return "[image]"
	}
	return d.Question
}

func printDoubtLine(w io.Writer, d models.Doubt) {
	fmt.Fprintf(w, "%s  %-16s %-5s %s  %s\n",
		d.CreatedAt.Format("2006-01-02 15:04"), d.Subject, d.Type, d.ID, preview(questionText(d)))
}

func printDoubt(w io.Writer, d models.Doubt) {
	fmt.Fprintf(w, "ID:       %s\n", d.ID)
	fmt.Fprintf(w, "Subject:  %s\n", d.Subject)
	fmt.Fprintf(w, "Type:     %s\n", d.Type)
	fmt.Fprintf(w, "Status:   %s\n", d.Status)
	if !d.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Asked:    %s\n", d.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(w, "Question: %s\n", questionText(d))
	if d.OCR != nil && d.OCR.ExtractedText != "" {
		fmt.Fprintf(w, "Extracted text: %s\n", d.OCR.ExtractedText)
	}
	if d.Answer == nil {
		return
	}
	fmt.Fprintf(w, "\nSolution:\n%s\n", d.Answer.Solution)
	if len(d.Answer.Steps) > 0 {
		fmt.Fprintln(w, "\nSteps:")
		for i, s := range d.Answer.Steps {
			fmt.Fprintf(w, "  %d. %s\n", i+1, s)
		}
	}
}

func printStats(w io.Writer, st history.Stats) {
	fmt.Fprintf(w, "Total: %d  Text: %d  Image: %d  Answered: %d\n", st.Total, st.Text, st.Image, st.Answered)
}

func printMessage(w io.Writer, m models.ChatMessage) {
	ts := ""
	if !m.Timestamp.IsZero() {
		ts = m.Timestamp.Format("15:04") + " "
	}
	fmt.Fprintf(w, "%s[%s] %s\n", ts, m.SenderType, m.Message)
}
