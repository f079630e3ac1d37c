package pdfexport

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"crewing-backend/models"
	checklistapimodels "crewing-backend/models/api/checklist"
)

// GenerateChecklistReport renders a release checklist with its gate states and
// full transition history as a printable PDF.
func GenerateChecklistReport(view checklistapimodels.ChecklistView, history []checklistapimodels.HistoryView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateChecklistReport panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.Cell(0, 10, "Release Checklist Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	writeLine(pdf, "Candidate", view.CandidateName)
	writeLine(pdf, "Position", view.RoleTitle)
	writeLine(pdf, "Status", string(view.Status))
	writeLine(pdf, "Revision", fmt.Sprintf("%d", view.Revision))
	if view.ApprovedAt != nil {
		writeLine(pdf, "Approved at", view.ApprovedAt.Format("02.01.2006 15:04"))
	}
	if view.RejectReason != "" {
		writeLine(pdf, "Reject reason", view.RejectReason)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Gates")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	for _, gate := range models.AllChecklistGates {
		mark := "[ ]"
		if view.Gates[gate] {
			mark = "[x]"
		}
		pdf.Cell(0, 6, fmt.Sprintf("%v %v", mark, gate.ToHuman()))
		pdf.Ln(6)
	}
	if view.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Notes")
		pdf.Ln(10)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, view.Notes, "", "L", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "History")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range history {
		line := fmt.Sprintf("%v  %v -> %v  by %v",
			item.CreatedAt.Format(time.RFC3339), item.FromStatus, item.ToStatus, item.ActorName)
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
		if item.Comment != "" {
			pdf.SetX(20)
			pdf.MultiCell(0, 5, item.Comment, "", "L", false)
		}
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeLine(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(40, 6, label+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, value)
	pdf.Ln(6)
}
