package xlsexport

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"crewing-backend/models"
	matchingapimodels "crewing-backend/models/api/matching"
)

type Provider interface {
	ExportShortlist(roleTitle string, list []matchingapimodels.ShortlistEntryView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var shortlistHeaders = []string{"Rank", "Candidate", "Score", "Eligible", "Status", "Blockers", "Warnings", "Reasons"}

func (i impl) ExportShortlist(roleTitle string, list []matchingapimodels.ShortlistEntryView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close the xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, shortlistHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write the xlsx header")
	}
	if len(list) != 0 {
		row, err = writeShortlistData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write the xlsx data rows")
		}
	}
	sheetName := "Shortlist"
	if roleTitle != "" {
		sheetName = roleTitle
	}
	f.SetSheetName(sheet, sheetName)
	return f.WriteToBuffer()
}

func writeShortlistData(f *excelize.File, sheet string, list []matchingapimodels.ShortlistEntryView, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(shortlistHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Rank"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.Rank); err != nil {
			return row, err
		}

		// "Candidate"
		col++
		if err := writeColumn(f, sheet, col, row, item.CandidateName); err != nil {
			return row, err
		}

		// "Score"
		col++
		if err := writeColumn(f, sheet, col, row, item.Score); err != nil {
			return row, err
		}

		// "Eligible"
		col++
		eligible := "Yes"
		if !item.CanAssign {
			eligible = "No"
		}
		if err := writeColumn(f, sheet, col, row, eligible); err != nil {
			return row, err
		}

		// "Status"
		col++
		if err := writeColumn(f, sheet, col, row, item.Status.ToHuman()); err != nil {
			return row, err
		}

		// "Blockers"
		col++
		if err := writeColumn(f, sheet, col, row, tokenText(item.Blockers)); err != nil {
			return row, err
		}

		// "Warnings"
		col++
		if err := writeColumn(f, sheet, col, row, tokenText(item.Warnings)); err != nil {
			return row, err
		}

		// "Reasons"
		col++
		if err := writeColumn(f, sheet, col, row, tokenText(item.Reasons)); err != nil {
			return row, err
		}
	}
	return row, nil
}

func tokenText(tokens []models.MatchToken) string {
	parts := make([]string, 0, len(tokens))
	for _, token := range tokens {
		parts = append(parts, token.Text)
	}
	return strings.Join(parts, "\r")
}
