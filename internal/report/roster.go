package report

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// RosterSheet is the name of the worksheet holding the roster.
const RosterSheet = "Employees"

// ContentType is the MIME type of the rendered workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var ErrEmptyRoster = errors.New("failed to render roster, 0 employees were provided")

var rosterHeaders = []any{"ID", "Name", "Mail", "Job Title", "Mission", "Project", "Reports To"}

// RosterRow is one employee line in the roster sheet.
type RosterRow struct {
	ID          int
	Name        string
	MailID      string
	JobTitle    string
	Mission     string
	ProjectName string
	ReportsTo   string
}

// RenderRoster writes rows to a single-sheet xlsx workbook with a bold header
// line and returns its bytes.
func RenderRoster(rows []RosterRow) (*bytes.Buffer, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyRoster
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(RosterSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err = f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}

	if err = f.SetSheetRow(RosterSheet, "A1", &rosterHeaders); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(rosterHeaders))
	if err = f.SetCellStyle(RosterSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{row.ID, row.Name, row.MailID, row.JobTitle, row.Mission, row.ProjectName, row.ReportsTo}
		if err = f.SetSheetRow(RosterSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err = f.SetColWidth(RosterSheet, "A", "A", 8); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	if err = f.SetColWidth(RosterSheet, "B", lastCol, 22); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}
