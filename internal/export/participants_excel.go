package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/roger120981/buenavida-admin/internal/models"
)

// ParticipantExportHeader is the column layout of the participant export.
var ParticipantExportHeader = []string{
	"ID",
	"Name",
	"Medicaid ID",
	"Date of Birth",
	"Gender",
	"Status",
	"Location",
	"Community",
	"Case Manager",
	"Units",
	"Hours",
	"HDM",
	"ADHC",
	"LOC Start",
	"LOC End",
	"POC Start",
	"POC End",
}

// ParticipantsExcel renders the participant table as an .xlsx file. An empty
// slice produces a sheet with only the header row.
func ParticipantsExcel(participants []models.Participant) ([]byte, error) {
	f := excelize.NewFile()
	// Don't defer Close() here: WriteToBuffer needs the file open.

	sheetName := "Participants"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, title := range ParticipantExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to style header: %w", err)
		}
	}

	for i, p := range participants {
		status := "Inactive"
		if p.IsActive {
			status = "Active"
		}
		row := []any{
			p.ID,
			p.Name,
			p.MedicaidID,
			p.DOB,
			p.Gender,
			status,
			p.Location,
			p.Community,
			p.CaseManager.Name,
			p.Units,
			p.Hours,
			yesNo(p.HDM),
			yesNo(p.ADHC),
			p.LocStartDate,
			p.LocEndDate,
			p.PocStartDate,
			p.PocEndDate,
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
			}
		}
	}

	// Readable default widths: wider for name/address-like columns.
	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "C", 24)
	_ = f.SetColWidth(sheetName, "D", "F", 14)
	_ = f.SetColWidth(sheetName, "G", "I", 22)
	_ = f.SetColWidth(sheetName, "J", "M", 10)
	_ = f.SetColWidth(sheetName, "N", "Q", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
