package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"mock-interview-backend/internal/domain"
	"mock-interview-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

var transcriptHeaders = []string{"#", "QUESTION", "CATEGORY", "DIFFICULTY", "ANSWER", "DURATION (S)"}

// Export writes one row per question with the latest answer given for it.
// Unanswered questions keep empty answer cells.
func (u *interviewUsecase) Export(ctx context.Context, id string, format domain.ExportFormat) ([]byte, string, error) {
	if format == "" {
		format = domain.ExportXLSX
	}
	if format != domain.ExportXLSX && format != domain.ExportCSV {
		return nil, "", apperror.BadRequest(fmt.Sprintf("unsupported export format: %s", format))
	}

	session, err := u.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	rows := transcriptRows(session)
	filename := fmt.Sprintf("interview_%s_%s.%s", session.ID, u.now().Format("20060102_150405"), format)

	var data []byte
	switch format {
	case domain.ExportCSV:
		data, err = exportTranscriptCSV(rows)
	default:
		data, err = exportTranscriptExcel(session, rows)
	}
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return data, filename, nil
}

func transcriptRows(session *domain.InterviewSession) [][]string {
	latest := make(map[string]domain.InterviewResponse, len(session.Responses))
	for _, r := range session.Responses {
		latest[r.QuestionID] = r
	}

	rows := make([][]string, 0, len(session.Questions))
	for i, q := range session.Questions {
		row := []string{strconv.Itoa(i + 1), q.Question, string(q.Category), string(q.Difficulty), "", ""}
		if r, ok := latest[q.ID]; ok {
			row[4] = r.Answer
			row[5] = strconv.FormatFloat(r.Duration, 'f', 1, 64)
		}
		rows = append(rows, row)
	}
	return rows
}

func exportTranscriptCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(transcriptHeaders); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}
	return buf.Bytes(), nil
}

func exportTranscriptExcel(session *domain.InterviewSession, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Transcript"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	// Session summary above the table
	f.SetCellValue(sheetName, "A1", session.JobTitle)
	f.SetCellValue(sheetName, "A2", "STATUS")
	f.SetCellValue(sheetName, "B2", string(session.Status))

	const headerRow = 4
	for i, name := range transcriptHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheetName, cell, name)
	}

	// Style headers - Dark Blue background with White text
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	startCell, _ := excelize.CoordinatesToCellName(1, headerRow)
	endCell, _ := excelize.CoordinatesToCellName(len(transcriptHeaders), headerRow)
	f.SetCellStyle(sheetName, startCell, endCell, headerStyle)

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, headerRow+1+rowIdx)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 5)
	f.SetColWidth(sheetName, "B", "B", 60)
	f.SetColWidth(sheetName, "C", "D", 14)
	f.SetColWidth(sheetName, "E", "E", 60)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
