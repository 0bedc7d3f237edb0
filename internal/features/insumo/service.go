package insumo

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// importColumns is the expected header row of an explosión workbook, in
// order. Matching is case-insensitive.
var importColumns = []string{"codigo", "nombre", "unidad", "cantidad"}

type InsumoService interface {
	Import(ctx context.Context, projectID string, week, year int, file io.Reader) (*ImportSummary, error)
	Export(ctx context.Context, projectID string, week, year int) ([]byte, string, error)
	List(ctx context.Context, projectID string, week, year int) ([]Insumo, error)
}

type InsumoServiceImpl struct {
	Repo InsumoRepository
}

func NewInsumoService(repo InsumoRepository) InsumoService {
	return &InsumoServiceImpl{Repo: repo}
}

// Import replaces the (project, week, year) slice with the workbook's rows.
// Rows with an unparseable quantity are skipped and reported, not fatal.
func (s *InsumoServiceImpl) Import(ctx context.Context, projectID string, week, year int, file io.Reader) (*ImportSummary, error) {
	if projectID == "" || week <= 0 || year <= 0 {
		return nil, fmt.Errorf("project, week and year are required")
	}

	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("Excel file has no data rows")
	}

	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	if err := s.Repo.DeleteByProjectWeek(ctx, projectID, week, year); err != nil {
		return nil, err
	}

	summary := &ImportSummary{}
	now := time.Now()

	for i, row := range rows[1:] {
		if len(row) < len(importColumns) || strings.TrimSpace(row[0]) == "" {
			summary.Skipped++
			continue
		}

		quantity, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: invalid quantity %q", i+2, row[3]))
			continue
		}

		item := &Insumo{
			ID:        primitive.NewObjectID(),
			ProjectID: projectID,
			Week:      week,
			Year:      year,
			Code:      strings.TrimSpace(row[0]),
			Name:      strings.TrimSpace(row[1]),
			Unit:      strings.TrimSpace(row[2]),
			Quantity:  quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.Repo.Create(ctx, item); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		summary.Imported++
	}

	return summary, nil
}

func checkHeader(header []string) error {
	if len(header) < len(importColumns) {
		return fmt.Errorf("expected columns %v, got %v", importColumns, header)
	}
	for i, want := range importColumns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return fmt.Errorf("expected column %d to be %q, got %q", i+1, want, header[i])
		}
	}
	return nil
}

// Export renders the slice back into a workbook with the same columns the
// import expects, so a round trip is lossless.
func (s *InsumoServiceImpl) Export(ctx context.Context, projectID string, week, year int) ([]byte, string, error) {
	items, err := s.Repo.ListByProject(ctx, projectID, week, year)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Insumos"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range importColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, item := range items {
		values := []interface{}{item.Code, item.Name, item.Unit, item.Quantity}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	for i := range importColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("insumos_%s_w%d_%d.xlsx", projectID, week, year)
	return buffer.Bytes(), filename, nil
}

func (s *InsumoServiceImpl) List(ctx context.Context, projectID string, week, year int) ([]Insumo, error) {
	if projectID == "" {
		return nil, fmt.Errorf("project is required")
	}
	return s.Repo.ListByProject(ctx, projectID, week, year)
}
