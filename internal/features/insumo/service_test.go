package insumo

import (
	"bytes"
	"context"
	"testing"

	"github.com/xuri/excelize/v2"
)

type fakeInsumoRepo struct {
	items []Insumo
}

func (f *fakeInsumoRepo) Create(_ context.Context, i *Insumo) error {
	f.items = append(f.items, *i)
	return nil
}

func (f *fakeInsumoRepo) ListByProject(_ context.Context, projectID string, week, year int) ([]Insumo, error) {
	var out []Insumo
	for _, i := range f.items {
		if i.ProjectID != projectID {
			continue
		}
		if week > 0 && i.Week != week {
			continue
		}
		if year > 0 && i.Year != year {
			continue
		}
		out = append(out, i)
	}
	return out, nil
}

func (f *fakeInsumoRepo) DeleteByProjectWeek(_ context.Context, projectID string, week, year int) error {
	kept := f.items[:0]
	for _, i := range f.items {
		if i.ProjectID == projectID && i.Week == week && i.Year == year {
			continue
		}
		kept = append(kept, i)
	}
	f.items = kept
	return nil
}

func workbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for rowIdx, row := range rows {
		for colIdx, v := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatal(err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestImportReplacesProjectWeekSlice(t *testing.T) {
	ctx := context.Background()
	repo := &fakeInsumoRepo{items: []Insumo{
		{ProjectID: "p1", Week: 10, Year: 2025, Code: "OLD"},
		{ProjectID: "p1", Week: 11, Year: 2025, Code: "KEEP"},
	}}
	svc := NewInsumoService(repo)

	file := workbook(t, [][]interface{}{
		{"codigo", "nombre", "unidad", "cantidad"},
		{"CEM-01", "Cemento gris", "ton", 2.5},
		{"VAR-38", "Varilla 3/8", "pza", 120},
	})

	summary, err := svc.Import(ctx, "p1", 10, 2025, file)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if summary.Imported != 2 || summary.Skipped != 0 {
		t.Fatalf("summary = %+v, want 2 imported", summary)
	}

	items, _ := svc.List(ctx, "p1", 10, 2025)
	if len(items) != 2 {
		t.Fatalf("slice size = %d, want 2", len(items))
	}
	for _, i := range items {
		if i.Code == "OLD" {
			t.Fatal("stale row survived re-import")
		}
	}
	// Other weeks are untouched.
	other, _ := svc.List(ctx, "p1", 11, 2025)
	if len(other) != 1 || other[0].Code != "KEEP" {
		t.Fatalf("adjacent week slice was modified: %+v", other)
	}
}

func TestImportSkipsBadQuantityRows(t *testing.T) {
	svc := NewInsumoService(&fakeInsumoRepo{})

	file := workbook(t, [][]interface{}{
		{"Codigo", "Nombre", "Unidad", "Cantidad"},
		{"CEM-01", "Cemento gris", "ton", "dos"},
		{"VAR-38", "Varilla 3/8", "pza", 120},
	})

	summary, err := svc.Import(context.Background(), "p1", 10, 2025, file)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if summary.Imported != 1 || summary.Skipped != 1 {
		t.Fatalf("summary = %+v, want 1 imported 1 skipped", summary)
	}
	if len(summary.Errors) != 1 {
		t.Fatalf("errors = %v, want the bad quantity reported", summary.Errors)
	}
}

func TestImportRejectsWrongHeader(t *testing.T) {
	svc := NewInsumoService(&fakeInsumoRepo{})

	file := workbook(t, [][]interface{}{
		{"sku", "descripcion", "um", "qty"},
		{"CEM-01", "Cemento gris", "ton", 2.5},
	})

	if _, err := svc.Import(context.Background(), "p1", 10, 2025, file); err == nil {
		t.Fatal("expected header validation error")
	}
}

func TestExportRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := &fakeInsumoRepo{}
	svc := NewInsumoService(repo)

	file := workbook(t, [][]interface{}{
		{"codigo", "nombre", "unidad", "cantidad"},
		{"CEM-01", "Cemento gris", "ton", 2.5},
	})
	if _, err := svc.Import(ctx, "p1", 10, 2025, file); err != nil {
		t.Fatalf("import: %v", err)
	}

	data, filename, err := svc.Export(ctx, "p1", 10, 2025)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filename != "insumos_p1_w10_2025.xlsx" {
		t.Fatalf("filename = %s", filename)
	}

	// The exported workbook re-imports cleanly.
	summary, err := svc.Import(ctx, "p1", 10, 2025, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if summary.Imported != 1 {
		t.Fatalf("round trip imported = %d, want 1", summary.Imported)
	}

	items, _ := svc.List(ctx, "p1", 10, 2025)
	if items[0].Code != "CEM-01" || items[0].Quantity != 2.5 {
		t.Fatalf("round trip lost data: %+v", items[0])
	}
}
