package tableio

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/okian/depthchart/internal/domain/table"
)

const maxSheetName = 31

// Sheet is one named table in a workbook.
type Sheet struct {
	Name  string
	Table table.Table
}

// ExportOption applies a configuration option to the Exporter.
type ExportOption func(*Exporter)

// WithBOM prefixes CSV files with a UTF-8 BOM so Excel detects the encoding.
func WithBOM(enabled bool) ExportOption {
	return func(e *Exporter) {
		e.bom = enabled
	}
}

// Exporter writes tables under a base directory.
type Exporter struct {
	dir string
	bom bool
}

// NewExporter creates an exporter rooted at dir.
func NewExporter(dir string, opts ...ExportOption) *Exporter {
	e := &Exporter{dir: dir, bom: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dir returns the output directory.
func (e *Exporter) Dir() string { return e.dir }

// WriteCSV writes t to <dir>/<name>.csv and returns the path.
func (e *Exporter) WriteCSV(ctx context.Context, name string, t table.Table) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(e.dir, name+".csv")
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if e.bom {
		if _, err := f.Write(utf8BOM); err != nil {
			return "", fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return "", fmt.Errorf("failed to write headers: %w", err)
	}
	for i, r := range t.Rows {
		if err := w.Write(r); err != nil {
			return "", fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return path, f.Close()
}

// WriteWorkbook writes every sheet into <dir>/<name>.xlsx. Cells that
// parse as numbers are stored as numbers.
func (e *Exporter) WriteWorkbook(ctx context.Context, name string, sheets []Sheet) (string, error) {
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook %s: %w", name, ErrEmptyTable)
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	first := f.GetSheetName(0)
	for i, s := range sheets {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		sheet := sheetName(s.Name)
		if i == 0 {
			if err := f.SetSheetName(first, sheet); err != nil {
				return "", fmt.Errorf("sheet %s: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return "", fmt.Errorf("sheet %s: %w", sheet, err)
		}
		if err := writeSheet(f, sheet, s.Table); err != nil {
			return "", fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}

	path := filepath.Join(e.dir, name+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

func writeSheet(f *excelize.File, sheet string, t table.Table) error {
	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for r, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for i, c := range row {
			if v, err := strconv.ParseFloat(c, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
				cells[i] = v
			} else {
				cells[i] = c
			}
		}
		addr, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
			return err
		}
	}
	return nil
}

// sheetName strips characters Excel rejects and truncates to 31 runes.
func sheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, s)
	if s == "" {
		s = "Sheet"
	}
	if r := []rune(s); len(r) > maxSheetName {
		s = string(r[:maxSheetName])
	}
	return s
}
