// Package tableio reads season tables from CSV or Excel files and exports
// pipeline tables as CSV files and workbooks.
package tableio

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/okian/depthchart/internal/domain/table"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Read loads the table at path, choosing the decoder by extension:
// .csv via encoding/csv, .xlsx via excelize (first sheet).
func Read(ctx context.Context, path string) (table.Table, error) {
	if err := ctx.Err(); err != nil {
		return table.Table{}, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return table.Table{}, fmt.Errorf("open %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		t, err := ReadCSV(f)
		if err != nil {
			return table.Table{}, fmt.Errorf("read %s: %w", path, err)
		}
		return t, nil
	case ".xlsx", ".xlsm":
		t, err := readXLSX(path)
		if err != nil {
			return table.Table{}, fmt.Errorf("read %s: %w", path, err)
		}
		return t, nil
	default:
		return table.Table{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ReadCSV decodes a CSV stream whose first record is the header. A leading
// UTF-8 BOM is skipped and rows may vary in length.
func ReadCSV(r io.Reader) (table.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return table.Table{}, err
	}
	cr := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return table.Table{}, err
	}
	return fromRecords(records)
}

func readXLSX(path string) (table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return table.Table{}, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return table.Table{}, ErrEmptyTable
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return table.Table{}, fmt.Errorf("sheet %s: %w", sheets[0], err)
	}
	return fromRecords(rows)
}

func fromRecords(records [][]string) (table.Table, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return table.Table{}, ErrEmptyTable
	}
	rows := make([][]string, 0, len(records)-1)
	for _, r := range records[1:] {
		if blank(r) {
			continue
		}
		rows = append(rows, r)
	}
	return table.Table{Columns: UniqueColumns(records[0]), Rows: rows}, nil
}

// UniqueColumns trims header names and suffixes repeats with ".1", ".2",
// so a header of Yds, Yds, Yds reads as Yds, Yds.1, Yds.2.
func UniqueColumns(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	taken := make(map[string]struct{}, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		name := h
		for {
			if _, dup := taken[name]; !dup {
				break
			}
			seen[h]++
			name = h + "." + strconv.Itoa(seen[h])
		}
		taken[name] = struct{}{}
		out[i] = name
	}
	return out
}

func blank(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
