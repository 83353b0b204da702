// Package importer reads flashcards from spreadsheets. Excel workbooks are
// read with excelize; files ending in .csv are read as comma-separated text.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoRows is returned when a file holds no data rows.
var ErrNoRows = errors.New("no card rows found")

// Config describes the spreadsheet layout.
type Config struct {
	FilePath string
	// SheetName selects the worksheet; empty means the first sheet.
	SheetName string
	// Column letters. Hint and Tags are optional; empty disables them.
	FrontColumn string
	BackColumn  string
	HintColumn  string
	TagsColumn  string
	// StartRow is the 1-based first data row.
	StartRow int
	// TagSeparator splits the tags cell. Defaults to ",".
	TagSeparator string
}

// DefaultConfig returns the layout front | back | hint | tags with a header row.
func DefaultConfig(path string) Config {
	return Config{
		FilePath:     path,
		FrontColumn:  "A",
		BackColumn:   "B",
		HintColumn:   "C",
		TagsColumn:   "D",
		StartRow:     2,
		TagSeparator: ",",
	}
}

// Row is one card read from the sheet.
type Row struct {
	Line  int
	Front string
	Back  string
	Hint  string
	Tags  []string
}

// RowError reports a row that could not be read.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Line, e.Reason)
}

// Result holds the rows read and the rows rejected.
type Result struct {
	Rows   []Row
	Errors []RowError
}

type columns struct {
	front, back, hint, tags int
}

// Read loads card rows from the configured file.
func Read(cfg Config) (*Result, error) {
	cols, err := resolveColumns(cfg)
	if err != nil {
		return nil, err
	}

	var records [][]string
	if strings.EqualFold(filepath.Ext(cfg.FilePath), ".csv") {
		records, err = readCSV(cfg.FilePath)
	} else {
		records, err = readExcel(cfg.FilePath, cfg.SheetName)
	}
	if err != nil {
		return nil, err
	}

	return parse(records, cols, cfg), nil
}

func resolveColumns(cfg Config) (columns, error) {
	var cols columns
	var err error

	if cols.front, err = columnIndex(cfg.FrontColumn, true); err != nil {
		return cols, fmt.Errorf("front column: %w", err)
	}
	if cols.back, err = columnIndex(cfg.BackColumn, true); err != nil {
		return cols, fmt.Errorf("back column: %w", err)
	}
	if cols.hint, err = columnIndex(cfg.HintColumn, false); err != nil {
		return cols, fmt.Errorf("hint column: %w", err)
	}
	if cols.tags, err = columnIndex(cfg.TagsColumn, false); err != nil {
		return cols, fmt.Errorf("tags column: %w", err)
	}
	return cols, nil
}

// columnIndex converts a column letter to a 0-based index, or -1 when the
// column is optional and unset.
func columnIndex(name string, required bool) (int, error) {
	if name == "" {
		if required {
			return -1, errors.New("column is required")
		}
		return -1, nil
	}
	n, err := excelize.ColumnNameToNumber(name)
	if err != nil {
		return -1, err
	}
	return n - 1, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV file: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parse(records [][]string, cols columns, cfg Config) *Result {
	start := cfg.StartRow
	if start < 1 {
		start = 1
	}
	sep := cfg.TagSeparator
	if sep == "" {
		sep = ","
	}

	result := &Result{}
	for i, record := range records {
		line := i + 1
		if line < start {
			continue
		}

		front, back := cell(record, cols.front), cell(record, cols.back)
		if front == "" && back == "" {
			// Blank rows are common at the end of sheets.
			continue
		}
		if front == "" || back == "" {
			result.Errors = append(result.Errors, RowError{Line: line, Reason: "front and back are required"})
			continue
		}

		row := Row{Line: line, Front: front, Back: back, Hint: cell(record, cols.hint)}
		if tags := cell(record, cols.tags); tags != "" {
			row.Tags = strings.Split(tags, sep)
		}
		result.Rows = append(result.Rows, row)
	}
	return result
}
