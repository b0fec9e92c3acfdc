// Package ingest loads spreadsheet-like files into the raw cell matrix the
// engine consumes: row 0 holds header strings, subsequent rows hold raw cell
// values. The engine itself stays format-agnostic; all file-format knowledge
// lives here.
package ingest

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

// ReadMatrix loads a raw matrix from a workbook (.xlsx/.xlsm) or CSV file,
// dispatching on the file extension.
func ReadMatrix(path string) ([][]any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadWorkbook(path)
	case ".csv":
		return ReadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported input format: %s", filepath.Ext(path))
	}
}

// ReadWorkbook reads the first sheet of a workbook into a raw matrix.
func ReadWorkbook(path string) ([][]any, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet %q: %w", sheets[0], err)
	}
	return toMatrix(rows), nil
}

// ReadCSV reads a CSV file into a raw matrix. Ragged rows are accepted; the
// engine treats short rows as rows with trailing blanks.
func ReadCSV(path string) ([][]any, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("unable to read CSV: %w", err)
		}
		rows = append(rows, record)
	}
	if len(rows) == 0 {
		return nil, errors.New("input file is empty")
	}
	return toMatrix(rows), nil
}

func toMatrix(rows [][]string) [][]any {
	matrix := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		matrix[i] = cells
	}
	return matrix
}
