// Package excel reads tabular datasets from Excel and CSV files into frames.
package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/battyone/beyond-correlation/domain/frame"
)

// missing-value markers recognized during ingestion
var missingMarkers = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
}

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadFrame reads the file into a frame. The first row is the header; each
// column becomes numeric when every non-missing cell parses as a float,
// categorical otherwise. Recognized missing markers become missing cells.
func (r *DataReader) ReadFrame() (*frame.Frame, error) {
	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	return r.buildFrame(rows)
}

// readExcelRows reads raw string rows from Sheet1
func (r *DataReader) readExcelRows() ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	// Always use Sheet1
	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	readTime := time.Since(startTime)
	log.Printf("[DataReader] Sheet1 read in %.2fms (%d rows)", float64(readTime.Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("Excel file must have at least a header row and one data row")
	}
	return rows, nil
}

// readCSVRows reads raw string rows from a CSV file
func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	readTime := time.Since(readStart)
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)", float64(readTime.Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("CSV file must have at least a header row and one data row")
	}
	return rows, nil
}

// buildFrame converts raw string rows into a typed frame
func (r *DataReader) buildFrame(rows [][]string) (*frame.Frame, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
		if headers[i] == "" {
			return nil, fmt.Errorf("empty column name at position %d", i)
		}
	}

	nRows := len(rows) - 1
	cells := make([][]string, len(headers))
	for j := range cells {
		cells[j] = make([]string, nRows)
	}
	for i := 1; i < len(rows); i++ {
		for j := range headers {
			if j < len(rows[i]) {
				cells[j][i-1] = strings.TrimSpace(rows[i][j])
			}
		}
	}

	cols := make([]frame.Column, len(headers))
	for j, header := range headers {
		cols[j] = buildColumn(header, cells[j])
	}

	log.Printf("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), nRows)

	return frame.New(cols...)
}

// buildColumn types one column: numeric when every observed cell parses as a
// float, categorical otherwise
func buildColumn(name string, raw []string) frame.Column {
	numeric := true
	observed := 0
	for _, cell := range raw {
		if isMissing(cell) {
			continue
		}
		observed++
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			numeric = false
			break
		}
	}
	// a column with no observed values stays categorical, all missing
	if observed == 0 {
		numeric = false
	}

	values := make([]frame.Value, len(raw))
	for i, cell := range raw {
		switch {
		case isMissing(cell):
			values[i] = frame.NA()
		case numeric:
			v, _ := strconv.ParseFloat(cell, 64)
			values[i] = frame.Num(v)
		default:
			values[i] = frame.Cat(cell)
		}
	}
	return frame.NewColumn(name, values)
}

func isMissing(cell string) bool {
	return missingMarkers[strings.ToLower(cell)]
}
