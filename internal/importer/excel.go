package importer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Beviryon/BeCandidature-sub000/internal/candidature"
)

// Sheet holds the parsed content of one spreadsheet.
type Sheet struct {
	Columns map[string]int
	Rows    [][]string
}

// ReadXLSX parses the first sheet of an xlsx stream: the first row is the
// header, everything below is data.
func ReadXLSX(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	columns := MapHeaders(rows[0])
	if len(columns) == 0 {
		return nil, fmt.Errorf("no recognizable columns in header row %v", rows[0])
	}

	return &Sheet{Columns: columns, Rows: rows[1:]}, nil
}

// Result is one imported row: the draft plus any degradation warnings.
type Result struct {
	Row      int               `json:"row"`
	Draft    candidature.Draft `json:"draft"`
	Warnings []Warning         `json:"warnings,omitempty"`
}

// Parse reads an xlsx stream and maps every data row to a draft. Rows whose
// cells are all empty are skipped.
func Parse(r io.Reader, now time.Time) ([]Result, error) {
	sheet, err := ReadXLSX(r)
	if err != nil {
		return nil, err
	}

	var results []Result
	for i, cells := range sheet.Rows {
		if allEmpty(cells) {
			continue
		}
		draft, warnings := MapRow(sheet.Columns, cells, now)
		results = append(results, Result{
			Row:      i + 2, // 1-based, after the header row
			Draft:    draft,
			Warnings: warnings,
		})
	}
	return results, nil
}

func allEmpty(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
