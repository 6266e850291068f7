// Package importer turns spreadsheet rows (xlsx exports, Google Sheets
// downloads) into candidature drafts, with per-row warnings instead of hard
// failures: an unreadable cell degrades to a safe default and a visual flag.
package importer

import (
	"strconv"
	"strings"
	"time"
)

// excelEpoch is the classic spreadsheet serial epoch, 1899-12-30. The two
// day offset from 1900-01-01 absorbs the historical Lotus leap-year bug, so
// serial arithmetic stays a plain AddDate.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// dateLayouts are tried in order for textual cells.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02/01/2006 15:04",
}

// ParseDate interprets a spreadsheet cell as a calendar date. Numeric cells
// are treated as Excel serials on the 1899-12-30 epoch and accepted only
// when the resulting year is plausible (strictly between 1900 and 2100);
// textual cells are matched against ISO, DD/MM/YYYY and RFC3339 layouts.
// The second return value is false when the cell is unparseable; callers
// substitute today and flag the row.
func ParseDate(cell string) (time.Time, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(cell, 64); err == nil {
		return dateFromSerial(serial)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return dateOnly(t), true
		}
	}
	return time.Time{}, false
}

// dateFromSerial converts an Excel day serial, rejecting implausible
// results instead of silently producing dates decades off.
func dateFromSerial(serial float64) (time.Time, bool) {
	t := excelEpoch.AddDate(0, 0, int(serial))
	if year := t.Year(); year <= 1900 || year >= 2100 {
		return time.Time{}, false
	}
	return t, true
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
