package importer

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Beviryon/BeCandidature-sub000/internal/candidature"
)

func buildWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, cells := range rows {
		for j, cell := range cells {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellStr(sheet, ref, cell))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestParse(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	buf := buildWorkbook(t, [][]string{
		{"Entreprise", "Poste", "Date", "Statut", "Email"},
		{"Google France", "Développeur Full Stack", "15/05/2025", "Entretien", "marie.dupont@google.com"},
		{"", "", "", "", ""},
		{"Acme", "Backend Dev", "n/a", "Refusé", ""},
	})

	results, err := Parse(buf, now)
	require.NoError(t, err)
	require.Len(t, results, 2, "blank rows are skipped")

	assert.Equal(t, 2, results[0].Row)
	assert.Equal(t, "Google France", results[0].Draft.Company)
	assert.Equal(t, candidature.StatusInterview, results[0].Draft.Status)
	assert.Empty(t, results[0].Warnings)

	assert.Equal(t, 4, results[1].Row, "row numbers stay aligned with the sheet")
	assert.Equal(t, candidature.StatusRejected, results[1].Draft.Status)
	require.Len(t, results[1].Warnings, 1)
	assert.Equal(t, "date", results[1].Warnings[0].Field)
}

func TestParse_NoRecognizableHeader(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"Foo", "Bar"},
		{"x", "y"},
	})

	_, err := Parse(buf, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no recognizable columns")
}

func TestParse_NotAWorkbook(t *testing.T) {
	_, err := Parse(bytes.NewBufferString("not an xlsx"), time.Now())
	require.Error(t, err)
}

func TestParse_ManyRows(t *testing.T) {
	rows := [][]string{{"Company", "Title", "Date", "Status"}}
	for i := 0; i < 20; i++ {
		rows = append(rows, []string{
			fmt.Sprintf("Company %d", i),
			"Engineer",
			"2025-01-10",
			"En attente",
		})
	}
	buf := buildWorkbook(t, rows)

	results, err := Parse(buf, time.Now())
	require.NoError(t, err)
	require.Len(t, results, 20)
	for _, r := range results {
		assert.Equal(t, candidature.StatusPending, r.Draft.Status)
		assert.Empty(t, r.Warnings)
	}
}
