package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beviryon/BeCandidature-sub000/internal/candidature"
)

func TestMapHeaders(t *testing.T) {
	headers := []string{"Entreprise", "Poste", "Date de candidature", "Statut", "E-mail", "Lien", "Commentaire"}
	columns := MapHeaders(headers)

	assert.Equal(t, map[string]int{
		"company": 0,
		"title":   1,
		"date":    2,
		"status":  3,
		"email":   4,
		"link":    5,
		"notes":   6,
	}, columns)
}

func TestMapHeaders_UnrecognizedIgnored(t *testing.T) {
	columns := MapHeaders([]string{"Company", "Salaire", "Title"})
	assert.Equal(t, map[string]int{"company": 0, "title": 2}, columns)
}

func TestMapRow_CleanRow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	columns := MapHeaders([]string{"Entreprise", "Poste", "Date", "Statut", "Email"})

	draft, warnings := MapRow(columns, []string{"Google France", "Développeur Full Stack", "15/05/2025", "Entretien", "marie.dupont@google.com"}, now)

	assert.Empty(t, warnings)
	assert.Equal(t, "Google France", draft.Company)
	assert.Equal(t, "Développeur Full Stack", draft.Title)
	assert.Equal(t, candidature.StatusInterview, draft.Status)
	assert.Equal(t, time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC), draft.ApplicationDate)
	assert.Equal(t, "marie.dupont@google.com", draft.Email)
}

func TestMapRow_Degradations(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	columns := MapHeaders([]string{"Company", "Title", "Date", "Status", "Email"})

	draft, warnings := MapRow(columns, []string{"Acme", "Backend Dev", "bientôt", "ghosté", "not-an-email"}, now)

	require.Len(t, warnings, 3)
	fields := []string{warnings[0].Field, warnings[1].Field, warnings[2].Field}
	assert.ElementsMatch(t, []string{"status", "date", "email"}, fields)

	assert.Equal(t, candidature.StatusPending, draft.Status, "unrecognized status degrades to Pending")
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), draft.ApplicationDate, "unparseable date degrades to today")
	assert.Empty(t, draft.Email, "invalid email is dropped")
}

func TestMapRow_EmptyCellsNoWarnings(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	columns := MapHeaders([]string{"Company", "Date", "Status", "Email"})

	draft, warnings := MapRow(columns, []string{"Acme", "", "", ""}, now)

	assert.Empty(t, warnings, "blank cells default silently")
	assert.Equal(t, candidature.StatusPending, draft.Status)
	assert.Equal(t, dateOnly(now), draft.ApplicationDate)
}

func TestMapRow_ShortRow(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	columns := MapHeaders([]string{"Company", "Title", "Email"})

	draft, warnings := MapRow(columns, []string{"Acme"}, now)

	assert.Empty(t, warnings)
	assert.Equal(t, "Acme", draft.Company)
	assert.Empty(t, draft.Title)
	assert.Empty(t, draft.Email)
}
