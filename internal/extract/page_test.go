package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Beviryon/BeCandidature-sub000/internal/candidature"
)

func TestSplitTitle(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		tokens  []string
		title   string
		company string
	}{
		{"pipe separator", "Data Engineer | Criteo", nil, "Data Engineer", "Criteo"},
		{"chez separator", "Data Engineer chez Criteo", nil, "Data Engineer", "Criteo"},
		{"dash separator", "Data Engineer - Criteo", nil, "Data Engineer", "Criteo"},
		{"site token dropped", "Data Engineer | Criteo | LinkedIn", []string{"LinkedIn"}, "Data Engineer", "Criteo"},
		{"only site token", "LinkedIn", []string{"LinkedIn"}, "", ""},
		{"no separator", "Data Engineer", nil, "Data Engineer", ""},
		{"empty", "", nil, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, company := splitTitle(tt.raw, tt.tokens)
			assert.Equal(t, tt.title, title)
			assert.Equal(t, tt.company, company)
		})
	}
}

func TestApplyHTML_SiteNameFallback(t *testing.T) {
	html := `<html><head>
		<title>Offres d'emploi</title>
		<meta property="og:site_name" content="Acme Recrutement">
	</head></html>`

	draft := candidature.Draft{}
	applyHTML(&draft, html, nil)
	assert.Equal(t, "Acme Recrutement", draft.Company)
	assert.Equal(t, "Offres d'emploi", draft.Title)
}

func TestApplyHTML_DoesNotOverwrite(t *testing.T) {
	html := `<html><head><meta property="og:title" content="Other Role | Other Co"></head></html>`
	draft := candidature.Draft{Title: "Kept Title", Company: "Kept Co"}
	applyHTML(&draft, html, nil)
	assert.Equal(t, "Kept Title", draft.Title)
	assert.Equal(t, "Kept Co", draft.Company)
}

func TestParseJobPostingLD(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		found bool
		title string
	}{
		{"bare object", `{"@type":"JobPosting","title":"DevOps"}`, true, "DevOps"},
		{"array wrapped", `[{"@type":"Organization"},{"@type":"JobPosting","title":"DevOps"}]`, true, "DevOps"},
		{"type list", `{"@type":["JobPosting"],"title":"DevOps"}`, true, "DevOps"},
		{"wrong type", `{"@type":"Organization","name":"Acme"}`, false, ""},
		{"invalid json", `{oops`, false, ""},
		{"empty", ``, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posting, found := parseJobPostingLD(tt.raw)
			assert.Equal(t, tt.found, found)
			if found {
				assert.Equal(t, tt.title, posting.Title)
			}
		})
	}
}
