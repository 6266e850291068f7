package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/Beviryon/BeCandidature-sub000/internal/candidature"
)

// headerAliases maps recognized (folded) spreadsheet column headers to
// canonical field names. Imports come from both French and English sheets.
var headerAliases = map[string]string{
	"entreprise": "company",
	"societe":    "company",
	"société":    "company",
	"company":    "company",

	"poste":     "title",
	"titre":     "title",
	"intitule":  "title",
	"intitulé":  "title",
	"title":     "title",
	"job title": "title",

	"date":                 "date",
	"date de candidature":  "date",
	"date candidature":     "date",
	"application date":     "date",
	"applied":              "date",

	"statut": "status",
	"status": "status",
	"etat":   "status",
	"état":   "status",

	"contact":    "contact",
	"recruteur":  "contact",
	"recruiter":  "contact",

	"email":    "email",
	"e-mail":   "email",
	"mail":     "email",
	"courriel": "email",

	"lien": "link",
	"url":  "link",
	"link": "link",

	"contrat":         "contract",
	"type de contrat": "contract",
	"contract":        "contract",

	"notes":       "notes",
	"note":        "notes",
	"commentaire": "notes",
	"comments":    "notes",
}

// Warning flags a cell that was degraded to a default during import. The
// row still imports; the UI marks the field visually.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// MapHeaders resolves a header row to a canonical-field → column-index
// mapping. Unrecognized columns are ignored.
func MapHeaders(headers []string) map[string]int {
	columns := make(map[string]int)
	for i, header := range headers {
		key := strings.ToLower(strings.TrimSpace(header))
		if field, ok := headerAliases[key]; ok {
			if _, taken := columns[field]; !taken {
				columns[field] = i
			}
		}
	}
	return columns
}

// MapRow converts one data row into a draft plus warnings. Unrecognized
// statuses degrade to Pending, unparseable dates to today (now), malformed
// emails are dropped; each degradation produces a Warning, never an error.
func MapRow(columns map[string]int, cells []string, now time.Time) (candidature.Draft, []Warning) {
	var warnings []Warning
	draft := candidature.Draft{
		Company:      cellAt(columns, cells, "company"),
		Title:        cellAt(columns, cells, "title"),
		Contact:      cellAt(columns, cells, "contact"),
		Link:         cellAt(columns, cells, "link"),
		ContractType: cellAt(columns, cells, "contract"),
		Notes:        cellAt(columns, cells, "notes"),
	}

	rawStatus := cellAt(columns, cells, "status")
	if status, ok := candidature.NormalizeStatus(rawStatus); ok {
		draft.Status = status
	} else {
		draft.Status = candidature.StatusPending
		if rawStatus != "" {
			warnings = append(warnings, Warning{
				Field:   "status",
				Message: fmt.Sprintf("unrecognized status %q, defaulting to Pending", rawStatus),
			})
		}
	}

	rawDate := cellAt(columns, cells, "date")
	if date, ok := ParseDate(rawDate); ok {
		draft.ApplicationDate = date
	} else {
		draft.ApplicationDate = dateOnly(now)
		if rawDate != "" {
			warnings = append(warnings, Warning{
				Field:   "date",
				Message: fmt.Sprintf("unparseable date %q, defaulting to today", rawDate),
			})
		}
	}

	if email := cellAt(columns, cells, "email"); email != "" {
		if candidature.ValidEmail(email) {
			draft.Email = email
		} else {
			warnings = append(warnings, Warning{
				Field:   "email",
				Message: fmt.Sprintf("invalid email %q dropped", email),
			})
		}
	}

	return draft, warnings
}

func cellAt(columns map[string]int, cells []string, field string) string {
	i, ok := columns[field]
	if !ok || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}
