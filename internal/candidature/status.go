// Package candidature provides the core domain model for tracked job
// applications: canonical statuses, the status normalizer used by the import
// pipelines, and the follow-up scheduler.
package candidature

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Status is a canonical application status. The rest of the system only
// reasons about these three values; import paths normalize foreign spellings
// into this set.
type Status string

const (
	// StatusPending means the application is awaiting an answer.
	StatusPending Status = "Pending"
	// StatusInterview means an interview has been scheduled or held.
	StatusInterview Status = "Interview"
	// StatusRejected means the application was turned down.
	StatusRejected Status = "Rejected"
)

// Valid reports whether s is one of the three canonical statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInterview, StatusRejected:
		return true
	}
	return false
}

// statusSynonyms maps folded spreadsheet/status spellings to canonical
// statuses. Keys are lower-case, diacritic-free, with '_' and '-' collapsed
// to spaces (see foldStatus).
var statusSynonyms = map[string]Status{
	"pending":      StatusPending,
	"waiting":      StatusPending,
	"applied":      StatusPending,
	"en attente":   StatusPending,
	"en cours":     StatusPending,
	"envoyee":      StatusPending,
	"envoye":       StatusPending,
	"postule":      StatusPending,
	"sans reponse": StatusPending,

	"interview":  StatusInterview,
	"entretien":  StatusInterview,
	"entrevue":   StatusInterview,
	"rdv":        StatusInterview,
	"interviews": StatusInterview,

	"rejected":                StatusRejected,
	"refuse":                  StatusRejected,
	"refusee":                 StatusRejected,
	"refus":                   StatusRejected,
	"declined":                StatusRejected,
	"rejete":                  StatusRejected,
	"rejetee":                 StatusRejected,
	"negatif":                 StatusRejected,
	"non retenu":              StatusRejected,
	"non retenue":             StatusRejected,
	"candidature non retenue": StatusRejected,
}

var statusFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldStatus lower-cases raw, strips diacritics and collapses '_'/'-'
// separators so that "EN_ATTENTE", "Envoyée" and "en attente" all fold to
// the same key.
func foldStatus(raw string) string {
	folded, _, err := transform.String(statusFolder, raw)
	if err != nil {
		folded = raw
	}
	folded = strings.ToLower(strings.TrimSpace(folded))
	folded = strings.ReplaceAll(folded, "_", " ")
	folded = strings.ReplaceAll(folded, "-", " ")
	return strings.Join(strings.Fields(folded), " ")
}

// NormalizeStatus maps an arbitrary status string to a canonical Status.
// Lookup order: folded synonym table first, then a case-sensitive exact
// match against the canonical labels. The second return value is false when
// the input is unrecognized; callers substitute StatusPending and flag the
// row rather than failing.
func NormalizeStatus(raw string) (Status, bool) {
	if status, ok := statusSynonyms[foldStatus(raw)]; ok {
		return status, true
	}
	if status := Status(strings.TrimSpace(raw)); status.Valid() {
		return status, true
	}
	return "", false
}
