// Package extract derives candidature drafts from unstructured sources: a
// pasted email body or a job-posting URL. Extraction is heuristic and
// best-effort by contract; an unmatched field stays empty and the user edits
// the draft before saving.
package extract

import (
	"regexp"
	"strings"

	"github.com/Beviryon/BeCandidature-sub000/internal/candidature"
)

// fieldPatterns are evaluated in declaration order with first-match-wins
// semantics. Ordering matters: the more specific patterns come first, the
// loose capitalized-run fallbacks last.
type fieldPattern struct {
	re    *regexp.Regexp
	group int
}

// capitalized-word run, accent-aware ("Google France", "Société Générale").
// A dot ends the run so the capture never crosses a sentence boundary.
const capRun = `(\p{Lu}[\p{L}\d&'’-]*(?:\s+\p{Lu}[\p{L}\d&'’-]*)*)`

var companyPatterns = []fieldPattern{
	{regexp.MustCompile(`(?:chez|at)\s+` + capRun), 1},
	{regexp.MustCompile(`(?:la société|l’entreprise|l'entreprise|the company)\s+` + capRun), 1},
	{regexp.MustCompile(`(?:pour|from)\s+` + capRun), 1},
}

var titlePatterns = []fieldPattern{
	{regexp.MustCompile(`(?i)poste\s+d[e']\s*([^,.\n]+?)\s+(?:chez|au sein de|à|a)\s+`), 1},
	{regexp.MustCompile(`(?i)poste\s+d[e']\s*([^,.\n]+)`), 1},
	{regexp.MustCompile(`(?i)position\s+of\s+([^,.\n]+)`), 1},
	{regexp.MustCompile(`(?i)candidature\s+(?:pour|au poste)\s+([^,.\n]+)`), 1},
	{regexp.MustCompile(`(?i)offre\s+d'emploi\s*:?\s*([^,.\n]+)`), 1},
}

var contactPatterns = []fieldPattern{
	{regexp.MustCompile(`(?:Cordialement|Bien à vous|Bien cordialement|Sincèrement|Salutations|Best regards|Kind regards|Regards)[^\p{L}]*` +
		`(\p{Lu}[\p{L}'’-]+(?:\s+\p{Lu}[\p{L}'’-]+)+)`), 1},
	{regexp.MustCompile(`(?i)contact\s*:?\s*` + capRun), 1},
}

var emailRe = regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.-]+`)

var linkRe = regexp.MustCompile(`https?://\S+`)

// Rejection keywords are checked before interview keywords: a rejection
// email frequently mentions the interview it follows, and the terminal
// status must win.
var rejectionKeywords = []string{
	"malheureusement",
	"refus",
	"regret",
	"pas été retenu",
	"pas retenu",
	"ne donnons pas suite",
	"suite défavorable",
	"unfortunately",
	"not been selected",
	"not selected",
	"not to move forward",
}

var interviewKeywords = []string{
	"entretien",
	"interview",
	"rendez-vous",
	"convoqu",
	"échange téléphonique",
	"phone screen",
}

// FromText derives a best-effort draft from a pasted email body. It never
// fails: an empty input yields an all-empty draft with the default Pending
// status.
func FromText(text string) candidature.Draft {
	draft := candidature.Draft{
		Company: firstMatch(companyPatterns, text),
		Title:   firstMatch(titlePatterns, text),
		Contact: firstMatch(contactPatterns, text),
		Email:   emailRe.FindString(text),
		Link:    strings.TrimRight(linkRe.FindString(text), ".,;)"),
		Status:  detectStatus(text),
	}
	return draft
}

// firstMatch evaluates the ordered pattern list and returns the first
// capture, trimmed. Absence of a match is not an error; it returns "".
func firstMatch(patterns []fieldPattern, text string) string {
	for _, p := range patterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[p.group])
		}
	}
	return ""
}

// detectStatus scans for status keywords. Rejection beats interview; with
// no keyword at all the draft defaults to Pending.
func detectStatus(text string) candidature.Status {
	lower := strings.ToLower(text)
	for _, kw := range rejectionKeywords {
		if strings.Contains(lower, kw) {
			return candidature.StatusRejected
		}
	}
	for _, kw := range interviewKeywords {
		if strings.Contains(lower, kw) {
			return candidature.StatusInterview
		}
	}
	return candidature.StatusPending
}
