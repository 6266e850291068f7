package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Beviryon/BeCandidature-sub000/internal/candidature"
)

// jobPostingLD mirrors the parts of a schema.org JobPosting block we mine.
type jobPostingLD struct {
	Type               any    `json:"@type"`
	Title              string `json:"title"`
	HiringOrganization struct {
		Name string `json:"name"`
	} `json:"hiringOrganization"`
}

// applyHTML enriches a URL-derived draft from page HTML, filling only the
// fields still empty. Priority order: og:title, then the <title> tag (with
// site-name tokens filtered out), then og:site_name, then JSON-LD
// JobPosting blocks.
func applyHTML(draft *candidature.Draft, html string, tokens []string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return
	}

	if ogTitle, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		title, company := splitTitle(ogTitle, tokens)
		fillEmpty(&draft.Title, title)
		fillEmpty(&draft.Company, company)
	}

	if draft.Title == "" || draft.Company == "" {
		title, company := splitTitle(doc.Find("title").First().Text(), tokens)
		fillEmpty(&draft.Title, title)
		fillEmpty(&draft.Company, company)
	}

	if siteName, ok := doc.Find(`meta[property="og:site_name"]`).Attr("content"); ok {
		fillEmpty(&draft.Company, filterTokens(siteName, tokens))
	}

	if draft.Title == "" || draft.Company == "" {
		doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if posting, ok := parseJobPostingLD(s.Text()); ok {
				fillEmpty(&draft.Title, posting.Title)
				fillEmpty(&draft.Company, posting.HiringOrganization.Name)
			}
			return draft.Title == "" || draft.Company == ""
		})
	}
}

// applyTitleHint re-applies the title split to a caller-supplied page title.
// Hint-derived values override whatever enrichment produced, for the fields
// the hint actually covers.
func applyTitleHint(draft *candidature.Draft, hint string, tokens []string) {
	title, company := splitTitle(hint, tokens)
	if title != "" {
		draft.Title = title
	}
	if company != "" {
		draft.Company = company
	}
}

// splitTitle breaks a page title of the shape "Title | Company" (or
// "Title chez Company", "Title - Company") into its two halves, dropping
// site-name tokens.
func splitTitle(raw string, tokens []string) (title, company string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}

	var parts []string
	switch {
	case strings.Contains(raw, "|"):
		parts = strings.Split(raw, "|")
	case strings.Contains(raw, " chez "):
		parts = strings.SplitN(raw, " chez ", 2)
	case strings.Contains(raw, " - "):
		parts = strings.SplitN(raw, " - ", 2)
	default:
		return filterTokens(raw, tokens), ""
	}

	var kept []string
	for _, part := range parts {
		if cleaned := filterTokens(part, tokens); cleaned != "" {
			kept = append(kept, cleaned)
		}
	}
	switch len(kept) {
	case 0:
		return "", ""
	case 1:
		return kept[0], ""
	default:
		return kept[0], kept[1]
	}
}

// filterTokens removes site-name tokens; a part that was nothing but the
// site name collapses to "".
func filterTokens(part string, tokens []string) string {
	part = strings.TrimSpace(part)
	for _, token := range tokens {
		if strings.EqualFold(part, token) {
			return ""
		}
		part = strings.TrimSpace(strings.ReplaceAll(part, token, ""))
	}
	return part
}

// parseJobPostingLD decodes one JSON-LD block, unwrapping the array form,
// and returns the first JobPosting found.
func parseJobPostingLD(raw string) (jobPostingLD, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return jobPostingLD{}, false
	}

	var single jobPostingLD
	if err := json.Unmarshal([]byte(raw), &single); err == nil && isJobPosting(single.Type) {
		return single, true
	}

	var list []jobPostingLD
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		for _, entry := range list {
			if isJobPosting(entry.Type) {
				return entry, true
			}
		}
	}
	return jobPostingLD{}, false
}

// isJobPosting handles "@type": "JobPosting" as well as the list form.
func isJobPosting(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "JobPosting"
	case []any:
		for _, entry := range v {
			if s, ok := entry.(string); ok && s == "JobPosting" {
				return true
			}
		}
	}
	return false
}

func fillEmpty(dst *string, value string) {
	if *dst == "" && value != "" {
		*dst = value
	}
}
