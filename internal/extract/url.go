package extract

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/Beviryon/BeCandidature-sub000/internal/candidature"
)

// Site identifies a known job board.
type Site string

const (
	SiteLinkedIn Site = "linkedin"
	SiteIndeed   Site = "indeed"
	SiteWTTJ     Site = "wttj"
	SiteUnknown  Site = "unknown"
)

// DetectSite identifies the job board from a parsed URL.
func DetectSite(u *url.URL) Site {
	host := strings.ToLower(u.Hostname())
	switch {
	case strings.Contains(host, "linkedin.com"):
		return SiteLinkedIn
	case strings.Contains(host, "indeed."):
		return SiteIndeed
	case strings.Contains(host, "welcometothejungle.com"):
		return SiteWTTJ
	}
	return SiteUnknown
}

// siteTokens lists site-name words filtered out of <title> tags so that
// "Jobs | LinkedIn" does not become a company name.
func siteTokens(site Site) []string {
	switch site {
	case SiteLinkedIn:
		return []string{"LinkedIn"}
	case SiteIndeed:
		return []string{"Indeed", "Indeed.com"}
	case SiteWTTJ:
		return []string{"Welcome to the Jungle"}
	}
	return nil
}

// fromURLShape derives what it can from the URL alone, without any network
// access. Each site has its own slug conventions.
func fromURLShape(u *url.URL) candidature.Draft {
	var draft candidature.Draft
	segments := pathSegments(u)

	switch DetectSite(u) {
	case SiteLinkedIn:
		if slug := segmentAfter(segments, "company"); slug != "" {
			draft.Company = humanizeSlug(slug)
		}
		// Search and collection pages carry the posting ID in currentJobId;
		// canonicalize to the direct job view link.
		if jobID := u.Query().Get("currentJobId"); jobID != "" {
			draft.Link = "https://www.linkedin.com/jobs/view/" + jobID
		}
	case SiteIndeed:
		query := u.Query()
		if title := query.Get("title"); title != "" {
			draft.Title = title
		}
		if company := query.Get("company"); company != "" {
			draft.Company = company
		} else if company := query.Get("cmp"); company != "" {
			draft.Company = company
		}
	case SiteWTTJ:
		if slug := segmentAfter(segments, "companies"); slug != "" {
			draft.Company = humanizeSlug(slug)
		}
		if slug := segmentAfter(segments, "jobs"); slug != "" {
			draft.Title = humanizeSlug(slug)
		}
	}

	return draft
}

func pathSegments(u *url.URL) []string {
	var segments []string
	for _, segment := range strings.Split(u.Path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

// segmentAfter returns the path segment immediately following marker.
func segmentAfter(segments []string, marker string) string {
	for i, segment := range segments {
		if segment == marker && i+1 < len(segments) {
			return segments[i+1]
		}
	}
	return ""
}

// humanizeSlug turns "google-france" into "Google France": hyphens and
// underscores become spaces, each word gets title case.
func humanizeSlug(slug string) string {
	slug = strings.ReplaceAll(slug, "-", " ")
	slug = strings.ReplaceAll(slug, "_", " ")
	words := strings.Fields(slug)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
