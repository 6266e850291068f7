package extract

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/Beviryon/BeCandidature-sub000/internal/candidature"
	"github.com/Beviryon/BeCandidature-sub000/internal/fetch"
)

// ErrInvalidURL is returned when the input cannot be parsed as an absolute
// http(s) URL. It is the only error FromURL reports; everything past URL
// validation degrades gracefully.
var ErrInvalidURL = errors.New("invalid URL")

// URLExtractor derives drafts from job-posting URLs, optionally enriched by
// fetching the page through a CORS proxy.
type URLExtractor struct {
	proxy      *fetch.Proxy
	useBrowser bool
}

// NewURLExtractor creates a URLExtractor. A nil proxy disables network
// enrichment entirely; useBrowser enables the headless-browser fallback for
// pages that come back as empty SPA shells.
func NewURLExtractor(proxy *fetch.Proxy, useBrowser bool) *URLExtractor {
	return &URLExtractor{proxy: proxy, useBrowser: useBrowser}
}

// FromURL derives a draft from a job-posting URL. The URL must parse as an
// absolute http(s) URL; anything else reports ErrInvalidURL. Network
// enrichment is best-effort: a blocked or failed fetch is swallowed and the
// draft derived from the URL shape alone is returned.
//
// An optional hint carries the page title the caller already has (e.g. from
// a browser extension); hint-derived fields win over network-derived ones.
func (e *URLExtractor) FromURL(ctx context.Context, rawURL, hint string) (candidature.Draft, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return candidature.Draft{}, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	draft := fromURLShape(parsed)
	if draft.Link == "" {
		draft.Link = rawURL
	}
	draft.Status = candidature.StatusPending
	tokens := siteTokens(DetectSite(parsed))

	if e.proxy != nil {
		if result, fetchErr := e.proxy.Fetch(ctx, rawURL); fetchErr == nil {
			html := result.HTML
			if e.useBrowser && fetch.ShouldUseBrowser(html) {
				if rendered, browserErr := fetch.Browser(ctx, rawURL, 0); browserErr == nil {
					html = rendered
				}
			}
			applyHTML(&draft, html, tokens)
		} else {
			log.Printf("[extract] enrichment fetch failed for %s: %v", rawURL, fetchErr)
		}
	}

	if hint != "" {
		applyTitleHint(&draft, hint, tokens)
	}

	return draft, nil
}
