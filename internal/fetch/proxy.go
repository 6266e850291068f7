package fetch

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultMirrors are the public CORS-proxy passthrough services used when no
// explicit mirror list is configured. Each entry is a prefix; the target URL
// is appended query-escaped.
var DefaultMirrors = []string{
	"https://api.allorigins.win/raw?url=",
	"https://corsproxy.io/?url=",
}

// Proxy fetches pages through CORS-proxy mirrors. All mirrors are tried in
// parallel and the first successful response wins; losing requests are
// canceled. A Proxy with no mirrors fetches directly.
type Proxy struct {
	mirrors []string
	options *Options
	cache   *Cache
}

// NewProxy creates a Proxy over the given mirrors. A nil or empty mirror
// list falls back to DefaultMirrors; pass cache nil to disable caching.
func NewProxy(mirrors []string, opts *Options, cache *Cache) *Proxy {
	if len(mirrors) == 0 {
		mirrors = DefaultMirrors
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Proxy{mirrors: mirrors, options: opts, cache: cache}
}

// Fetch retrieves the page at target through the configured mirrors.
func (p *Proxy) Fetch(ctx context.Context, target string) (*Result, error) {
	if p.cache != nil {
		html, err := p.cache.GetSet(ctx, target, func(ctx context.Context) ([]byte, error) {
			result, err := p.race(ctx, target)
			if err != nil {
				return nil, err
			}
			return []byte(result.HTML), nil
		})
		if err != nil {
			return nil, err
		}
		return &Result{URL: target, HTML: string(html), StatusCode: 200}, nil
	}
	return p.race(ctx, target)
}

// race tries every mirror concurrently and returns the first success.
func (p *Proxy) race(ctx context.Context, target string) (*Result, error) {
	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu     sync.Mutex
		winner *Result
	)

	g, gCtx := errgroup.WithContext(raceCtx)
	for _, mirror := range p.mirrors {
		proxied := mirror + url.QueryEscape(target)
		g.Go(func() error {
			result, err := URL(gCtx, proxied, p.options)
			if err != nil {
				// A single slow or blocked mirror must not fail the
				// race; the errgroup only reports total failure.
				return nil
			}
			mu.Lock()
			if winner == nil {
				winner = result
				winner.URL = target
				cancel()
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if winner == nil {
		return nil, fmt.Errorf("all %d proxy mirrors failed for %s", len(p.mirrors), target)
	}
	return winner, nil
}
