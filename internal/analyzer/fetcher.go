package analyzer

import (
	"context"
	"errors"
	"fmt"

	colly "github.com/gocolly/colly/v2"

	"github.com/jonesrussell/north-cloud/social-planner/internal/config"
)

// ErrEmptyBody is returned when a page answers without content.
var ErrEmptyBody = errors.New("empty response body")

// Page is a fetched document.
type Page struct {
	URL  string
	Body []byte
}

// Fetcher downloads one page.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*Page, error)
}

// CollyFetcher fetches single pages with a fresh colly collector per call.
type CollyFetcher struct {
	cfg config.AnalyzerConfig
}

// NewCollyFetcher creates a fetcher honouring the analyzer timeout, body limit
// and user agent.
func NewCollyFetcher(cfg config.AnalyzerConfig) *CollyFetcher {
	return &CollyFetcher{cfg: cfg}
}

// Fetch visits pageURL without following links. Redirects are followed and the
// final URL is reported.
func (f *CollyFetcher) Fetch(ctx context.Context, pageURL string) (*Page, error) {
	c := colly.NewCollector(
		colly.UserAgent(f.cfg.UserAgent),
		colly.MaxBodySize(f.cfg.MaxBodyBytes),
		colly.MaxDepth(1),
		colly.AllowURLRevisit(),
		colly.StdlibContext(ctx),
	)
	if f.cfg.Timeout > 0 {
		c.SetRequestTimeout(f.cfg.Timeout)
	}

	var (
		page     *Page
		fetchErr error
	)
	c.OnResponse(func(r *colly.Response) {
		page = &Page{URL: r.Request.URL.String(), Body: r.Body}
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode > 0 {
			fetchErr = fmt.Errorf("fetch %s: status %d: %w", pageURL, r.StatusCode, err)
			return
		}
		fetchErr = fmt.Errorf("fetch %s: %w", pageURL, err)
	})

	if err := c.Visit(pageURL); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	c.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	if page == nil || len(page.Body) == 0 {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, ErrEmptyBody)
	}
	return page, nil
}
