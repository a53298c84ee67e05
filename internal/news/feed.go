package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	infraerrors "github.com/jonesrussell/north-cloud/social-planner/infrastructure/errors"
	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
	"github.com/jonesrussell/north-cloud/social-planner/internal/lexicon"
)

const (
	maxSummaryLen      = 200
	unknownFeedSource  = "Unknown"
	googleNewsSource   = "Google News"
	googleNewsKeywords = 3
)

// Fetcher downloads and parses one feed.
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string) (*gofeed.Feed, error)
}

// HTTPFetcher fetches RSS and Atom feeds over HTTP.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher using client.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

// Fetch downloads feedURL and parses it with gofeed.
func (f *HTTPFetcher) Fetch(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("fetch feed %s: %w", feedURL, infraerrors.ParseHTTPError(resp))
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}
	return feed, nil
}

// relevantItems keeps entries whose title or description mentions a keyword.
func relevantItems(feed *gofeed.Feed, keywords []string, limit int) []domain.NewsItem {
	source := strings.TrimSpace(feed.Title)
	if source == "" {
		source = unknownFeedSource
	}

	var items []domain.NewsItem
	for _, entry := range feed.Items[:min(limit, len(feed.Items))] {
		if len(items) >= limit {
			break
		}
		text := strings.ToLower(entry.Title + " " + entry.Description)
		if !containsAny(text, keywords) {
			continue
		}
		items = append(items, newsItem(entry, entry.Title, source, domain.NewsKindRSS))
	}
	return items
}

// googleNewsURL builds a Google News RSS search over the first keywords.
func googleNewsURL(base string, keywords []string) string {
	q := url.Values{}
	q.Set("q", strings.Join(keywords[:min(googleNewsKeywords, len(keywords))], " OR "))
	q.Set("hl", "en-US")
	q.Set("gl", "US")
	q.Set("ceid", "US:en")
	return base + "?" + q.Encode()
}

// googleItems converts search results, dropping the " - Publisher" title suffix.
func googleItems(feed *gofeed.Feed, limit int) []domain.NewsItem {
	items := make([]domain.NewsItem, 0, min(limit, len(feed.Items)))
	for _, entry := range feed.Items[:min(limit, len(feed.Items))] {
		title := entry.Title
		if i := strings.LastIndex(title, " - "); i >= 0 {
			title = title[:i]
		}
		items = append(items, newsItem(entry, title, googleNewsSource, domain.NewsKindGoogleNews))
	}
	return items
}

func newsItem(entry *gofeed.Item, headline, source, kind string) domain.NewsItem {
	item := domain.NewsItem{
		Headline: headline,
		Summary:  truncate(entry.Description, maxSummaryLen),
		URL:      entry.Link,
		Source:   source,
		Kind:     kind,
	}
	if entry.PublishedParsed != nil {
		item.PublishedDate = *entry.PublishedParsed
	}
	return item
}

// mockItems returns up to n canned headlines for industry, dated back one day each.
func mockItems(industry domain.Industry, n int, now time.Time) []domain.NewsItem {
	headlines := sourceFor(industry).headlines
	items := make([]domain.NewsItem, 0, min(n, len(headlines)))
	for i, headline := range headlines[:min(n, len(headlines))] {
		items = append(items, domain.NewsItem{
			Headline: headline,
			Summary: fmt.Sprintf("Industry analysis shows significant trends in %s. "+
				"This development could impact local businesses in various ways.", strings.ToLower(headline)),
			URL:           fmt.Sprintf("https://example-news.com/article/%d", i+1),
			PublishedDate: now.AddDate(0, 0, -i),
			Source:        lexicon.DefaultNewsSource,
			Kind:          domain.NewsKindMock,
		})
	}
	return items
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(text, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
