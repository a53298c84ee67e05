// Package news gathers industry headlines for insight posts from RSS feeds,
// Google News and a built-in fallback set.
package news

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/social-planner/internal/config"
	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
	"github.com/jonesrussell/north-cloud/social-planner/internal/telemetry"
)

// DefaultLimit is the number of items returned when the caller asks for none.
const DefaultLimit = 5

const cacheKeyPrefix = "social-planner:news"

// Service looks up industry news. Fetch failures degrade to fewer live items
// and more canned ones; they never fail a lookup.
type Service struct {
	cfg     config.NewsConfig
	fetcher Fetcher
	cache   Cache
	log     logger.Logger
	metrics *telemetry.Metrics
	now     func() time.Time
}

// NewService creates a news service. cache may be nil.
func NewService(cfg config.NewsConfig, fetcher Fetcher, cache Cache, log logger.Logger, metrics *telemetry.Metrics) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{cfg: cfg, fetcher: fetcher, cache: cache, log: log, metrics: metrics, now: time.Now}
}

// IndustryNews returns up to limit annotated items for industry. Extra
// keywords widen RSS matching and the Google News query.
func (s *Service) IndustryNews(ctx context.Context, industry domain.Industry, keywords []string, limit int) ([]domain.NewsItem, error) {
	industry = domain.ParseIndustry(string(industry))
	if limit <= 0 {
		limit = DefaultLimit
	}
	if s.cfg.MaxItems > 0 && limit > s.cfg.MaxItems {
		limit = s.cfg.MaxItems
	}

	key := cacheKey(industry, keywords, limit)
	if items, ok, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn("News cache read failed", logger.String("key", key), logger.Error(err))
	} else if ok {
		return items, nil
	}

	src := sourceFor(industry)
	all := append(slices.Clone(src.keywords), keywords...)

	items := s.rssNews(ctx, s.feedsFor(industry, src), all, limit/2)
	items = append(items, s.googleNews(ctx, all, limit/2)...)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("industry news: %w", err)
	}

	if len(items) < limit {
		items = append(items, mockItems(industry, limit-len(items), s.now())...)
	}
	items = items[:min(limit, len(items))]

	for i := range items {
		items[i].BusinessInsights = BusinessInsights(items[i].Headline, industry)
		items[i].ContentIdeas = ContentIdeas(items[i].Headline, industry)
	}

	if err := s.cache.Set(ctx, key, items, s.cfg.CacheTTL); err != nil {
		s.log.Warn("News cache write failed", logger.String("key", key), logger.Error(err))
	}
	return items, nil
}

// Warm refreshes the cache for each industry at the default limit.
func (s *Service) Warm(ctx context.Context, industries []domain.Industry) error {
	for _, industry := range industries {
		if _, err := s.IndustryNews(ctx, industry, nil, DefaultLimit); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) feedsFor(industry domain.Industry, src industrySource) []string {
	if feeds, ok := s.cfg.Feeds[string(industry)]; ok {
		return feeds
	}
	return src.feeds
}

func (s *Service) rssNews(ctx context.Context, feeds, keywords []string, limit int) []domain.NewsItem {
	if limit <= 0 || s.fetcher == nil {
		return nil
	}

	var items []domain.NewsItem
	for _, feedURL := range feeds {
		if len(items) >= limit {
			break
		}
		feed, err := s.fetcher.Fetch(ctx, feedURL)
		s.metrics.NewsFetched(domain.NewsKindRSS, err)
		if err != nil {
			s.log.Warn("RSS feed fetch failed", logger.String("feed", feedURL), logger.Error(err))
			continue
		}
		items = append(items, relevantItems(feed, keywords, limit-len(items))...)
	}
	return items
}

func (s *Service) googleNews(ctx context.Context, keywords []string, limit int) []domain.NewsItem {
	if limit <= 0 || s.fetcher == nil || s.cfg.GoogleNewsURL == "" || len(keywords) == 0 {
		return nil
	}

	searchURL := googleNewsURL(s.cfg.GoogleNewsURL, keywords)
	feed, err := s.fetcher.Fetch(ctx, searchURL)
	s.metrics.NewsFetched(domain.NewsKindGoogleNews, err)
	if err != nil {
		s.log.Warn("Google News fetch failed", logger.String("url", searchURL), logger.Error(err))
		return nil
	}
	return googleItems(feed, limit)
}

func cacheKey(industry domain.Industry, keywords []string, limit int) string {
	norm := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			norm = append(norm, k)
		}
	}
	slices.Sort(norm)
	norm = slices.Compact(norm)
	return fmt.Sprintf("%s:%s:%s:%d", cacheKeyPrefix, industry, strings.Join(norm, ","), limit)
}
