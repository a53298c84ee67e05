// Package analyzer builds business profiles from business websites.
package analyzer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/social-planner/internal/classifier"
	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
	"github.com/jonesrussell/north-cloud/social-planner/internal/telemetry"
)

// ErrEmptyURL is the only error Analyze returns for a reachable context.
var ErrEmptyURL = errors.New("url is required")

const fallbackDescription = "Business profile could not be fully extracted"

// Analyzer fetches a site, extracts its details and classifies it.
type Analyzer struct {
	fetcher    Fetcher
	classifier *classifier.Classifier
	log        logger.Logger
	telemetry  *telemetry.Provider
	now        func() time.Time
}

// New creates an Analyzer. log and tp may be nil.
func New(fetcher Fetcher, c *classifier.Classifier, log logger.Logger, tp *telemetry.Provider) *Analyzer {
	if log == nil {
		log = logger.NewNop()
	}
	if c == nil {
		c = classifier.New(log)
	}
	return &Analyzer{fetcher: fetcher, classifier: c, log: log, telemetry: tp, now: time.Now}
}

// NormalizeURL trims rawURL and prefixes https:// when no scheme is given.
func NormalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" || strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://") {
		return rawURL
	}
	return "https://" + rawURL
}

// Analyze returns the profile for rawURL. When the site cannot be fetched or
// parsed the result is a fallback profile with ExtractionError set, not an error.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (*domain.BusinessProfile, error) {
	pageURL := NormalizeURL(rawURL)
	if pageURL == "" {
		return nil, ErrEmptyURL
	}

	ctx, span := a.telemetry.StartSpan(ctx, "analyzer.Analyze", attribute.String("url", pageURL))

	profile, err := a.analyze(ctx, pageURL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			telemetry.EndSpan(span, ctxErr)
			return nil, fmt.Errorf("analyze %s: %w", pageURL, ctxErr)
		}
		a.log.Warn("Website analysis fell back to defaults",
			logger.String("url", pageURL),
			logger.Error(err),
		)
		profile = a.fallback(pageURL, err)
	}

	a.telemetry.MetricsOrNil().Classified(string(profile.Industry), string(profile.ToneOfVoice))
	span.SetAttributes(
		attribute.String("industry", string(profile.Industry)),
		attribute.String("tone", string(profile.ToneOfVoice)),
	)
	telemetry.EndSpan(span, nil)
	return profile, nil
}

func (a *Analyzer) analyze(ctx context.Context, pageURL string) (*domain.BusinessProfile, error) {
	page, err := a.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}

	ex := Extract(doc, pageURL)
	res := a.classifier.Classify(ex.Text, ex.Services)

	a.log.Debug("Website analyzed",
		logger.String("url", pageURL),
		logger.String("industry", string(res.Industry)),
		logger.String("tone", string(res.Tone)),
		logger.Int("services", len(ex.Services)),
	)

	return &domain.BusinessProfile{
		Name:        ex.Name,
		WebsiteURL:  pageURL,
		Industry:    res.Industry,
		Description: ex.Description,
		Services:    ex.Services,
		ToneOfVoice: res.Tone,
		ContactInfo: ex.Contact,
		SocialProof: ex.SocialProof,
		ExtractedAt: a.now(),
	}, nil
}

func (a *Analyzer) fallback(pageURL string, cause error) *domain.BusinessProfile {
	return &domain.BusinessProfile{
		Name:            DomainName(pageURL),
		WebsiteURL:      pageURL,
		Industry:        domain.IndustryGeneral,
		Description:     fallbackDescription,
		Services:        []string{},
		ToneOfVoice:     domain.ToneProfessional,
		ExtractionError: cause.Error(),
		ExtractedAt:     a.now(),
	}
}
