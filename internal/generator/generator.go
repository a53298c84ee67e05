// Package generator turns a business profile and posting preferences into
// ready-to-publish social posts.
package generator

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
	"github.com/jonesrussell/north-cloud/social-planner/internal/lexicon"
	"github.com/jonesrussell/north-cloud/social-planner/internal/telemetry"
)

const (
	defaultFrequency    = 3
	defaultBusinessName = "Our Business"
)

// Generator fills post templates. It is safe for concurrent use; the random
// source is guarded by a mutex.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand

	log       logger.Logger
	telemetry *telemetry.Provider
}

// New creates a Generator drawing from rng. A nil rng is seeded randomly;
// log and tp may be nil.
func New(rng *rand.Rand, log logger.Logger, tp *telemetry.Provider) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Generator{rng: rng, log: log, telemetry: tp}
}

// NewSeeded creates a Generator with a deterministic PCG source.
func NewSeeded(seed uint64, log logger.Logger, tp *telemetry.Provider) *Generator {
	return New(rand.New(rand.NewPCG(seed, seed)), log, tp)
}

// Generate produces prefs.Frequency posts for profile. Insight posts draw on
// news; without news they are generated as tips.
func (g *Generator) Generate(ctx context.Context, profile domain.BusinessProfile, prefs domain.PostPreferences, news []domain.NewsItem) []domain.Post {
	prefs = prefs.WithDefaults()
	profile.Industry = domain.ParseIndustry(string(profile.Industry))
	frequency := prefs.Frequency
	if frequency <= 0 {
		frequency = defaultFrequency
	}

	_, span := g.telemetry.StartSpan(ctx, "generator.Generate",
		attribute.String("industry", string(profile.Industry)),
		attribute.String("tone", string(prefs.Tone)),
		attribute.Int("frequency", frequency),
		attribute.Int("news_items", len(news)),
	)
	defer span.End()
	start := time.Now()

	g.mu.Lock()
	defer g.mu.Unlock()

	metrics := g.telemetry.MetricsOrNil()
	posts := make([]domain.Post, 0, frequency)
	for _, postType := range DistributeTypes(frequency, prefs.PostTypes) {
		if parsed, known := domain.ParsePostType(string(postType)); known {
			postType = parsed
		} else {
			g.log.Debug("Unknown post type, using promo", logger.String("post_type", string(postType)))
			postType = domain.PostTypePromo
		}

		var post domain.Post
		if postType == domain.PostTypeInsight && len(news) > 0 {
			post = g.insightPost(profile, prefs.Tone, news)
		} else {
			if postType == domain.PostTypeInsight {
				postType = domain.PostTypeTip
			}
			post = g.standardPost(profile, prefs.Tone, postType)
		}

		metrics.PostGenerated(string(post.PostType), string(post.Tone))
		posts = append(posts, post)
	}

	metrics.ObserveGeneration(time.Since(start))
	g.log.Debug("Generated posts",
		logger.String("business", profile.Name),
		logger.Int("count", len(posts)),
	)
	return posts
}

func (g *Generator) standardPost(profile domain.BusinessProfile, tone domain.Tone, postType domain.PostType) domain.Post {
	pool := lexicon.PoolFor(profile.Industry)
	vars := g.commonVars(profile, pool)

	switch postType {
	case domain.PostTypePromo:
		vars[lexicon.SlotOffer] = g.pick(pool.Offers)
	case domain.PostTypeTip:
		vars[lexicon.SlotTipContent] = g.pick(pool.Tips)
		vars[lexicon.SlotBenefit] = g.pick(lexicon.Benefits)
	case domain.PostTypeUpdate:
		vars[lexicon.SlotUpdateContent] = g.pick(lexicon.Updates)
	}

	return g.build(profile, tone, postType, vars)
}

func (g *Generator) insightPost(profile domain.BusinessProfile, tone domain.Tone, news []domain.NewsItem) domain.Post {
	pool := lexicon.PoolFor(profile.Industry)
	vars := g.commonVars(profile, pool)

	item := news[g.rng.IntN(len(news))]
	vars[lexicon.SlotInsightContent] = item.Headline

	post := g.build(profile, tone, domain.PostTypeInsight, vars)
	post.NewsSource = item.Source
	if post.NewsSource == "" {
		post.NewsSource = lexicon.DefaultNewsSource
	}
	return post
}

// commonVars draws the slots shared by every template.
func (g *Generator) commonVars(profile domain.BusinessProfile, pool lexicon.Pool) map[string]string {
	contact := ""
	if profile.ContactInfo.Phone != "" {
		contact = "📞 " + profile.ContactInfo.Phone
	}
	return map[string]string{
		lexicon.SlotBusinessName: businessName(profile),
		lexicon.SlotCallToAction: g.pick(lexicon.CallsToAction),
		lexicon.SlotValueProp:    g.pick(pool.ValueProps),
		lexicon.SlotContactInfo:  contact,
	}
}

func (g *Generator) build(profile domain.BusinessProfile, tone domain.Tone, postType domain.PostType, vars map[string]string) domain.Post {
	templates := lexicon.Templates(postType, tone)
	tmpl := templates[g.rng.IntN(len(templates))]
	cta := vars[lexicon.SlotCallToAction]

	content, err := fill(tmpl, vars)
	if err != nil {
		g.log.Debug("Template fill failed, using fallback", logger.Error(err))
		content = fallbackContent(vars, businessName(profile), cta)
	}

	return domain.Post{
		BusinessID:          profile.ID,
		Content:             content,
		Hashtags:            sampleHashtags(g.rng, hashtagCandidates(profile.Industry, postType)),
		PostType:            postType,
		Tone:                tone,
		Industry:            profile.Industry,
		CallToAction:        cta,
		EstimatedEngagement: EstimateEngagement(postType, tone),
		BestTimeToPost:      BestTime(profile.Industry, postType),
		Status:              domain.StatusDraft,
	}
}

func (g *Generator) pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[g.rng.IntN(len(options))]
}

func businessName(profile domain.BusinessProfile) string {
	if profile.Name == "" {
		return defaultBusinessName
	}
	return profile.Name
}
