// Package service composes analysis, news, generation, scheduling,
// persistence and publishing into the planner's use cases.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/social-planner/internal/archive"
	"github.com/jonesrussell/north-cloud/social-planner/internal/config"
	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
	"github.com/jonesrussell/north-cloud/social-planner/internal/facebook"
	"github.com/jonesrussell/north-cloud/social-planner/internal/generator"
	"github.com/jonesrussell/north-cloud/social-planner/internal/news"
	"github.com/jonesrussell/north-cloud/social-planner/internal/planner"
	"github.com/jonesrussell/north-cloud/social-planner/internal/telemetry"
)

// Deps are the Planner's collaborators. Archive, Log and Telemetry are optional.
type Deps struct {
	Profiles    ProfileStore
	Posts       PostStore
	Schedules   ScheduleStore
	Connections ConnectionStore
	Stats       StatsStore
	Cleaner     Cleaner
	Analyzer    WebsiteAnalyzer
	News        NewsSource
	Generator   *generator.Generator
	Facebook    facebook.Client
	Archive     archive.Archive
	Content     config.ContentConfig
	Log         logger.Logger
	Telemetry   *telemetry.Provider
}

// Planner implements every planner operation. Safe for concurrent use.
type Planner struct {
	Deps
	now func() time.Time
}

// New creates a Planner.
func New(d Deps) *Planner {
	if d.Archive == nil {
		d.Archive = archive.NopArchive{}
	}
	if d.Log == nil {
		d.Log = logger.NewNop()
	}
	if d.Content.MaxFrequency == 0 {
		d.Content.MaxFrequency = planner.MaxFrequency
	}
	if d.Content.DefaultFrequency == 0 {
		d.Content.DefaultFrequency = 3
	}
	return &Planner{Deps: d, now: time.Now}
}

// AnalyzeBusiness analyzes rawURL and stores the profile under a new id.
func (p *Planner) AnalyzeBusiness(ctx context.Context, rawURL string) (*domain.BusinessProfile, error) {
	profile, err := p.Analyzer.Analyze(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("analyze business: %w", err)
	}
	if err = p.Profiles.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("store profile: %w", err)
	}

	p.Log.Info("Business analyzed",
		logger.String("business_id", profile.ID),
		logger.String("industry", string(profile.Industry)),
		logger.Bool("fallback", profile.ExtractionError != ""),
	)
	return profile, nil
}

// Profile returns a stored profile or database.ErrNotFound.
func (p *Planner) Profile(ctx context.Context, id string) (*domain.BusinessProfile, error) {
	return p.Profiles.GetByID(ctx, id)
}

// IndustryNews returns the default number of annotated headlines.
func (p *Planner) IndustryNews(ctx context.Context, industry domain.Industry, keywords []string) ([]domain.NewsItem, error) {
	return p.News.IndustryNews(ctx, industry, keywords, news.DefaultLimit)
}

// SeasonalTrends returns this month's themes for industry.
func (p *Planner) SeasonalTrends(industry domain.Industry) []news.SeasonalTrend {
	return news.SeasonalTrends(domain.ParseIndustry(string(industry)), p.now().Month())
}

// GenerateContent generates posts for a stored business and stores them as
// drafts. Insight posts use items when given; otherwise news is looked up
// when an insight is requested.
func (p *Planner) GenerateContent(ctx context.Context, businessID string, prefs domain.PostPreferences, items []domain.NewsItem) ([]domain.Post, error) {
	profile, err := p.Profiles.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if prefs.Frequency == 0 {
		prefs.Frequency = p.Content.DefaultFrequency
	}
	if err = p.checkFrequency(prefs.Frequency); err != nil {
		return nil, err
	}

	if len(items) == 0 && wantsInsight(prefs) && p.News != nil {
		items, err = p.News.IndustryNews(ctx, profile.Industry, nil, news.DefaultLimit)
		if err != nil {
			return nil, fmt.Errorf("news for insights: %w", err)
		}
	}

	posts := p.Generator.Generate(ctx, *profile, prefs, items)
	ptrs := make([]*domain.Post, len(posts))
	for i := range posts {
		posts[i].BusinessID = businessID
		posts[i].Status = domain.StatusDraft
		ptrs[i] = &posts[i]
	}
	if err = p.Posts.CreateMany(ctx, ptrs); err != nil {
		return nil, fmt.Errorf("store posts: %w", err)
	}

	p.Log.Info("Content generated", logger.String("business_id", businessID), logger.Int("posts", len(posts)))
	return posts, nil
}

func (p *Planner) checkFrequency(frequency int) error {
	if frequency < 1 || frequency > p.Content.MaxFrequency {
		return &planner.ValidationError{
			Field:   "frequency",
			Message: fmt.Sprintf("must be between 1 and %d, got %d", p.Content.MaxFrequency, frequency),
		}
	}
	return nil
}

func wantsInsight(prefs domain.PostPreferences) bool {
	for _, t := range prefs.WithDefaults().PostTypes {
		if t == domain.PostTypeInsight {
			return true
		}
	}
	return false
}

// CreateSchedule places the business's oldest drafts on a week starting at
// startDate (YYYY-MM-DD, empty for today) and stores the result.
func (p *Planner) CreateSchedule(ctx context.Context, businessID string, frequency int, preferredDays []string, startDate string) (*domain.WeeklySchedule, error) {
	if frequency == 0 {
		frequency = p.Content.DefaultFrequency
	}
	if err := p.checkFrequency(frequency); err != nil {
		return nil, err
	}

	var start time.Time
	if startDate != "" {
		var err error
		start, err = time.ParseInLocation(domain.DateLayout, startDate, time.Local)
		if err != nil {
			return nil, &planner.ValidationError{Field: "start_date", Message: "must be formatted YYYY-MM-DD"}
		}
	} else {
		start = p.now()
	}

	if _, err := p.Profiles.GetByID(ctx, businessID); err != nil {
		return nil, err
	}
	drafts, err := p.Posts.ListByStatus(ctx, domain.StatusDraft, businessID)
	if err != nil {
		return nil, err
	}
	if len(drafts) < frequency {
		return nil, &NotEnoughPostsError{Need: frequency, Have: len(drafts)}
	}

	candidates := make([]domain.Post, len(drafts))
	for i, d := range drafts {
		candidates[i] = *d
	}
	schedule, err := planner.Schedule(candidates, frequency, preferredDays, start)
	if err != nil {
		return nil, err
	}
	schedule.BusinessID = businessID

	if err = p.Schedules.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("store schedule: %w", err)
	}
	p.Telemetry.MetricsOrNil().ScheduleCreated()
	p.Log.Info("Schedule created",
		logger.String("business_id", businessID),
		logger.String("schedule_id", schedule.ID),
		logger.Int("posts", frequency),
	)
	return schedule, nil
}

// Schedule returns a stored schedule.
func (p *Planner) Schedule(ctx context.Context, id string) (*domain.WeeklySchedule, error) {
	return p.Schedules.GetByID(ctx, id)
}

// ScheduledPosts returns the business's scheduled posts.
func (p *Planner) ScheduledPosts(ctx context.Context, businessID string) ([]*domain.Post, error) {
	return p.Posts.ListByStatus(ctx, domain.StatusScheduled, businessID)
}

// BusinessPosts returns every post of a business.
func (p *Planner) BusinessPosts(ctx context.Context, businessID string) ([]*domain.Post, error) {
	return p.Posts.ListByBusiness(ctx, businessID)
}

// PostPatch lists the editable post fields; nil fields are left unchanged.
type PostPatch struct {
	Content       *string   `json:"content"`
	Hashtags      *[]string `json:"hashtags"`
	CallToAction  *string   `json:"call_to_action"`
	ScheduledDate *string   `json:"scheduled_date"`
}

// Empty reports whether the patch changes nothing.
func (pp PostPatch) Empty() bool {
	return pp.Content == nil && pp.Hashtags == nil && pp.CallToAction == nil && pp.ScheduledDate == nil
}

// UpdatePost applies patch to a stored post.
func (p *Planner) UpdatePost(ctx context.Context, id string, patch PostPatch) (*domain.Post, error) {
	if patch.ScheduledDate != nil && *patch.ScheduledDate != "" {
		if _, err := time.Parse(domain.DateLayout, *patch.ScheduledDate); err != nil {
			return nil, &planner.ValidationError{Field: "scheduled_date", Message: "must be formatted YYYY-MM-DD"}
		}
	}

	post, err := p.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Content != nil {
		post.Content = *patch.Content
	}
	if patch.Hashtags != nil {
		post.Hashtags = append([]string{}, (*patch.Hashtags)...)
	}
	if patch.CallToAction != nil {
		post.CallToAction = *patch.CallToAction
	}
	if patch.ScheduledDate != nil {
		post.ScheduledDate = *patch.ScheduledDate
	}
	post.UpdatedAt = p.now().UTC()

	if err = p.Posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post.
func (p *Planner) DeletePost(ctx context.Context, id string) error {
	return p.Posts.Delete(ctx, id)
}
