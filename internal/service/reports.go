package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/social-planner/internal/archive"
	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
	"github.com/jonesrussell/north-cloud/social-planner/internal/export"
	"github.com/jonesrussell/north-cloud/social-planner/internal/planner"
)

// DefaultRetentionDays is used when Cleanup is called with zero days.
const DefaultRetentionDays = 30

// Analytics returns counts for one business, or for all when businessID is empty.
func (p *Planner) Analytics(ctx context.Context, businessID string) (*domain.Stats, error) {
	if businessID != "" {
		if _, err := p.Profiles.GetByID(ctx, businessID); err != nil {
			return nil, err
		}
	}
	stats, err := p.Stats.Stats(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("analytics: %w", err)
	}
	if stats.GeneratedAt.IsZero() {
		stats.GeneratedAt = p.now().UTC()
	}
	return stats, nil
}

// Cleanup deletes drafts and schedules older than days.
func (p *Planner) Cleanup(ctx context.Context, days int) (*domain.CleanupResult, error) {
	if days == 0 {
		days = DefaultRetentionDays
	}
	if days < 0 {
		return nil, &planner.ValidationError{Field: "days", Message: "must be positive"}
	}

	cutoff := p.now().UTC().AddDate(0, 0, -days)
	res, err := p.Cleaner.Cleanup(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	p.Telemetry.MetricsOrNil().Purged(res.DeletedPosts)
	p.Log.Info("Old data cleaned up",
		logger.Int("days", days),
		logger.Int64("deleted_posts", res.DeletedPosts),
		logger.Int64("deleted_schedules", res.DeletedSchedules),
	)
	return res, nil
}

// Export writes profiles and posts as an xlsx workbook. An empty businessID
// exports everything.
func (p *Planner) Export(ctx context.Context, businessID string, w io.Writer) error {
	var profiles []domain.BusinessProfile
	var posts []*domain.Post

	if businessID != "" {
		profile, err := p.Profiles.GetByID(ctx, businessID)
		if err != nil {
			return err
		}
		profiles = append(profiles, *profile)
		if posts, err = p.Posts.ListByBusiness(ctx, businessID); err != nil {
			return fmt.Errorf("export posts: %w", err)
		}
	} else {
		all, err := p.Profiles.List(ctx)
		if err != nil {
			return fmt.Errorf("export profiles: %w", err)
		}
		for _, pr := range all {
			profiles = append(profiles, *pr)
		}
		for _, status := range []domain.PostStatus{domain.StatusDraft, domain.StatusScheduled, domain.StatusPublished} {
			batch, err := p.Posts.ListByStatus(ctx, status, "")
			if err != nil {
				return fmt.Errorf("export %s posts: %w", status, err)
			}
			posts = append(posts, batch...)
		}
	}

	rows := make([]domain.Post, len(posts))
	for i, post := range posts {
		rows[i] = *post
	}
	return export.WriteWorkbook(w, profiles, rows)
}

// SearchArchive searches published posts.
func (p *Planner) SearchArchive(ctx context.Context, query, businessID string, size int) ([]archive.Hit, error) {
	return p.Archive.Search(ctx, query, businessID, size)
}

// ExportFilename names an export download.
func ExportFilename(businessID string, now time.Time) string {
	if businessID == "" {
		businessID = "all"
	}
	return fmt.Sprintf("social-planner-%s-%s.xlsx", businessID, now.UTC().Format("20060102"))
}
