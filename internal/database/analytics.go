package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
)

// AnalyticsRepository computes content statistics.
type AnalyticsRepository struct {
	db *sqlx.DB
}

// NewAnalyticsRepository creates an analytics repository.
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

type postCount struct {
	Status   string `db:"status"`
	PostType string `db:"post_type"`
	Count    int    `db:"n"`
}

// Stats counts posts, profiles and schedules. An empty businessID covers
// every business.
func (r *AnalyticsRepository) Stats(ctx context.Context, businessID string) (*domain.Stats, error) {
	postsWhere, profilesWhere, args := "", "", []any{}
	if businessID != "" {
		postsWhere, profilesWhere = " WHERE business_id = ?", " WHERE id = ?"
		args = append(args, businessID)
	}

	var counts []postCount
	query := r.db.Rebind(`SELECT status, post_type, COUNT(*) AS n FROM posts` + postsWhere + ` GROUP BY status, post_type`)
	if err := r.db.SelectContext(ctx, &counts, query, args...); err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	stats := &domain.Stats{PostTypes: map[string]int{}, GeneratedAt: time.Now().UTC()}
	for _, c := range counts {
		stats.TotalPosts += c.Count
		stats.PostTypes[c.PostType] += c.Count
		switch domain.PostStatus(c.Status) {
		case domain.StatusPublished:
			stats.PublishedPosts += c.Count
		case domain.StatusScheduled:
			stats.ScheduledPosts += c.Count
		case domain.StatusDraft:
			stats.DraftPosts += c.Count
		}
	}

	if err := r.db.GetContext(ctx, &stats.TotalBusinesses,
		r.db.Rebind(`SELECT COUNT(*) FROM business_profiles`+profilesWhere), args...); err != nil {
		return nil, fmt.Errorf("count profiles: %w", err)
	}
	if err := r.db.GetContext(ctx, &stats.TotalSchedules,
		r.db.Rebind(`SELECT COUNT(*) FROM schedules`+postsWhere), args...); err != nil {
		return nil, fmt.Errorf("count schedules: %w", err)
	}
	return stats, nil
}
