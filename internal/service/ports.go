package service

import (
	"context"
	"time"

	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
)

// The store interfaces are satisfied by the repositories in internal/database.

type ProfileStore interface {
	Create(ctx context.Context, p *domain.BusinessProfile) error
	GetByID(ctx context.Context, id string) (*domain.BusinessProfile, error)
	List(ctx context.Context) ([]*domain.BusinessProfile, error)
}

type PostStore interface {
	CreateMany(ctx context.Context, posts []*domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	Update(ctx context.Context, p *domain.Post) error
	Delete(ctx context.Context, id string) error
	ListByBusiness(ctx context.Context, businessID string) ([]*domain.Post, error)
	ListByStatus(ctx context.Context, status domain.PostStatus, businessID string) ([]*domain.Post, error)
}

type ScheduleStore interface {
	Create(ctx context.Context, s *domain.WeeklySchedule) error
	GetByID(ctx context.Context, id string) (*domain.WeeklySchedule, error)
}

type ConnectionStore interface {
	Upsert(ctx context.Context, c *domain.PageConnection) error
	Get(ctx context.Context, businessID string) (*domain.PageConnection, error)
}

type StatsStore interface {
	Stats(ctx context.Context, businessID string) (*domain.Stats, error)
}

// Cleaner deletes stale drafts and schedules; *database.Store implements it.
type Cleaner interface {
	Cleanup(ctx context.Context, cutoff time.Time) (*domain.CleanupResult, error)
}

// WebsiteAnalyzer builds a profile from a site; *analyzer.Analyzer implements it.
type WebsiteAnalyzer interface {
	Analyze(ctx context.Context, rawURL string) (*domain.BusinessProfile, error)
}

// NewsSource looks up industry news; *news.Service implements it.
type NewsSource interface {
	IndustryNews(ctx context.Context, industry domain.Industry, keywords []string, limit int) ([]domain.NewsItem, error)
}
