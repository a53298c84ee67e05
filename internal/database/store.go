package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
)

// Store groups the repositories over one connection.
type Store struct {
	DB          *sqlx.DB
	Profiles    *ProfileRepository
	Posts       *PostRepository
	Schedules   *ScheduleRepository
	Connections *ConnectionRepository
	Analytics   *AnalyticsRepository
}

// NewStore wires every repository to db.
func NewStore(db *sqlx.DB) *Store {
	return &Store{
		DB:          db,
		Profiles:    NewProfileRepository(db),
		Posts:       NewPostRepository(db),
		Schedules:   NewScheduleRepository(db),
		Connections: NewConnectionRepository(db),
		Analytics:   NewAnalyticsRepository(db),
	}
}

// Cleanup deletes drafts and schedules created before cutoff.
func (s *Store) Cleanup(ctx context.Context, cutoff time.Time) (*domain.CleanupResult, error) {
	posts, err := s.Posts.DeleteDraftsOlderThan(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("cleanup: %w", err)
	}
	schedules, err := s.Schedules.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("cleanup: %w", err)
	}
	return &domain.CleanupResult{
		DeletedPosts:     posts,
		DeletedSchedules: schedules,
		CompletedAt:      time.Now().UTC(),
	}, nil
}

// Ping checks the connection; used by the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}
