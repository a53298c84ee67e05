package domain

import "time"

// Stats summarises stored content, optionally for one business.
type Stats struct {
	TotalBusinesses int            `json:"total_businesses"`
	TotalPosts      int            `json:"total_posts"`
	PublishedPosts  int            `json:"published_posts"`
	ScheduledPosts  int            `json:"scheduled_posts"`
	DraftPosts      int            `json:"draft_posts"`
	TotalSchedules  int            `json:"total_schedules"`
	PostTypes       map[string]int `json:"post_types_distribution"`
	GeneratedAt     time.Time      `json:"generated_at"`
}

// CleanupResult reports what a retention pass removed.
type CleanupResult struct {
	DeletedPosts     int64     `json:"deleted_posts"`
	DeletedSchedules int64     `json:"deleted_schedules"`
	CompletedAt      time.Time `json:"cleanup_completed_at"`
}
