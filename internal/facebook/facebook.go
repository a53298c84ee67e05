// Package facebook publishes posts to Facebook pages, either through the
// Graph API or an in-memory stand-in.
package facebook

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/social-planner/internal/config"
	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
)

var (
	// ErrPageNotFound is returned when the requested page is not among the
	// pages the token can manage.
	ErrPageNotFound = errors.New("page not found")
	// ErrNoPages is returned when the token manages no pages at all.
	ErrNoPages = errors.New("no pages found for this account")
	// ErrPostNotFound is returned when deleting an unknown post.
	ErrPostNotFound = errors.New("post not found")
	// ErrMissingPage is returned by Publish without a page id.
	ErrMissingPage = errors.New("page id is required")
)

// Default permissions granted to a connected page.
var defaultPermissions = []string{"manage_pages", "publish_pages", "pages_show_list"}

// Connection is the result of connecting a page.
type Connection struct {
	Page        domain.Page `json:"page"`
	Permissions []string    `json:"permissions"`
	ConnectedAt time.Time   `json:"connected_at"`
	Mock        bool        `json:"mock_mode,omitempty"`
}

// PublishRequest is one post to send to a page.
type PublishRequest struct {
	PageToken string
	PageID    string
	Content   string
	Hashtags  []string
	Link      string
	// ScheduledTime, when set, asks Facebook to hold the post until then.
	ScheduledTime *time.Time
}

// PublishResult describes a published or scheduled post.
type PublishResult struct {
	PostID      string    `json:"post_id"`
	PostURL     string    `json:"post_url"`
	PublishedAt time.Time `json:"published_at"`
	Scheduled   bool      `json:"scheduled"`
	Mock        bool      `json:"mock_mode,omitempty"`
}

// Insight is one metric series.
type Insight struct {
	Name   string         `json:"name"`
	Period string         `json:"period,omitempty"`
	Values []InsightValue `json:"values"`
}

// InsightValue is one data point of an Insight.
type InsightValue struct {
	Value   int64  `json:"value"`
	EndTime string `json:"end_time,omitempty"`
}

// ScheduledPost is a post waiting to be published by Facebook.
type ScheduledPost struct {
	ID                   string `json:"id"`
	Message              string `json:"message"`
	ScheduledPublishTime int64  `json:"scheduled_publish_time"`
	CreatedTime          string `json:"created_time"`
}

// Client is the publishing surface used by the planner.
type Client interface {
	// Mode reports config.FacebookModeMock or config.FacebookModeLive.
	Mode() string
	// ConnectPage picks pageID, or the first page when pageID is empty.
	ConnectPage(ctx context.Context, userToken, pageID string) (*Connection, error)
	ListPages(ctx context.Context, userToken string) ([]domain.Page, error)
	Publish(ctx context.Context, req PublishRequest) (*PublishResult, error)
	PageInsights(ctx context.Context, pageToken, pageID, metric, period string) ([]Insight, error)
	PostInsights(ctx context.Context, pageToken, postID string) ([]Insight, error)
	DeletePost(ctx context.Context, pageToken, postID string) error
	ScheduledPosts(ctx context.Context, pageToken, pageID string) ([]ScheduledPost, error)
}

// New returns the client for cfg.Mode. The mode cannot change afterwards.
func New(cfg config.FacebookConfig, log logger.Logger) (Client, error) {
	switch cfg.Mode {
	case config.FacebookModeMock, "":
		return NewMockClient(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))), nil
	case config.FacebookModeLive:
		return NewGraphClient(cfg, nil, log), nil
	default:
		return nil, fmt.Errorf("unknown facebook mode %q", cfg.Mode)
	}
}

func selectPage(pages []domain.Page, pageID string) (domain.Page, error) {
	if len(pages) == 0 {
		return domain.Page{}, ErrNoPages
	}
	if pageID == "" {
		return pages[0], nil
	}
	for _, p := range pages {
		if p.ID == pageID {
			return p, nil
		}
	}
	return domain.Page{}, fmt.Errorf("page %s: %w", pageID, ErrPageNotFound)
}
