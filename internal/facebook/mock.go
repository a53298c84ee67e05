package facebook

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/jonesrussell/north-cloud/social-planner/internal/config"
	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
)

// MockPages are the pages every token can manage in mock mode.
var MockPages = []domain.Page{
	{ID: "123456789", Name: "Test Business Page", AccessToken: "mock_page_token_123", Category: "Local Business"},
	{ID: "987654321", Name: "Demo Restaurant", AccessToken: "mock_page_token_456", Category: "Restaurant"},
}

// insight value ranges per metric, inclusive.
var pageMetricRanges = map[string][2]int64{
	"page_impressions":   {1000, 5000},
	"page_reach":         {500, 2000},
	"page_engaged_users": {50, 500},
}

var defaultMetricRange = [2]int64{10, 1000}

var postMetricRanges = []struct {
	name string
	r    [2]int64
}{
	{"post_impressions", [2]int64{100, 1000}},
	{"post_reach", [2]int64{50, 500}},
	{"post_engaged_users", [2]int64{10, 100}},
}

type mockPost struct {
	id        string
	pageID    string
	content   string
	published time.Time
	scheduled *time.Time
}

// MockClient keeps published posts in memory. Safe for concurrent use.
type MockClient struct {
	mu    sync.Mutex
	rng   *rand.Rand
	posts map[string]*mockPost
	order []string
	now   func() time.Time
}

// NewMockClient creates a mock client drawing post ids and insight values from rng.
func NewMockClient(rng *rand.Rand) *MockClient {
	return &MockClient{rng: rng, posts: make(map[string]*mockPost), now: time.Now}
}

func (m *MockClient) Mode() string { return config.FacebookModeMock }

func (m *MockClient) ConnectPage(_ context.Context, _, pageID string) (*Connection, error) {
	page, err := selectPage(MockPages, pageID)
	if err != nil {
		return nil, err
	}
	return &Connection{
		Page:        page,
		Permissions: slices.Clone(defaultPermissions),
		ConnectedAt: m.now(),
		Mock:        true,
	}, nil
}

func (m *MockClient) ListPages(context.Context, string) ([]domain.Page, error) {
	return slices.Clone(MockPages), nil
}

func (m *MockClient) Publish(_ context.Context, req PublishRequest) (*PublishResult, error) {
	if req.PageID == "" {
		return nil, ErrMissingPage
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := fmt.Sprintf("%s_%010x", req.PageID, m.rng.Uint64()&0xffffffffff)
	now := m.now()
	m.posts[id] = &mockPost{
		id:        id,
		pageID:    req.PageID,
		content:   req.Content,
		published: now,
		scheduled: req.ScheduledTime,
	}
	m.order = append(m.order, id)

	return &PublishResult{
		PostID:      id,
		PostURL:     "https://facebook.com/mock-page/" + id,
		PublishedAt: now,
		Scheduled:   req.ScheduledTime != nil,
		Mock:        true,
	}, nil
}

func (m *MockClient) PageInsights(_ context.Context, _, _, metric, period string) ([]Insight, error) {
	r, ok := pageMetricRanges[metric]
	if !ok {
		r = defaultMetricRange
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return []Insight{{
		Name:   metric,
		Period: period,
		Values: []InsightValue{{Value: m.between(r), EndTime: m.now().Format(time.RFC3339)}},
	}}, nil
}

func (m *MockClient) PostInsights(context.Context, string, string) ([]Insight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Insight, 0, len(postMetricRanges))
	for _, pm := range postMetricRanges {
		out = append(out, Insight{Name: pm.name, Values: []InsightValue{{Value: m.between(pm.r)}}})
	}
	return out, nil
}

func (m *MockClient) DeletePost(_ context.Context, _, postID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[postID]; !ok {
		return fmt.Errorf("post %s: %w", postID, ErrPostNotFound)
	}
	delete(m.posts, postID)
	m.order = slices.DeleteFunc(m.order, func(id string) bool { return id == postID })
	return nil
}

func (m *MockClient) ScheduledPosts(_ context.Context, _, pageID string) ([]ScheduledPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []ScheduledPost
	for _, id := range m.order {
		p := m.posts[id]
		if p.pageID != pageID || p.scheduled == nil {
			continue
		}
		out = append(out, ScheduledPost{
			ID:                   p.id,
			Message:              p.content,
			ScheduledPublishTime: p.scheduled.Unix(),
			CreatedTime:          p.published.Format(time.RFC3339),
		})
	}
	return out, nil
}

// between must be called with m.mu held.
func (m *MockClient) between(r [2]int64) int64 {
	return r[0] + m.rng.Int64N(r[1]-r[0]+1)
}
