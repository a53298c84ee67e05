package service_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/jonesrussell/north-cloud/social-planner/internal/archive"
	"github.com/jonesrussell/north-cloud/social-planner/internal/database"
	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
	"github.com/jonesrussell/north-cloud/social-planner/internal/facebook"
	"github.com/jonesrussell/north-cloud/social-planner/internal/generator"
	"github.com/jonesrussell/north-cloud/social-planner/internal/service"
)

// memStore implements every store port in memory.
type memStore struct {
	mu          sync.Mutex
	seq         int
	profiles    map[string]*domain.BusinessProfile
	posts       map[string]*domain.Post
	postOrder   []string
	schedules   map[string]*domain.WeeklySchedule
	connections map[string]*domain.PageConnection
	cutoff      time.Time
}

func newMemStore() *memStore {
	return &memStore{
		profiles:    map[string]*domain.BusinessProfile{},
		posts:       map[string]*domain.Post{},
		schedules:   map[string]*domain.WeeklySchedule{},
		connections: map[string]*domain.PageConnection{},
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) Create(_ context.Context, p *domain.BusinessProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = m.nextID("biz")
	}
	c := *p
	m.profiles[p.ID] = &c
	return nil
}

func (m *memStore) GetByID(_ context.Context, id string) (*domain.BusinessProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (m *memStore) List(_ context.Context) ([]*domain.BusinessProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.BusinessProfile, 0, len(m.profiles))
	for _, p := range m.profiles {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

// postStore adapts memStore to the post port, whose method names collide
// with the profile port.
type postStore struct{ m *memStore }

func (s postStore) CreateMany(_ context.Context, posts []*domain.Post) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, p := range posts {
		if p.ID == "" {
			p.ID = s.m.nextID("post")
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now().UTC()
		}
		s.m.posts[p.ID] = p.Clone()
		s.m.postOrder = append(s.m.postOrder, p.ID)
	}
	return nil
}

func (s postStore) GetByID(_ context.Context, id string) (*domain.Post, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.posts[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return p.Clone(), nil
}

func (s postStore) Update(_ context.Context, p *domain.Post) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.posts[p.ID]; !ok {
		return database.ErrNotFound
	}
	s.m.posts[p.ID] = p.Clone()
	return nil
}

func (s postStore) Delete(_ context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.posts[id]; !ok {
		return database.ErrNotFound
	}
	delete(s.m.posts, id)
	return nil
}

func (s postStore) ListByBusiness(_ context.Context, businessID string) ([]*domain.Post, error) {
	return s.filter(func(p *domain.Post) bool { return p.BusinessID == businessID }), nil
}

func (s postStore) ListByStatus(_ context.Context, status domain.PostStatus, businessID string) ([]*domain.Post, error) {
	return s.filter(func(p *domain.Post) bool {
		return p.Status == status && (businessID == "" || p.BusinessID == businessID)
	}), nil
}

func (s postStore) filter(keep func(*domain.Post) bool) []*domain.Post {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := []*domain.Post{}
	for _, id := range s.m.postOrder {
		if p, ok := s.m.posts[id]; ok && keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

type scheduleStore struct{ m *memStore }

func (s scheduleStore) Create(_ context.Context, ws *domain.WeeklySchedule) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if ws.ID == "" {
		ws.ID = s.m.nextID("sched")
	}
	for _, p := range ws.Posts() {
		if _, ok := s.m.posts[p.ID]; ok {
			s.m.posts[p.ID] = p.Clone()
		}
	}
	c := *ws
	s.m.schedules[ws.ID] = &c
	return nil
}

func (s scheduleStore) GetByID(_ context.Context, id string) (*domain.WeeklySchedule, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	ws, ok := s.m.schedules[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	c := *ws
	return &c, nil
}

func (m *memStore) Upsert(_ context.Context, c *domain.PageConnection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cc := *c
	m.connections[c.BusinessID] = &cc
	return nil
}

func (m *memStore) Get(_ context.Context, businessID string) (*domain.PageConnection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.connections[businessID]
	if !ok {
		return nil, database.ErrNotFound
	}
	cc := *c
	return &cc, nil
}

func (m *memStore) Stats(_ context.Context, businessID string) (*domain.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := &domain.Stats{PostTypes: map[string]int{}}
	st.TotalBusinesses = len(m.profiles)
	if businessID != "" {
		st.TotalBusinesses = 1
	}
	for _, p := range m.posts {
		if businessID != "" && p.BusinessID != businessID {
			continue
		}
		st.TotalPosts++
		st.PostTypes[string(p.PostType)]++
		switch p.Status {
		case domain.StatusDraft:
			st.DraftPosts++
		case domain.StatusScheduled:
			st.ScheduledPosts++
		case domain.StatusPublished:
			st.PublishedPosts++
		}
	}
	st.TotalSchedules = len(m.schedules)
	return st, nil
}

func (m *memStore) Cleanup(_ context.Context, cutoff time.Time) (*domain.CleanupResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cutoff = cutoff
	var n int64
	for id, p := range m.posts {
		if p.Status == domain.StatusDraft && p.CreatedAt.Before(cutoff) {
			delete(m.posts, id)
			n++
		}
	}
	return &domain.CleanupResult{DeletedPosts: n, CompletedAt: cutoff}, nil
}

type stubAnalyzer struct {
	profile *domain.BusinessProfile
	err     error
}

func (a stubAnalyzer) Analyze(_ context.Context, rawURL string) (*domain.BusinessProfile, error) {
	if a.err != nil {
		return nil, a.err
	}
	p := *a.profile
	p.WebsiteURL = rawURL
	return &p, nil
}

type stubNews struct {
	calls int
	items []domain.NewsItem
}

func (n *stubNews) IndustryNews(_ context.Context, _ domain.Industry, _ []string, limit int) ([]domain.NewsItem, error) {
	n.calls++
	if limit < len(n.items) {
		return n.items[:limit], nil
	}
	return n.items, nil
}

type recordingArchive struct {
	archive.NopArchive
	mu      sync.Mutex
	indexed []string
	err     error
}

func (a *recordingArchive) Index(_ context.Context, p *domain.Post) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.indexed = append(a.indexed, p.ID)
	return a.err
}

type fixture struct {
	store   *memStore
	news    *stubNews
	archive *recordingArchive
	fb      *facebook.MockClient
	planner *service.Planner
}

func gymProfile() *domain.BusinessProfile {
	return &domain.BusinessProfile{
		Name:        "Iron Temple Gym",
		Industry:    domain.IndustryFitness,
		ToneOfVoice: domain.ToneFriendly,
		Services:    []string{"Personal Training", "Group Classes"},
	}
}

func newFixture() *fixture {
	store := newMemStore()
	nw := &stubNews{items: []domain.NewsItem{
		{Headline: "Strength training is up", Source: "Gym Daily", Kind: domain.NewsKindRSS},
	}}
	arc := &recordingArchive{}
	fb := facebook.NewMockClient(rand.New(rand.NewPCG(1, 2)))
	p := service.New(service.Deps{
		Profiles:    store,
		Posts:       postStore{store},
		Schedules:   scheduleStore{store},
		Connections: store,
		Stats:       store,
		Cleaner:     store,
		Analyzer:    stubAnalyzer{profile: gymProfile()},
		News:        nw,
		Generator:   generator.NewSeeded(7, nil, nil),
		Facebook:    fb,
		Archive:     arc,
	})
	return &fixture{store: store, news: nw, archive: arc, fb: fb, planner: p}
}
