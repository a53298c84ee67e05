package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/circuitbreaker"
	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/jwt"
	"github.com/jonesrussell/north-cloud/social-planner/internal/archive"
	"github.com/jonesrussell/north-cloud/social-planner/internal/database"
	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
	"github.com/jonesrussell/north-cloud/social-planner/internal/export"
	"github.com/jonesrussell/north-cloud/social-planner/internal/facebook"
	"github.com/jonesrussell/north-cloud/social-planner/internal/news"
	"github.com/jonesrussell/north-cloud/social-planner/internal/planner"
	"github.com/jonesrussell/north-cloud/social-planner/internal/service"
)

// stubPlanner returns canned values and records the arguments it saw.
type stubPlanner struct {
	err error

	gotURL      string
	gotPrefs    domain.PostPreferences
	gotDays     []string
	gotFreq     int
	gotPageID   string
	gotToken    string
	gotPatch    service.PostPatch
	gotQuery    string
	gotSize     int
	gotBusiness string
}

func (s *stubPlanner) AnalyzeBusiness(_ context.Context, rawURL string) (*domain.BusinessProfile, error) {
	s.gotURL = rawURL
	if s.err != nil {
		return nil, s.err
	}
	return &domain.BusinessProfile{ID: "biz-1", Name: "Iron Temple Gym", Industry: domain.IndustryFitness}, nil
}

func (s *stubPlanner) Profile(_ context.Context, id string) (*domain.BusinessProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.BusinessProfile{ID: id, Name: "Iron Temple Gym"}, nil
}

func (s *stubPlanner) BusinessPosts(_ context.Context, businessID string) ([]*domain.Post, error) {
	s.gotBusiness = businessID
	return []*domain.Post{{ID: "p1", BusinessID: businessID}}, s.err
}

func (s *stubPlanner) IndustryNews(_ context.Context, industry domain.Industry, _ []string) ([]domain.NewsItem, error) {
	return []domain.NewsItem{{Headline: "Gyms are busy", Source: "Gym Daily"}}, s.err
}

func (s *stubPlanner) SeasonalTrends(domain.Industry) []news.SeasonalTrend {
	return []news.SeasonalTrend{{}}
}

func (s *stubPlanner) GenerateContent(_ context.Context, businessID string, prefs domain.PostPreferences, _ []domain.NewsItem) ([]domain.Post, error) {
	s.gotBusiness = businessID
	s.gotPrefs = prefs
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Post{{ID: "p1", BusinessID: businessID, Status: domain.StatusDraft}}, nil
}

func (s *stubPlanner) CreateSchedule(_ context.Context, businessID string, frequency int, days []string, _ string) (*domain.WeeklySchedule, error) {
	s.gotBusiness, s.gotFreq, s.gotDays = businessID, frequency, days
	if s.err != nil {
		return nil, s.err
	}
	return &domain.WeeklySchedule{ID: "sched-1", BusinessID: businessID, StartDate: "2025-08-04"}, nil
}

func (s *stubPlanner) Schedule(_ context.Context, id string) (*domain.WeeklySchedule, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.WeeklySchedule{ID: id}, nil
}

func (s *stubPlanner) ScheduledPosts(_ context.Context, businessID string) ([]*domain.Post, error) {
	s.gotBusiness = businessID
	return []*domain.Post{}, s.err
}

func (s *stubPlanner) UpdatePost(_ context.Context, id string, patch service.PostPatch) (*domain.Post, error) {
	s.gotPatch = patch
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Post{ID: id, Content: *patch.Content}, nil
}

func (s *stubPlanner) DeletePost(context.Context, string) error { return s.err }

func (s *stubPlanner) PublishPost(_ context.Context, id, pageID, token string) (*domain.Post, error) {
	s.gotPageID, s.gotToken = pageID, token
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Post{ID: id, Status: domain.StatusPublished, ExternalPostID: "123_abc", ExternalURL: "https://facebook.com/123/posts/abc"}, nil
}

func (s *stubPlanner) ConnectPage(_ context.Context, businessID, token, pageID string) (*facebook.Connection, error) {
	s.gotBusiness, s.gotToken, s.gotPageID = businessID, token, pageID
	if s.err != nil {
		return nil, s.err
	}
	return &facebook.Connection{
		Page:        domain.Page{ID: "123456789", Name: "Test Business Page"},
		Permissions: []string{"publish_pages"},
		ConnectedAt: time.Date(2025, 8, 4, 9, 0, 0, 0, time.UTC),
		Mock:        true,
	}, nil
}

func (s *stubPlanner) Pages(_ context.Context, token string) ([]domain.Page, error) {
	s.gotToken = token
	return facebook.MockPages, s.err
}

func (s *stubPlanner) Analytics(_ context.Context, businessID string) (*domain.Stats, error) {
	s.gotBusiness = businessID
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Stats{TotalPosts: 4}, nil
}

func (s *stubPlanner) Export(_ context.Context, businessID string, w io.Writer) error {
	s.gotBusiness = businessID
	if s.err != nil {
		return s.err
	}
	_, err := w.Write([]byte("PK-workbook"))
	return err
}

func (s *stubPlanner) SearchArchive(_ context.Context, query, businessID string, size int) ([]archive.Hit, error) {
	s.gotQuery, s.gotBusiness, s.gotSize = query, businessID, size
	return []archive.Hit{{Post: domain.Post{ID: "p1"}, Score: 1.5}}, s.err
}

func newTestRouter(p Planner, opts RouteOptions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, NewHandler(p, nil), opts)
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestAnalyzeBusiness(t *testing.T) {
	stub := &stubPlanner{}
	router := newTestRouter(stub, RouteOptions{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/business/analyze", map[string]string{"website_url": "irontemple.example"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "biz-1", body["business_id"])
	assert.Equal(t, "irontemple.example", stub.gotURL)

	w = doJSON(t, router, http.MethodPost, "/api/v1/business/analyze", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "website_url is required", decode(t, w)["error"])
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", database.ErrNotFound, http.StatusNotFound},
		{"validation", &planner.ValidationError{Field: "frequency", Message: "bad"}, http.StatusBadRequest},
		{"not enough posts", &service.NotEnoughPostsError{Need: 3, Have: 1}, http.StatusBadRequest},
		{"already published", service.ErrAlreadyPublished, http.StatusConflict},
		{"no connection", service.ErrNoConnection, http.StatusBadRequest},
		{"page not found", facebook.ErrPageNotFound, http.StatusNotFound},
		{"breaker open", circuitbreaker.ErrCircuitOpen, http.StatusServiceUnavailable},
		{"other", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubPlanner{err: tt.err}, RouteOptions{})
			w := doJSON(t, router, http.MethodPost, "/api/v1/posts/p1/publish", map[string]string{"page_id": "1", "access_token": "t"})
			assert.Equal(t, tt.code, w.Code)
			assert.NotEmpty(t, decode(t, w)["error"])
		})
	}
}

func TestGetBusiness_NotFoundMessage(t *testing.T) {
	router := newTestRouter(&stubPlanner{err: database.ErrNotFound}, RouteOptions{})
	w := doJSON(t, router, http.MethodGet, "/api/v1/business/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Business profile not found", decode(t, w)["error"])
}

func TestGenerateContent_Preferences(t *testing.T) {
	stub := &stubPlanner{}
	router := newTestRouter(stub, RouteOptions{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/content/generate", map[string]any{
		"business_id":      "biz-1",
		"post_preferences": map[string]any{"tone": "witty", "post_type": "tip", "frequency": 2},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "biz-1", stub.gotBusiness)
	assert.Equal(t, domain.Tone("witty"), stub.gotPrefs.Tone)
	assert.Equal(t, 2, stub.gotPrefs.Frequency)
	assert.Equal(t, []domain.PostType{domain.PostTypeTip}, stub.gotPrefs.PostTypes)

	w = doJSON(t, router, http.MethodPost, "/api/v1/content/generate", map[string]any{
		"business_id":      "biz-1",
		"post_preferences": map[string]any{"post_types": []string{"promo", "poll", "insight"}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []domain.PostType{domain.PostTypePromo, "poll", domain.PostTypeInsight}, stub.gotPrefs.PostTypes)

	w = doJSON(t, router, http.MethodPost, "/api/v1/content/generate", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSchedule(t *testing.T) {
	stub := &stubPlanner{}
	router := newTestRouter(stub, RouteOptions{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/planner/schedule", map[string]any{
		"business_id":    "biz-1",
		"frequency":      3,
		"preferred_days": []string{"monday", "wednesday", "friday"},
		"start_date":     "2025-08-04",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sched-1", decode(t, w)["schedule_id"])
	assert.Equal(t, 3, stub.gotFreq)
	assert.Equal(t, []string{"monday", "wednesday", "friday"}, stub.gotDays)
}

func TestUpdatePost_RequiresFields(t *testing.T) {
	stub := &stubPlanner{}
	router := newTestRouter(stub, RouteOptions{})

	w := doJSON(t, router, http.MethodPut, "/api/v1/posts/p1", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/v1/posts/p1", map[string]any{"content": "New words"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, stub.gotPatch.Content)
	assert.Equal(t, "New words", *stub.gotPatch.Content)
	assert.Nil(t, stub.gotPatch.Hashtags)
}

func TestDeletePost(t *testing.T) {
	router := newTestRouter(&stubPlanner{}, RouteOptions{})
	w := doJSON(t, router, http.MethodDelete, "/api/v1/posts/p1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Post deleted successfully", decode(t, w)["message"])
}

func TestPublishPost(t *testing.T) {
	stub := &stubPlanner{}
	router := newTestRouter(stub, RouteOptions{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/posts/p1/publish", map[string]string{"page_id": "123", "access_token": "tok"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "123", stub.gotPageID)
	assert.Equal(t, "tok", stub.gotToken)
	result, ok := decode(t, w)["facebook_result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "123_abc", result["post_id"])

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts/p1/publish", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, stub.gotPageID)
}

func TestFacebookRoutes(t *testing.T) {
	stub := &stubPlanner{}
	router := newTestRouter(stub, RouteOptions{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/facebook/connect", map[string]string{"access_token": "user-tok"})
	require.Equal(t, http.StatusOK, w.Code)
	conn, ok := decode(t, w)["connection"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "connected", conn["status"])
	assert.Equal(t, "123456789", conn["page_id"])
	assert.Equal(t, true, conn["mock_mode"])

	w = doJSON(t, router, http.MethodPost, "/api/v1/facebook/connect", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/facebook/pages", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/facebook/pages", nil, FacebookTokenHeader, "user-tok")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-tok", stub.gotToken)
	pages, ok := decode(t, w)["pages"].([]any)
	require.True(t, ok)
	assert.Len(t, pages, 2)
}

func TestExport(t *testing.T) {
	stub := &stubPlanner{}
	router := newTestRouter(stub, RouteOptions{})

	w := doJSON(t, router, http.MethodGet, "/api/v1/export?business_id=biz-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Disposition"), `attachment; filename="social-planner-biz-1-`))
	assert.Equal(t, "PK-workbook", w.Body.String())

	router = newTestRouter(&stubPlanner{err: database.ErrNotFound}, RouteOptions{})
	w = doJSON(t, router, http.MethodGet, "/api/v1/export?business_id=missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchArchive(t *testing.T) {
	stub := &stubPlanner{}
	router := newTestRouter(stub, RouteOptions{})

	w := doJSON(t, router, http.MethodGet, "/api/v1/archive/search?q=deadlift&business_id=biz-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "deadlift", stub.gotQuery)
	assert.Equal(t, defaultSearchSize, stub.gotSize)
	assert.InDelta(t, 1, decode(t, w)["total"], 0)

	w = doJSON(t, router, http.MethodGet, "/api/v1/archive/search?size=zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsAndNews(t *testing.T) {
	stub := &stubPlanner{}
	router := newTestRouter(stub, RouteOptions{})

	w := doJSON(t, router, http.MethodGet, "/api/v1/analytics?business_id=biz-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "biz-1", stub.gotBusiness)

	w = doJSON(t, router, http.MethodPost, "/api/v1/news/analyze", map[string]any{"industry": "fitness"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fitness", decode(t, w)["industry"])

	w = doJSON(t, router, http.MethodPost, "/api/v1/news/analyze", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/news/trends/fitness", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestJWTProtection(t *testing.T) {
	router := newTestRouter(&stubPlanner{}, RouteOptions{JWTSecret: "s3cret"})

	w := doJSON(t, router, http.MethodGet, "/api/v1/analytics", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := jwt.Issue("s3cret", "operator", time.Minute)
	require.NoError(t, err)
	w = doJSON(t, router, http.MethodGet, "/api/v1/analytics", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsRoute(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})
	router := newTestRouter(&stubPlanner{}, RouteOptions{JWTSecret: "s3cret", Metrics: metrics})

	w := doJSON(t, router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "# metrics", w.Body.String())
}
