package archive

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
)

func newTestArchive(t *testing.T, handler http.HandlerFunc) *ESArchive {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := es.NewClient(es.Config{Addresses: []string{srv.URL}, MaxRetries: 0})
	require.NoError(t, err)
	return NewESArchive(client, "social_posts", nil)
}

func TestESArchive_Index(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotDoc domain.Post
	a := newTestArchive(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotDoc)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	err := a.Index(context.Background(), &domain.Post{ID: "p1", BusinessID: "b1", Content: "Fresh bagels", Hashtags: []string{"#bagels"}})
	require.NoError(t, err)
	assert.Equal(t, "PUT /social_posts/_doc/p1", gotPath)
	assert.Equal(t, "Fresh bagels", gotDoc.Content)
	assert.Equal(t, []string{"#bagels"}, gotDoc.Hashtags)
}

func TestESArchive_IndexError(t *testing.T) {
	t.Parallel()

	a := newTestArchive(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"mapper_parsing_exception"}}`))
	})

	err := a.Index(context.Background(), &domain.Post{ID: "p1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mapper_parsing_exception")
}

func TestESArchive_Search(t *testing.T) {
	t.Parallel()

	var query map[string]any
	a := newTestArchive(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/social_posts/_search", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&query))
		_, _ = w.Write([]byte(`{"hits":{"hits":[
			{"_score":2.5,"_source":{"id":"p1","content":"Bagel Tuesday","hashtags":["#bagels"],"post_type":"promo"}},
			{"_score":1.0,"_source":{"id":"p2","content":"Bagel tips","post_type":"tip"}}
		]}}`))
	})

	hits, err := a.Search(context.Background(), "bagel", "b1", 5)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "p1", hits[0].Post.ID)
	assert.InDelta(t, 2.5, hits[0].Score, 0.001)
	assert.Equal(t, domain.PostTypeTip, hits[1].Post.PostType)

	assert.InDelta(t, 5, query["size"], 0)
	boolQuery := query["query"].(map[string]any)["bool"].(map[string]any)
	must := boolQuery["must"].([]any)[0].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "bagel", must["query"])
	filter := boolQuery["filter"].([]any)[0].(map[string]any)["term"].(map[string]any)
	assert.Equal(t, "b1", filter["business_id"])
}

func TestSearchQuery_Defaults(t *testing.T) {
	t.Parallel()

	q := searchQuery("  ", "", 0)
	assert.Equal(t, defaultSize, q["size"])
	boolQuery := q["query"].(map[string]any)["bool"].(map[string]any)
	assert.NotContains(t, boolQuery, "filter")
	assert.Contains(t, boolQuery["must"].([]any)[0], "match_all")

	assert.Equal(t, maxSize, searchQuery("x", "", 1000)["size"])
}

func TestESArchive_EnsureIndex(t *testing.T) {
	t.Parallel()

	var created bool
	a := newTestArchive(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			created = true
			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Contains(t, body, "mappings")
			_, _ = w.Write([]byte(`{"acknowledged":true}`))
		}
	})

	require.NoError(t, a.EnsureIndex(context.Background()))
	assert.True(t, created)
}

func TestNopArchive(t *testing.T) {
	t.Parallel()

	var a Archive = NopArchive{}
	require.NoError(t, a.Index(context.Background(), &domain.Post{ID: "x"}))
	hits, err := a.Search(context.Background(), "x", "", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
