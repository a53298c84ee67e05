// Package archive keeps published posts searchable in Elasticsearch.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
)

const (
	defaultSize = 10
	maxSize     = 100
)

// Hit is one search result.
type Hit struct {
	Post  domain.Post `json:"post"`
	Score float64     `json:"score"`
}

// Archive stores published posts and searches them.
type Archive interface {
	Index(ctx context.Context, post *domain.Post) error
	Search(ctx context.Context, query, businessID string, size int) ([]Hit, error)
}

// NopArchive is used when Elasticsearch is not configured.
type NopArchive struct{}

func (NopArchive) Index(context.Context, *domain.Post) error { return nil }

func (NopArchive) Search(context.Context, string, string, int) ([]Hit, error) { return []Hit{}, nil }

// ESArchive stores posts in one Elasticsearch index, keyed by post id.
type ESArchive struct {
	client *es.Client
	index  string
	log    logger.Logger
}

// NewESArchive creates an archive writing to index.
func NewESArchive(client *es.Client, index string, log logger.Logger) *ESArchive {
	if log == nil {
		log = logger.NewNop()
	}
	return &ESArchive{client: client, index: index, log: log}
}

var indexMapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"id":               map[string]any{"type": "keyword"},
			"business_id":      map[string]any{"type": "keyword"},
			"content":          map[string]any{"type": "text"},
			"hashtags":         map[string]any{"type": "text", "fields": map[string]any{"raw": map[string]any{"type": "keyword"}}},
			"post_type":        map[string]any{"type": "keyword"},
			"tone":             map[string]any{"type": "keyword"},
			"industry":         map[string]any{"type": "keyword"},
			"status":           map[string]any{"type": "keyword"},
			"facebook_post_id": map[string]any{"type": "keyword"},
			"published_at":     map[string]any{"type": "date"},
		},
	},
}

// EnsureIndex creates the index with its mapping unless it already exists.
func (a *ESArchive) EnsureIndex(ctx context.Context) error {
	res, err := a.client.Indices.Exists([]string{a.index}, a.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s: %w", a.index, err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, err := json.Marshal(indexMapping)
	if err != nil {
		return fmt.Errorf("encode mapping: %w", err)
	}
	res, err = a.client.Indices.Create(a.index,
		a.client.Indices.Create.WithContext(ctx),
		a.client.Indices.Create.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", a.index, err)
	}
	defer res.Body.Close()
	if res.IsError() && !strings.Contains(res.String(), "resource_already_exists_exception") {
		return fmt.Errorf("create index %s: %s", a.index, res.String())
	}

	a.log.Info("Archive index created", logger.String("index", a.index))
	return nil
}

// Index stores post under its id, replacing an earlier version.
func (a *ESArchive) Index(ctx context.Context, post *domain.Post) error {
	body, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("encode post %s: %w", post.ID, err)
	}

	res, err := a.client.Index(a.index, bytes.NewReader(body),
		a.client.Index.WithContext(ctx),
		a.client.Index.WithDocumentID(post.ID),
	)
	if err != nil {
		return fmt.Errorf("index post %s: %w", post.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index post %s: %s", post.ID, res.String())
	}
	return nil
}

// Search matches query against content and hashtags, optionally within one business.
func (a *ESArchive) Search(ctx context.Context, query, businessID string, size int) ([]Hit, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(searchQuery(query, businessID, size)); err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	res, err := a.client.Search(
		a.client.Search.WithContext(ctx),
		a.client.Search.WithIndex(a.index),
		a.client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search archive: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search archive: [%d] %s", res.StatusCode, res.String())
	}

	var resp struct {
		Hits struct {
			Hits []struct {
				Score  float64     `json:"_score"`
				Source domain.Post `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err = json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	hits := make([]Hit, 0, len(resp.Hits.Hits))
	for _, h := range resp.Hits.Hits {
		hits = append(hits, Hit{Post: h.Source, Score: h.Score})
	}
	return hits, nil
}

func searchQuery(query, businessID string, size int) map[string]any {
	if size <= 0 {
		size = defaultSize
	}
	size = min(size, maxSize)

	boolQuery := map[string]any{}
	if q := strings.TrimSpace(query); q != "" {
		boolQuery["must"] = []any{map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"content^2", "hashtags"},
			},
		}}
	} else {
		boolQuery["must"] = []any{map[string]any{"match_all": map[string]any{}}}
	}
	if businessID != "" {
		boolQuery["filter"] = []any{map[string]any{"term": map[string]any{"business_id": businessID}}}
	}

	return map[string]any{
		"size":  size,
		"query": map[string]any{"bool": boolQuery},
		"sort":  []any{"_score", map[string]any{"published_at": map[string]any{"order": "desc", "unmapped_type": "date"}}},
	}
}
