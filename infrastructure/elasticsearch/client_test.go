package elasticsearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/retry"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"http://es:9200":  "http://es:9200",
		"https://es:9200": "https://es:9200",
		"es:9200":         "http://es:9200",
		"":                "http://localhost:9200",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeURL(in), in)
	}
}

func TestNewClient_PingsServer(t *testing.T) {
	t.Parallel()

	pings := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pings++
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if pings == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"version":{"number":"8.19.0"}}`))
	}))
	defer srv.Close()

	client, err := NewClient(context.Background(), Config{
		URL:        srv.URL,
		MaxRetries: 1,
		Retry: retry.Config{
			MaxAttempts:  3,
			InitialDelay: time.Millisecond,
			IsRetryable:  func(error) bool { return true },
		},
	}, logger.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.GreaterOrEqual(t, pings, 2)
}
