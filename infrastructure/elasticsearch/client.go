// Package elasticsearch opens go-elasticsearch clients with a verified connection.
package elasticsearch

import (
	"context"
	"fmt"
	"strings"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/retry"
)

// NewClient builds a client and pings it with retries.
func NewClient(ctx context.Context, cfg Config, log logger.Logger) (*es.Client, error) {
	cfg.SetDefaults()
	url := normalizeURL(cfg.URL)

	clientCfg := es.Config{
		Addresses:  []string{url},
		MaxRetries: cfg.MaxRetries,
	}
	switch {
	case cfg.APIKey != "":
		clientCfg.APIKey = cfg.APIKey
	case cfg.Username != "":
		clientCfg.Username = cfg.Username
		clientCfg.Password = cfg.Password
	}

	client, err := es.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	err = retry.Retry(ctx, cfg.Retry, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
		defer cancel()

		res, pingErr := client.Ping(client.Ping.WithContext(pingCtx))
		if pingErr != nil {
			log.Debug("Elasticsearch ping failed", logger.Error(pingErr))
			return pingErr
		}
		defer res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("ping returned %s", res.Status())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect to elasticsearch at %s: %w", url, err)
	}

	log.Info("Elasticsearch connection established", logger.String("url", url))
	return client, nil
}

func normalizeURL(url string) string {
	if url == "" {
		return "http://localhost:9200"
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "http://" + url
	}
	return url
}
