package facebook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/circuitbreaker"
	infraerrors "github.com/jonesrussell/north-cloud/social-planner/infrastructure/errors"
	infrahttp "github.com/jonesrussell/north-cloud/social-planner/infrastructure/http"
	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/retry"
	"github.com/jonesrussell/north-cloud/social-planner/internal/config"
	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
)

const (
	pageFields          = "id,name,access_token,category"
	scheduledPostFields = "id,message,scheduled_publish_time,created_time"
	postInsightMetrics  = "post_impressions,post_reach,post_engaged_users"
	userAgent           = "north-cloud-social-planner/1.0"
)

// GraphClient talks to the Facebook Graph API. Every call is retried on
// transient failures and guarded by a circuit breaker; 4xx answers other than
// 429 are returned as is and do not count against the breaker.
type GraphClient struct {
	http    *http.Client
	baseURL string
	retry   retry.Config
	breaker *circuitbreaker.Breaker
	log     logger.Logger
	now     func() time.Time
}

// NewGraphClient creates a Graph API client. httpClient may be nil.
func NewGraphClient(cfg config.FacebookConfig, httpClient *http.Client, log logger.Logger) *GraphClient {
	if log == nil {
		log = logger.NewNop()
	}
	if httpClient == nil {
		httpClient = infrahttp.NewClient(infrahttp.ClientConfig{Timeout: cfg.Timeout, UserAgent: userAgent})
	}

	rc := retry.DefaultConfig()
	rc.IsRetryable = isRetryable

	return &GraphClient{
		http:    httpClient,
		baseURL: strings.TrimRight(cfg.GraphURL, "/") + "/" + cfg.APIVersion,
		retry:   rc,
		breaker: circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: 5,
			Timeout:          time.Minute,
			OnStateChange: func(from, to circuitbreaker.State) {
				log.Warn("Graph API circuit breaker state changed",
					logger.String("from", from.String()),
					logger.String("to", to.String()),
				)
			},
		}),
		log: log,
		now: time.Now,
	}
}

func (g *GraphClient) Mode() string { return config.FacebookModeLive }

func (g *GraphClient) ConnectPage(ctx context.Context, userToken, pageID string) (*Connection, error) {
	pages, err := g.ListPages(ctx, userToken)
	if err != nil {
		return nil, err
	}
	page, err := selectPage(pages, pageID)
	if err != nil {
		return nil, err
	}

	var perms struct {
		Permissions []string `json:"permissions"`
	}
	params := url.Values{"access_token": {page.AccessToken}, "fields": {"permissions"}}
	if err = g.call(ctx, http.MethodGet, page.ID, params, &perms); err != nil {
		// Missing permission info does not block the connection.
		g.log.Warn("Page permission lookup failed", logger.String("page_id", page.ID), logger.Error(err))
	}

	return &Connection{Page: page, Permissions: perms.Permissions, ConnectedAt: g.now()}, nil
}

func (g *GraphClient) ListPages(ctx context.Context, userToken string) ([]domain.Page, error) {
	var resp struct {
		Data []domain.Page `json:"data"`
	}
	params := url.Values{"access_token": {userToken}, "fields": {pageFields}}
	if err := g.call(ctx, http.MethodGet, "me/accounts", params, &resp); err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return resp.Data, nil
}

func (g *GraphClient) Publish(ctx context.Context, req PublishRequest) (*PublishResult, error) {
	if req.PageID == "" {
		return nil, ErrMissingPage
	}

	params := url.Values{
		"access_token": {req.PageToken},
		"message":      {(&domain.Post{Content: req.Content, Hashtags: req.Hashtags}).FullMessage()},
	}
	if req.ScheduledTime != nil {
		params.Set("scheduled_publish_time", strconv.FormatInt(req.ScheduledTime.Unix(), 10))
		params.Set("published", "false")
	}
	if req.Link != "" {
		params.Set("link", req.Link)
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := g.call(ctx, http.MethodPost, req.PageID+"/feed", params, &resp); err != nil {
		return nil, fmt.Errorf("publish to page %s: %w", req.PageID, err)
	}

	return &PublishResult{
		PostID:      resp.ID,
		PostURL:     postURL(req.PageID, resp.ID),
		PublishedAt: g.now(),
		Scheduled:   req.ScheduledTime != nil,
	}, nil
}

func (g *GraphClient) PageInsights(ctx context.Context, pageToken, pageID, metric, period string) ([]Insight, error) {
	params := url.Values{"access_token": {pageToken}, "metric": {metric}, "period": {period}}
	return g.insights(ctx, pageID, params)
}

func (g *GraphClient) PostInsights(ctx context.Context, pageToken, postID string) ([]Insight, error) {
	params := url.Values{"access_token": {pageToken}, "metric": {postInsightMetrics}}
	return g.insights(ctx, postID, params)
}

func (g *GraphClient) DeletePost(ctx context.Context, pageToken, postID string) error {
	err := g.call(ctx, http.MethodDelete, postID, url.Values{"access_token": {pageToken}}, nil)
	if status, ok := infraerrors.StatusCode(err); ok && status == http.StatusNotFound {
		return fmt.Errorf("post %s: %w", postID, ErrPostNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete post %s: %w", postID, err)
	}
	return nil
}

func (g *GraphClient) ScheduledPosts(ctx context.Context, pageToken, pageID string) ([]ScheduledPost, error) {
	var resp struct {
		Data []ScheduledPost `json:"data"`
	}
	params := url.Values{"access_token": {pageToken}, "fields": {scheduledPostFields}}
	if err := g.call(ctx, http.MethodGet, pageID+"/scheduled_posts", params, &resp); err != nil {
		return nil, fmt.Errorf("scheduled posts for page %s: %w", pageID, err)
	}
	return resp.Data, nil
}

func (g *GraphClient) insights(ctx context.Context, objectID string, params url.Values) ([]Insight, error) {
	var resp struct {
		Data []Insight `json:"data"`
	}
	if err := g.call(ctx, http.MethodGet, objectID+"/insights", params, &resp); err != nil {
		return nil, fmt.Errorf("insights for %s: %w", objectID, err)
	}
	return resp.Data, nil
}

// call runs one Graph request through the breaker and retry loop and decodes
// the JSON answer into out when out is not nil.
func (g *GraphClient) call(ctx context.Context, method, path string, params url.Values, out any) error {
	var callErr error
	err := g.breaker.Execute(ctx, func() error {
		callErr = retry.Retry(ctx, g.retry, func() error {
			return g.do(ctx, method, path, params, out)
		})
		if isClientError(callErr) {
			return nil
		}
		return callErr
	})
	if err != nil {
		return err
	}
	return callErr
}

func (g *GraphClient) do(ctx context.Context, method, path string, params url.Values, out any) error {
	endpoint := g.baseURL + "/" + strings.TrimLeft(path, "/")

	var req *http.Request
	var err error
	if method == http.MethodPost {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(params.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, method, endpoint+"?"+params.Encode(), http.NoBody)
	}
	if err != nil {
		return retry.Permanent(fmt.Errorf("build request: %w", err))
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if herr := infraerrors.ParseHTTPError(resp); herr != nil {
		return herr
	}
	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return retry.Permanent(fmt.Errorf("decode %s response: %w", path, err))
	}
	return nil
}

func isRetryable(err error) bool {
	var herr *infraerrors.HTTPError
	if errors.As(err, &herr) {
		return herr.Temporary()
	}
	return retry.IsTransient(err)
}

func isClientError(err error) bool {
	var herr *infraerrors.HTTPError
	return errors.As(err, &herr) && !herr.Temporary()
}

// postURL builds the public link from a "<page>_<post>" id.
func postURL(pageID, postID string) string {
	if postID == "" {
		return ""
	}
	_, suffix, ok := strings.Cut(postID, "_")
	if !ok {
		suffix = postID
	}
	return fmt.Sprintf("https://facebook.com/%s/posts/%s", pageID, suffix)
}
