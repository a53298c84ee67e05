package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/social-planner/internal/database"
	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
	"github.com/jonesrussell/north-cloud/social-planner/internal/facebook"
	"github.com/jonesrussell/north-cloud/social-planner/internal/telemetry"
)

// ConnectPage connects a page with userToken. When businessID is set the
// page and its token are remembered for that business.
func (p *Planner) ConnectPage(ctx context.Context, businessID, userToken, pageID string) (*facebook.Connection, error) {
	if businessID != "" {
		if _, err := p.Profiles.GetByID(ctx, businessID); err != nil {
			return nil, err
		}
	}

	conn, err := p.Facebook.ConnectPage(ctx, userToken, pageID)
	if err != nil {
		return nil, err
	}

	if businessID != "" {
		now := p.now().UTC()
		err = p.Connections.Upsert(ctx, &domain.PageConnection{
			BusinessID:  businessID,
			PageID:      conn.Page.ID,
			PageName:    conn.Page.Name,
			AccessToken: conn.Page.AccessToken,
			Permissions: strings.Join(conn.Permissions, ","),
			ConnectedAt: conn.ConnectedAt.UTC(),
			UpdatedAt:   now,
		})
		if err != nil {
			return nil, fmt.Errorf("store page connection: %w", err)
		}
	}

	p.Log.Info("Facebook page connected",
		logger.String("business_id", businessID),
		logger.String("page_id", conn.Page.ID),
		logger.String("mode", p.Facebook.Mode()),
	)
	return conn, nil
}

// Pages lists the pages userToken can manage.
func (p *Planner) Pages(ctx context.Context, userToken string) ([]domain.Page, error) {
	return p.Facebook.ListPages(ctx, userToken)
}

// PublishPost publishes a stored post. Without pageID and token the page
// connected to the post's business is used.
func (p *Planner) PublishPost(ctx context.Context, id, pageID, token string) (post *domain.Post, err error) {
	ctx, span := p.Telemetry.StartSpan(ctx, "service.PublishPost", attribute.String("post_id", id))
	defer func() {
		p.Telemetry.MetricsOrNil().Published(p.Facebook.Mode(), err)
		telemetry.EndSpan(span, err)
	}()

	post, err = p.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.Status == domain.StatusPublished {
		return nil, fmt.Errorf("post %s: %w", id, ErrAlreadyPublished)
	}

	if pageID == "" || token == "" {
		pageID, token, err = p.storedCredentials(ctx, post.BusinessID, pageID, token)
		if err != nil {
			return nil, err
		}
	}

	req := facebook.PublishRequest{
		PageToken: token,
		PageID:    pageID,
		Content:   post.Content,
		Hashtags:  post.Hashtags,
	}
	res, err := p.Facebook.Publish(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("publish post %s: %w", id, err)
	}

	publishedAt := res.PublishedAt.UTC()
	if publishedAt.IsZero() {
		publishedAt = p.now().UTC()
	}
	post.Status = domain.StatusPublished
	post.PublishedAt = &publishedAt
	post.ExternalPostID = res.PostID
	post.ExternalURL = res.PostURL
	post.UpdatedAt = p.now().UTC()
	if err = p.Posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("record publication of %s: %w", id, err)
	}

	if archiveErr := p.Archive.Index(ctx, post); archiveErr != nil {
		p.Log.Warn("Archiving published post failed", logger.String("post_id", id), logger.Error(archiveErr))
	}

	p.Log.Info("Post published",
		logger.String("post_id", id),
		logger.String("facebook_post_id", res.PostID),
		logger.String("mode", p.Facebook.Mode()),
	)
	return post, nil
}

func (p *Planner) storedCredentials(ctx context.Context, businessID, pageID, token string) (string, string, error) {
	conn, err := p.Connections.Get(ctx, businessID)
	if errors.Is(err, database.ErrNotFound) {
		return "", "", ErrNoConnection
	}
	if err != nil {
		return "", "", err
	}
	if pageID != "" && pageID != conn.PageID {
		return "", "", ErrNoConnection
	}
	if token == "" {
		token = conn.AccessToken
	}
	return conn.PageID, token, nil
}

// PageInsights returns a metric for the page connected to businessID.
func (p *Planner) PageInsights(ctx context.Context, businessID, metric, period string) ([]facebook.Insight, error) {
	conn, err := p.Connections.Get(ctx, businessID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNoConnection
	}
	if err != nil {
		return nil, err
	}
	if metric == "" {
		metric = "page_impressions"
	}
	if period == "" {
		period = "day"
	}
	return p.Facebook.PageInsights(ctx, conn.AccessToken, conn.PageID, metric, period)
}
