package domain

import (
	"strings"
	"time"
)

// Engagement is a projected reaction count for a post.
type Engagement struct {
	Likes    int             `json:"estimated_likes"`
	Comments int             `json:"estimated_comments"`
	Shares   int             `json:"estimated_shares"`
	Score    EngagementScore `json:"engagement_score"`
}

// Post is a generated social post plus its publishing lifecycle.
type Post struct {
	ID                  string     `json:"id,omitempty"`
	BusinessID          string     `json:"business_id,omitempty"`
	Content             string     `json:"content"`
	Hashtags            []string   `json:"hashtags"`
	PostType            PostType   `json:"post_type"`
	Tone                Tone       `json:"tone"`
	Industry            Industry   `json:"industry"`
	CallToAction        string     `json:"call_to_action"`
	NewsSource          string     `json:"news_source,omitempty"`
	EstimatedEngagement Engagement `json:"estimated_engagement"`
	BestTimeToPost      string     `json:"best_time_to_post"`

	Status         PostStatus `json:"status"`
	ScheduledDate  string     `json:"scheduled_date,omitempty"`
	ExternalPostID string     `json:"facebook_post_id,omitempty"`
	ExternalURL    string     `json:"facebook_url,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
}

// Clone returns a deep copy.
func (p *Post) Clone() *Post {
	c := *p
	c.Hashtags = append([]string(nil), p.Hashtags...)
	if p.PublishedAt != nil {
		t := *p.PublishedAt
		c.PublishedAt = &t
	}
	return &c
}

// FullMessage is the content followed by a blank line and the hashtags.
func (p *Post) FullMessage() string {
	if len(p.Hashtags) == 0 {
		return p.Content
	}
	return p.Content + "\n\n" + strings.Join(p.Hashtags, " ")
}
