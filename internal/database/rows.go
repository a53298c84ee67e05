package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
)

// JSON columns are plain TEXT so PostgreSQL and SQLite share one schema.

func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func fromJSON(s string, v any) error {
	if s == "" {
		return nil
	}
	return json.Unmarshal([]byte(s), v)
}

type profileRow struct {
	ID              string    `db:"id"`
	Name            string    `db:"business_name"`
	WebsiteURL      string    `db:"website_url"`
	Industry        string    `db:"industry"`
	Description     string    `db:"description"`
	Services        string    `db:"services"`
	ToneOfVoice     string    `db:"tone_of_voice"`
	ContactInfo     string    `db:"contact_info"`
	SocialProof     string    `db:"social_proof"`
	ExtractionError string    `db:"extraction_error"`
	ExtractedAt     time.Time `db:"extracted_at"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

const profileColumns = `id, business_name, website_url, industry, description, services, tone_of_voice,
	contact_info, social_proof, extraction_error, extracted_at, created_at, updated_at`

func newProfileRow(p *domain.BusinessProfile, updatedAt time.Time) (*profileRow, error) {
	services, err := toJSON(emptyIfNil(p.Services))
	if err != nil {
		return nil, fmt.Errorf("encode services: %w", err)
	}
	contact, err := toJSON(p.ContactInfo)
	if err != nil {
		return nil, fmt.Errorf("encode contact info: %w", err)
	}
	proof, err := toJSON(p.SocialProof)
	if err != nil {
		return nil, fmt.Errorf("encode social proof: %w", err)
	}
	return &profileRow{
		ID:              p.ID,
		Name:            p.Name,
		WebsiteURL:      p.WebsiteURL,
		Industry:        string(p.Industry),
		Description:     p.Description,
		Services:        services,
		ToneOfVoice:     string(p.ToneOfVoice),
		ContactInfo:     contact,
		SocialProof:     proof,
		ExtractionError: p.ExtractionError,
		ExtractedAt:     p.ExtractedAt.UTC(),
		CreatedAt:       p.CreatedAt.UTC(),
		UpdatedAt:       updatedAt.UTC(),
	}, nil
}

func (r *profileRow) toDomain() (*domain.BusinessProfile, error) {
	p := &domain.BusinessProfile{
		ID:              r.ID,
		Name:            r.Name,
		WebsiteURL:      r.WebsiteURL,
		Industry:        domain.ParseIndustry(r.Industry),
		Description:     r.Description,
		ToneOfVoice:     domain.ParseTone(r.ToneOfVoice),
		ExtractionError: r.ExtractionError,
		ExtractedAt:     r.ExtractedAt,
		CreatedAt:       r.CreatedAt,
	}
	if err := fromJSON(r.Services, &p.Services); err != nil {
		return nil, fmt.Errorf("decode services of %s: %w", r.ID, err)
	}
	if err := fromJSON(r.ContactInfo, &p.ContactInfo); err != nil {
		return nil, fmt.Errorf("decode contact info of %s: %w", r.ID, err)
	}
	if err := fromJSON(r.SocialProof, &p.SocialProof); err != nil {
		return nil, fmt.Errorf("decode social proof of %s: %w", r.ID, err)
	}
	return p, nil
}

type postRow struct {
	ID             string       `db:"id"`
	BusinessID     string       `db:"business_id"`
	Content        string       `db:"content"`
	Hashtags       string       `db:"hashtags"`
	PostType       string       `db:"post_type"`
	Tone           string       `db:"tone"`
	Industry       string       `db:"industry"`
	CallToAction   string       `db:"call_to_action"`
	NewsSource     string       `db:"news_source"`
	Engagement     string       `db:"engagement"`
	BestTimeToPost string       `db:"best_time_to_post"`
	Status         string       `db:"status"`
	ScheduledDate  string       `db:"scheduled_date"`
	ExternalPostID string       `db:"external_post_id"`
	ExternalURL    string       `db:"external_url"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
	PublishedAt    sql.NullTime `db:"published_at"`
}

const postColumns = `id, business_id, content, hashtags, post_type, tone, industry, call_to_action,
	news_source, engagement, best_time_to_post, status, scheduled_date, external_post_id,
	external_url, created_at, updated_at, published_at`

func newPostRow(p *domain.Post) (*postRow, error) {
	hashtags, err := toJSON(emptyIfNil(p.Hashtags))
	if err != nil {
		return nil, fmt.Errorf("encode hashtags: %w", err)
	}
	engagement, err := toJSON(p.EstimatedEngagement)
	if err != nil {
		return nil, fmt.Errorf("encode engagement: %w", err)
	}
	row := &postRow{
		ID:             p.ID,
		BusinessID:     p.BusinessID,
		Content:        p.Content,
		Hashtags:       hashtags,
		PostType:       string(p.PostType),
		Tone:           string(p.Tone),
		Industry:       string(p.Industry),
		CallToAction:   p.CallToAction,
		NewsSource:     p.NewsSource,
		Engagement:     engagement,
		BestTimeToPost: p.BestTimeToPost,
		Status:         string(p.Status),
		ScheduledDate:  p.ScheduledDate,
		ExternalPostID: p.ExternalPostID,
		ExternalURL:    p.ExternalURL,
		CreatedAt:      p.CreatedAt.UTC(),
		UpdatedAt:      p.UpdatedAt.UTC(),
	}
	if p.PublishedAt != nil {
		row.PublishedAt = sql.NullTime{Time: p.PublishedAt.UTC(), Valid: true}
	}
	return row, nil
}

func (r *postRow) toDomain() (*domain.Post, error) {
	p := &domain.Post{
		ID:             r.ID,
		BusinessID:     r.BusinessID,
		Content:        r.Content,
		PostType:       domain.PostType(r.PostType),
		Tone:           domain.Tone(r.Tone),
		Industry:       domain.Industry(r.Industry),
		CallToAction:   r.CallToAction,
		NewsSource:     r.NewsSource,
		BestTimeToPost: r.BestTimeToPost,
		Status:         domain.PostStatus(r.Status),
		ScheduledDate:  r.ScheduledDate,
		ExternalPostID: r.ExternalPostID,
		ExternalURL:    r.ExternalURL,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.PublishedAt.Valid {
		t := r.PublishedAt.Time
		p.PublishedAt = &t
	}
	if err := fromJSON(r.Hashtags, &p.Hashtags); err != nil {
		return nil, fmt.Errorf("decode hashtags of %s: %w", r.ID, err)
	}
	if err := fromJSON(r.Engagement, &p.EstimatedEngagement); err != nil {
		return nil, fmt.Errorf("decode engagement of %s: %w", r.ID, err)
	}
	return p, nil
}

func postsFromRows(rows []postRow) ([]*domain.Post, error) {
	posts := make([]*domain.Post, 0, len(rows))
	for i := range rows {
		p, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

type scheduleRow struct {
	ID         string    `db:"id"`
	BusinessID string    `db:"business_id"`
	StartDate  string    `db:"start_date"`
	Days       string    `db:"days"`
	CreatedAt  time.Time `db:"created_at"`
}

const scheduleColumns = `id, business_id, start_date, days, created_at`

func (r *scheduleRow) toDomain() (*domain.WeeklySchedule, error) {
	s := &domain.WeeklySchedule{
		ID:         r.ID,
		BusinessID: r.BusinessID,
		StartDate:  r.StartDate,
		CreatedAt:  r.CreatedAt,
	}
	if err := s.UnmarshalDays([]byte(r.Days)); err != nil {
		return nil, fmt.Errorf("schedule %s: %w", r.ID, err)
	}
	return s, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
