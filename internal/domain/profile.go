package domain

import "time"

// ContactInfo is what could be found about reaching the business.
type ContactInfo struct {
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// SocialProof summarises reviews and endorsements found on the site.
type SocialProof struct {
	Rating            string `json:"rating,omitempty"`
	TestimonialsCount int    `json:"testimonials_count,omitempty"`
	HasClientLogos    bool   `json:"has_client_logos,omitempty"`
}

// BusinessProfile describes a business for content generation. Industry and
// ToneOfVoice are always members of their enums.
type BusinessProfile struct {
	ID              string      `json:"id,omitempty"`
	Name            string      `json:"business_name"`
	WebsiteURL      string      `json:"website_url,omitempty"`
	Industry        Industry    `json:"industry"`
	Description     string      `json:"description,omitempty"`
	Services        []string    `json:"services"`
	ToneOfVoice     Tone        `json:"tone_of_voice"`
	ContactInfo     ContactInfo `json:"contact_info"`
	SocialProof     SocialProof `json:"social_proof"`
	ExtractionError string      `json:"error,omitempty"`
	ExtractedAt     time.Time   `json:"extracted_at"`
	CreatedAt       time.Time   `json:"created_at"`
}

// PostPreferences are caller choices for a generation run.
type PostPreferences struct {
	Tone      Tone       `json:"tone"`
	Frequency int        `json:"frequency"`
	PostTypes []PostType `json:"post_types"`
}

// WithDefaults returns a copy with tone and post types filled in.
func (p PostPreferences) WithDefaults() PostPreferences {
	if p.Tone == "" {
		p.Tone = ToneProfessional
	} else {
		p.Tone = ParseTone(string(p.Tone))
	}
	if len(p.PostTypes) == 0 {
		p.PostTypes = append([]PostType(nil), DefaultPostTypes...)
	}
	return p
}

// NewsItem is an industry headline usable as insight material.
type NewsItem struct {
	Headline         string    `json:"headline"`
	Summary          string    `json:"summary,omitempty"`
	URL              string    `json:"url,omitempty"`
	PublishedDate    time.Time `json:"published_date"`
	Source           string    `json:"source"`
	Kind             string    `json:"type,omitempty"`
	BusinessInsights []string  `json:"business_insights,omitempty"`
	ContentIdeas     []string  `json:"content_ideas,omitempty"`
}

// News item kinds.
const (
	NewsKindRSS        = "rss"
	NewsKindGoogleNews = "google_news"
	NewsKindMock       = "mock"
)
