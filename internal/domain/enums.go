// Package domain holds the plain data types shared by the planner packages.
package domain

import "strings"

// Industry is a closed set of business categories.
type Industry string

const (
	IndustryFitness       Industry = "fitness"
	IndustryBeauty        Industry = "beauty"
	IndustryFood          Industry = "food"
	IndustryRetail        Industry = "retail"
	IndustryHealthcare    Industry = "healthcare"
	IndustryEducation     Industry = "education"
	IndustryProfessional  Industry = "professional"
	IndustryAutomotive    Industry = "automotive"
	IndustryEntertainment Industry = "entertainment"
	IndustryGeneral       Industry = "general"
)

// Industries lists every industry, general last.
var Industries = []Industry{
	IndustryFitness, IndustryBeauty, IndustryFood, IndustryRetail, IndustryHealthcare,
	IndustryEducation, IndustryProfessional, IndustryAutomotive, IndustryEntertainment,
	IndustryGeneral,
}

// ParseIndustry maps free text onto an Industry; anything unknown is general.
func ParseIndustry(s string) Industry {
	v := Industry(strings.ToLower(strings.TrimSpace(s)))
	for _, i := range Industries {
		if v == i {
			return i
		}
	}
	return IndustryGeneral
}

// Tone is the voice used in generated copy.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneFriendly     Tone = "friendly"
	ToneCasual       Tone = "casual"
	TonePremium      Tone = "premium"
)

// Tones lists every tone in classification order.
var Tones = []Tone{ToneProfessional, ToneFriendly, ToneCasual, TonePremium}

// ParseTone maps free text onto a Tone; anything unknown is professional.
func ParseTone(s string) Tone {
	v := Tone(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range Tones {
		if v == t {
			return t
		}
	}
	return ToneProfessional
}

// PostType is the kind of post being generated.
type PostType string

const (
	PostTypePromo   PostType = "promo"
	PostTypeTip     PostType = "tip"
	PostTypeUpdate  PostType = "update"
	PostTypeInsight PostType = "insight"
)

// DefaultPostTypes is used when a caller does not express a preference.
var DefaultPostTypes = []PostType{PostTypePromo, PostTypeTip, PostTypeUpdate}

// ParsePostType reports whether s names a known post type.
func ParsePostType(s string) (PostType, bool) {
	switch p := PostType(strings.ToLower(strings.TrimSpace(s))); p {
	case PostTypePromo, PostTypeTip, PostTypeUpdate, PostTypeInsight:
		return p, true
	default:
		return p, false
	}
}

// Weekday is a lowercase day name used as a schedule key.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// AllWeekdays is the fixed monday..sunday order of schedule slots.
var AllWeekdays = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday reports whether s names a day of the week.
func ParseWeekday(s string) (Weekday, bool) {
	d := Weekday(strings.ToLower(strings.TrimSpace(s)))
	for _, w := range AllWeekdays {
		if d == w {
			return w, true
		}
	}
	return d, false
}

// PostStatus is the publishing lifecycle of a post.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusScheduled PostStatus = "scheduled"
	StatusPublished PostStatus = "published"
)

// EngagementScore labels an engagement projection.
type EngagementScore string

const (
	EngagementHigh   EngagementScore = "high"
	EngagementMedium EngagementScore = "medium"
)
