// Package lexicon holds the static keyword buckets, content pools, templates
// and posting-time tables. Every table is read-only after init.
package lexicon

import "github.com/jonesrussell/north-cloud/social-planner/internal/domain"

// IndustryBucket is one industry and the keywords that indicate it.
type IndustryBucket struct {
	Industry domain.Industry
	Keywords []string
}

// ToneBucket is one tone and the keywords that indicate it.
type ToneBucket struct {
	Tone     domain.Tone
	Keywords []string
}

// IndustryBuckets is ordered: ties are won by the earlier bucket.
var IndustryBuckets = []IndustryBucket{
	{domain.IndustryFitness, []string{"gym", "fitness", "workout", "training", "exercise", "health club", "personal trainer"}},
	{domain.IndustryBeauty, []string{"salon", "spa", "beauty", "hair", "nail", "massage", "facial", "cosmetic"}},
	{domain.IndustryFood, []string{"restaurant", "cafe", "coffee", "dining", "food", "bakery", "catering", "bistro"}},
	{domain.IndustryRetail, []string{"shop", "store", "boutique", "retail", "fashion", "clothing", "accessories"}},
	{domain.IndustryHealthcare, []string{"medical", "dental", "clinic", "doctor", "healthcare", "therapy", "wellness"}},
	{domain.IndustryEducation, []string{"school", "academy", "training", "education", "learning", "course", "tutor"}},
	{domain.IndustryProfessional, []string{"consulting", "legal", "accounting", "financial", "insurance", "real estate"}},
	{domain.IndustryAutomotive, []string{"auto", "car", "garage", "mechanic", "repair", "dealership", "vehicle"}},
	{domain.IndustryEntertainment, []string{"entertainment", "event", "party", "music", "venue", "club", "theater"}},
}

// ToneBuckets is ordered like IndustryBuckets.
var ToneBuckets = []ToneBucket{
	{domain.ToneProfessional, []string{"expert", "professional", "certified", "licensed", "quality", "experience"}},
	{domain.ToneFriendly, []string{"friendly", "welcome", "family", "community", "caring", "personal", "warm"}},
	{domain.ToneCasual, []string{"fun", "easy", "simple", "relaxed", "comfortable", "laid-back", "chill"}},
	{domain.TonePremium, []string{"luxury", "premium", "exclusive", "high-end", "elite", "sophisticated", "upscale"}},
}
