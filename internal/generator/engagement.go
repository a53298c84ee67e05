package generator

import "github.com/jonesrussell/north-cloud/social-planner/internal/domain"

type baseEngagement struct {
	likes, comments, shares int
}

var baseEngagements = map[domain.PostType]baseEngagement{
	domain.PostTypePromo:   {45, 8, 12},
	domain.PostTypeTip:     {65, 15, 25},
	domain.PostTypeUpdate:  {35, 6, 8},
	domain.PostTypeInsight: {55, 12, 20},
}

var unknownEngagement = baseEngagement{50, 10, 15}

// Tone multipliers in percent. Integer math keeps the floor exact.
var toneMultipliers = map[domain.Tone]int{
	domain.ToneFriendly:     120,
	domain.ToneCasual:       110,
	domain.ToneProfessional: 100,
	domain.TonePremium:      90,
}

const (
	neutralMultiplier = 100
	highThreshold     = 110
)

// EstimateEngagement projects reactions for a post type and tone.
func EstimateEngagement(postType domain.PostType, tone domain.Tone) domain.Engagement {
	base, ok := baseEngagements[postType]
	if !ok {
		base = unknownEngagement
	}
	mult, ok := toneMultipliers[tone]
	if !ok {
		mult = neutralMultiplier
	}

	score := domain.EngagementMedium
	if mult > highThreshold {
		score = domain.EngagementHigh
	}

	return domain.Engagement{
		Likes:    base.likes * mult / neutralMultiplier,
		Comments: base.comments * mult / neutralMultiplier,
		Shares:   base.shares * mult / neutralMultiplier,
		Score:    score,
	}
}
