package generator

import (
	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
	"github.com/jonesrussell/north-cloud/social-planner/internal/lexicon"
)

// BestTime suggests a clock time for posting a post type in an industry.
func BestTime(industry domain.Industry, postType domain.PostType) string {
	part := lexicon.PreferredDayPart(postType)
	if t, ok := lexicon.IndustryTimes(industry)[part]; ok {
		return t
	}
	return lexicon.DefaultPostingTime
}
