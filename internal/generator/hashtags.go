package generator

import (
	"math/rand/v2"

	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
	"github.com/jonesrussell/north-cloud/social-planner/internal/lexicon"
)

// hashtagCandidates is the deduplicated union of industry, type and general
// hashtags, in first-seen order.
func hashtagCandidates(industry domain.Industry, postType domain.PostType) []string {
	sets := [][]string{lexicon.PoolFor(industry).Hashtags}
	if postType == domain.PostTypeInsight {
		sets = append(sets, lexicon.InsightHashtags)
	}
	sets = append(sets, lexicon.TypeHashtags(postType), lexicon.GeneralHashtags)

	seen := make(map[string]struct{})
	var out []string
	for _, set := range sets {
		for _, tag := range set {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

// sampleHashtags draws min(MaxHashtags, len(candidates)) tags without replacement.
func sampleHashtags(rng *rand.Rand, candidates []string) []string {
	n := min(lexicon.MaxHashtags, len(candidates))
	out := make([]string, 0, n)
	for _, i := range rng.Perm(len(candidates))[:n] {
		out = append(out, candidates[i])
	}
	return out
}
