// Package classifier assigns an industry and a tone of voice to website text
// by counting keyword hits per bucket with a single Aho-Corasick pass.
package classifier

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// scorer counts, for each ordered bucket, how many of its keywords occur in a text.
type scorer struct {
	matcher  *ahocorasick.Matcher
	keywords []string
	// kwToBuckets maps a keyword index to every bucket listing that keyword.
	kwToBuckets [][]int
	buckets     int
}

func newScorer(buckets [][]string) *scorer {
	s := &scorer{buckets: len(buckets)}
	index := make(map[string]int)

	for b, keywords := range buckets {
		for _, kw := range keywords {
			kw = normalizeKeyword(kw)
			if kw == "" {
				continue
			}
			i, seen := index[kw]
			if !seen {
				i = len(s.keywords)
				index[kw] = i
				s.keywords = append(s.keywords, kw)
				s.kwToBuckets = append(s.kwToBuckets, nil)
			}
			s.kwToBuckets[i] = append(s.kwToBuckets[i], b)
		}
	}

	if len(s.keywords) > 0 {
		s.matcher = ahocorasick.NewStringMatcher(s.keywords)
	}
	return s
}

// scores returns hit counts per bucket. A keyword counts once however often it occurs.
func (s *scorer) scores(text string) []int {
	out := make([]int, s.buckets)
	if s.matcher == nil || text == "" {
		return out
	}

	seen := make([]bool, len(s.keywords))
	for _, hit := range s.matcher.Match([]byte(text)) {
		if hit < 0 || hit >= len(s.keywords) || seen[hit] {
			continue
		}
		seen[hit] = true
		for _, b := range s.kwToBuckets[hit] {
			out[b]++
		}
	}
	return out
}

// best returns the index of the highest score, preferring the earliest bucket
// on ties, or -1 when every score is zero.
func best(scores []int) int {
	winner, top := -1, 0
	for i, sc := range scores {
		if sc > top {
			winner, top = i, sc
		}
	}
	return winner
}

func normalizeKeyword(kw string) string {
	return strings.ToLower(strings.TrimSpace(kw))
}
