package classifier

import (
	"strings"

	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
	"github.com/jonesrussell/north-cloud/social-planner/internal/lexicon"
	infralogger "github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
)

// Result is a classification outcome with the per-bucket scores behind it.
type Result struct {
	Industry       domain.Industry
	Tone           domain.Tone
	IndustryScores map[domain.Industry]int
	ToneScores     map[domain.Tone]int
}

// Classifier is immutable after construction and safe for concurrent use.
type Classifier struct {
	industries []lexicon.IndustryBucket
	tones      []lexicon.ToneBucket
	industry   *scorer
	tone       *scorer
}

// New builds a Classifier over the lexicon's buckets.
func New(log infralogger.Logger) *Classifier {
	return NewWithBuckets(lexicon.IndustryBuckets, lexicon.ToneBuckets, log)
}

// NewWithBuckets builds a Classifier over caller-supplied ordered buckets.
func NewWithBuckets(industries []lexicon.IndustryBucket, tones []lexicon.ToneBucket, log infralogger.Logger) *Classifier {
	ik := make([][]string, len(industries))
	for i, b := range industries {
		ik[i] = b.Keywords
	}
	tk := make([][]string, len(tones))
	for i, b := range tones {
		tk[i] = b.Keywords
	}

	c := &Classifier{
		industries: industries,
		tones:      tones,
		industry:   newScorer(ik),
		tone:       newScorer(tk),
	}

	if log != nil {
		log.Debug("classifier initialized",
			infralogger.Int("industry_keywords", len(c.industry.keywords)),
			infralogger.Int("tone_keywords", len(c.tone.keywords)))
	}
	return c
}

// Industry scores pageText plus services; zero hits everywhere yields general.
func (c *Classifier) Industry(pageText string, services []string) domain.Industry {
	winner := best(c.industry.scores(industryText(pageText, services)))
	if winner < 0 {
		return domain.IndustryGeneral
	}
	return c.industries[winner].Industry
}

// Tone scores pageText; zero hits everywhere yields professional.
func (c *Classifier) Tone(pageText string) domain.Tone {
	winner := best(c.tone.scores(strings.ToLower(pageText)))
	if winner < 0 {
		return domain.ToneProfessional
	}
	return c.tones[winner].Tone
}

// Classify returns both labels with their scores.
func (c *Classifier) Classify(pageText string, services []string) Result {
	is := c.industry.scores(industryText(pageText, services))
	ts := c.tone.scores(strings.ToLower(pageText))

	res := Result{
		Industry:       domain.IndustryGeneral,
		Tone:           domain.ToneProfessional,
		IndustryScores: make(map[domain.Industry]int, len(is)),
		ToneScores:     make(map[domain.Tone]int, len(ts)),
	}
	for i, sc := range is {
		res.IndustryScores[c.industries[i].Industry] = sc
	}
	for i, sc := range ts {
		res.ToneScores[c.tones[i].Tone] = sc
	}
	if w := best(is); w >= 0 {
		res.Industry = c.industries[w].Industry
	}
	if w := best(ts); w >= 0 {
		res.Tone = c.tones[w].Tone
	}
	return res
}

func industryText(pageText string, services []string) string {
	return strings.ToLower(pageText + " " + strings.Join(services, " "))
}
