package lexicon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
	"github.com/jonesrussell/north-cloud/social-planner/internal/lexicon"
)

func TestBucketOrder(t *testing.T) {
	t.Parallel()

	want := []domain.Industry{
		domain.IndustryFitness, domain.IndustryBeauty, domain.IndustryFood, domain.IndustryRetail,
		domain.IndustryHealthcare, domain.IndustryEducation, domain.IndustryProfessional,
		domain.IndustryAutomotive, domain.IndustryEntertainment,
	}
	got := make([]domain.Industry, 0, len(lexicon.IndustryBuckets))
	for _, b := range lexicon.IndustryBuckets {
		got = append(got, b.Industry)
	}
	assert.Equal(t, want, got)
	assert.Equal(t, domain.ToneProfessional, lexicon.ToneBuckets[0].Tone)
}

func TestPools(t *testing.T) {
	t.Parallel()

	for _, ind := range []domain.Industry{domain.IndustryFitness, domain.IndustryBeauty, domain.IndustryFood, domain.IndustryGeneral} {
		p := lexicon.PoolFor(ind)
		assert.Len(t, p.Offers, 5, ind)
		assert.Len(t, p.Tips, 5, ind)
		assert.Len(t, p.ValueProps, 5, ind)
		assert.NotEmpty(t, p.Hashtags, ind)
	}
	assert.Equal(t, lexicon.PoolFor(domain.IndustryGeneral), lexicon.PoolFor(domain.IndustryAutomotive))
	assert.Len(t, lexicon.CallsToAction, 10)
	assert.Len(t, lexicon.Updates, 5)
	assert.Len(t, lexicon.Benefits, 4)
}

func TestTemplates_ThreePerKeyWithFallback(t *testing.T) {
	t.Parallel()

	for _, pt := range []domain.PostType{domain.PostTypePromo, domain.PostTypeTip, domain.PostTypeUpdate, domain.PostTypeInsight} {
		for _, tone := range domain.Tones {
			for _, tpl := range lexicon.Templates(pt, tone) {
				assert.NotEmpty(t, tpl, "%s/%s", pt, tone)
			}
		}
	}
	assert.Equal(t, lexicon.Templates(domain.PostTypePromo, domain.ToneProfessional),
		lexicon.Templates("poll", "sarcastic"))
	assert.Equal(t, lexicon.Templates(domain.PostTypeTip, domain.ToneProfessional),
		lexicon.Templates(domain.PostTypeTip, "sarcastic"))
	assert.Equal(t, lexicon.Templates(domain.PostTypeTip, domain.ToneCasual),
		lexicon.Templates("TIP", "Casual"))
}
