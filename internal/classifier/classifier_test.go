package classifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/north-cloud/social-planner/internal/classifier"
	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
	"github.com/jonesrussell/north-cloud/social-planner/internal/lexicon"
	infralogger "github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
)

func TestClassifier_Industry(t *testing.T) {
	t.Parallel()

	c := classifier.New(infralogger.NewNop())

	tests := []struct {
		name     string
		text     string
		services []string
		want     domain.Industry
	}{
		{"no matches", "Welcome to our homepage. We do things.", nil, domain.IndustryGeneral},
		{"empty", "", nil, domain.IndustryGeneral},
		{"clear fitness", "Join our gym for a great workout and personal trainer sessions", nil, domain.IndustryFitness},
		{"services count", "Book with us today", []string{"Hair colour", "Nail art", "Facial"}, domain.IndustryBeauty},
		{"case insensitive", "BAKERY and COFFEE bar", nil, domain.IndustryFood},
		{"repeat keyword counts once", "shop shop shop shop", []string{"bakery and cafe"}, domain.IndustryFood},
		// "training" belongs to fitness and education; fitness wins the 1-1 tie.
		{"shared keyword tie goes to earlier bucket", "training", nil, domain.IndustryFitness},
		// one hit each for retail ("store") and automotive ("garage")
		{"tie retail before automotive", "store garage", nil, domain.IndustryRetail},
		{"multi-word keyword", "we handle real estate and insurance", nil, domain.IndustryProfessional},
		{"higher score wins over order", "music venue theater with a small shop", nil, domain.IndustryEntertainment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, c.Industry(tt.text, tt.services))
		})
	}
}

func TestClassifier_Tone(t *testing.T) {
	t.Parallel()

	c := classifier.New(infralogger.NewNop())

	tests := []struct {
		text string
		want domain.Tone
	}{
		{"nothing relevant here", domain.ToneProfessional},
		{"A warm, friendly, family run place", domain.ToneFriendly},
		{"laid-back and chill vibes, super easy", domain.ToneCasual},
		{"luxury high-end upscale experience", domain.TonePremium},
		// one hit each: professional is first
		{"expert and fun", domain.ToneProfessional},
		{"fun and welcome", domain.ToneFriendly},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, c.Tone(tt.text))
		})
	}
}

func TestClassifier_ClassifyScores(t *testing.T) {
	t.Parallel()

	c := classifier.New(nil)
	res := c.Classify("Certified personal trainer at our gym. Luxury spa too.", []string{"Fitness classes"})

	assert.Equal(t, domain.IndustryFitness, res.Industry)
	// gym, fitness, personal trainer ("trainer" does not contain "training")
	assert.Equal(t, 3, res.IndustryScores[domain.IndustryFitness])
	assert.Equal(t, 1, res.IndustryScores[domain.IndustryBeauty])
	assert.Equal(t, 0, res.IndustryScores[domain.IndustryAutomotive])
	assert.Len(t, res.IndustryScores, len(lexicon.IndustryBuckets))
	assert.Equal(t, domain.ToneProfessional, res.Tone)
}

func TestNewWithBuckets_CustomOrder(t *testing.T) {
	t.Parallel()

	c := classifier.NewWithBuckets(
		[]lexicon.IndustryBucket{
			{Industry: domain.IndustryAutomotive, Keywords: []string{"wheel"}},
			{Industry: domain.IndustryRetail, Keywords: []string{"wheel"}},
		},
		nil,
		nil,
	)
	assert.Equal(t, domain.IndustryAutomotive, c.Industry("wheel", nil))
	assert.Equal(t, domain.ToneProfessional, c.Tone("anything"))
}
