package news

import (
	"time"

	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
)

// SeasonalTrend is a recurring theme worth posting about this month.
type SeasonalTrend struct {
	Trend            string `json:"trend"`
	Relevance        string `json:"relevance"`
	Timeframe        string `json:"timeframe"`
	ContentPotential string `json:"content_potential"`
}

var seasonal = map[domain.Industry]map[time.Month][]string{
	domain.IndustryFitness: {
		time.January:   {"New Year fitness resolutions", "Detox and cleanse programs"},
		time.March:     {"Spring cleaning workouts", "Outdoor fitness preparation"},
		time.June:      {"Summer body preparation", "Beach workout routines"},
		time.September: {"Back-to-school fitness schedules", "Fall sports training"},
		time.December:  {"Holiday stress relief workouts", "Winter fitness motivation"},
	},
	domain.IndustryBeauty: {
		time.January:   {"New year skincare routines", "Post-holiday skin recovery"},
		time.March:     {"Spring skincare transition", "Allergy-season skin prep"},
		time.June:      {"Summer sun protection", "Vacation-ready beauty"},
		time.September: {"Fall skincare adjustment", "Back-to-school beauty prep"},
		time.December:  {"Holiday glam services", "Winter skin hydration"},
	},
	domain.IndustryFood: {
		time.January:   {"Healthy eating resolutions", "Detox menu items"},
		time.March:     {"Spring fresh ingredients", "Easter brunch specials"},
		time.June:      {"Summer BBQ options", "Fresh summer salads"},
		time.September: {"Comfort food season", "Harvest ingredient menus"},
		time.December:  {"Holiday catering", "New Year's Eve dining"},
	},
}

const fallbackTrend = "Seasonal business opportunities"

// SeasonalTrends returns the themes for industry in month.
func SeasonalTrends(industry domain.Industry, month time.Month) []SeasonalTrend {
	names, ok := seasonal[industry][month]
	if !ok {
		names = []string{fallbackTrend}
	}

	trends := make([]SeasonalTrend, 0, len(names))
	for _, name := range names {
		trends = append(trends, SeasonalTrend{
			Trend:            name,
			Relevance:        "high",
			Timeframe:        "current_month",
			ContentPotential: "high",
		})
	}
	return trends
}
