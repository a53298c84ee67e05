package lexicon

import "github.com/jonesrussell/north-cloud/social-planner/internal/domain"

// Day-part names used by the posting-time tables.
const (
	DayPartMorning   = "morning"
	DayPartAfternoon = "afternoon"
	DayPartEvening   = "evening"
	DayPartLunch     = "lunch"
	DayPartDinner    = "dinner"
)

// DefaultPostingTime is used when an industry has no time for the preferred day-part.
const DefaultPostingTime = "12:00 PM"

var industryTimes = map[domain.Industry]map[string]string{
	domain.IndustryFitness: {DayPartMorning: "6:00 AM", DayPartEvening: "6:00 PM"},
	domain.IndustryBeauty:  {DayPartAfternoon: "2:00 PM", DayPartEvening: "7:00 PM"},
	domain.IndustryFood:    {DayPartLunch: "11:30 AM", DayPartDinner: "5:30 PM"},
	domain.IndustryGeneral: {DayPartMorning: "9:00 AM", DayPartAfternoon: "3:00 PM"},
}

var preferredDayPart = map[domain.PostType]string{
	domain.PostTypePromo:   DayPartAfternoon,
	domain.PostTypeTip:     DayPartMorning,
	domain.PostTypeUpdate:  DayPartMorning,
	domain.PostTypeInsight: DayPartAfternoon,
}

// IndustryTimes returns the day-part table for industry, falling back to general.
func IndustryTimes(industry domain.Industry) map[string]string {
	if t, ok := industryTimes[industry]; ok {
		return t
	}
	return industryTimes[domain.IndustryGeneral]
}

// PreferredDayPart returns the day-part a post type performs best in.
func PreferredDayPart(postType domain.PostType) string {
	if p, ok := preferredDayPart[postType]; ok {
		return p
	}
	return DayPartAfternoon
}
