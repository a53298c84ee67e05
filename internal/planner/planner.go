// Package planner lays generated posts out over a seven day calendar.
package planner

import (
	"slices"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
)

// MaxFrequency is the most posts a weekly schedule can hold.
const MaxFrequency = len(domain.AllWeekdays)

var (
	lightDays  = []domain.Weekday{domain.Monday, domain.Wednesday, domain.Friday}
	mediumDays = []domain.Weekday{domain.Monday, domain.Tuesday, domain.Thursday, domain.Friday, domain.Saturday}
)

// DefaultDays returns the posting days used when the caller has no preference.
func DefaultDays(frequency int) []domain.Weekday {
	switch {
	case frequency <= len(lightDays):
		return slices.Clone(lightDays)
	case frequency <= len(mediumDays):
		return slices.Clone(mediumDays)
	default:
		return slices.Clone(domain.AllWeekdays[:])
	}
}

// Schedule places the first frequency posts on the preferred days of the
// week starting at start. Slot i is AllWeekdays[i] dated start+i days
// whatever weekday start falls on. A zero start means today. Placed posts
// are copies marked scheduled; posts is not modified.
func Schedule(posts []domain.Post, frequency int, preferredDays []string, start time.Time) (*domain.WeeklySchedule, error) {
	if frequency < 1 {
		return nil, invalid("frequency", "must be at least 1, got %d", frequency)
	}
	if frequency > MaxFrequency {
		return nil, invalid("frequency", "must be at most %d, got %d", MaxFrequency, frequency)
	}
	if frequency > len(posts) {
		return nil, invalid("frequency", "%d exceeds the %d available posts", frequency, len(posts))
	}

	preferred, err := parseDays(preferredDays)
	if err != nil {
		return nil, err
	}
	if len(preferred) == 0 {
		preferred = DefaultDays(frequency)
	}
	posting := postingDays(preferred, frequency)

	if start.IsZero() {
		start = time.Now()
	}
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	// Casers carry state and are not shared between calls.
	title := cases.Title(language.English)
	schedule := &domain.WeeklySchedule{StartDate: start.Format(domain.DateLayout)}
	for i, day := range domain.AllWeekdays {
		slot := domain.ScheduleSlot{
			Day:      day,
			Date:     start.AddDate(0, 0, i).Format(domain.DateLayout),
			DayLabel: title.String(string(day)),
		}

		if k := slices.Index(posting, day); k >= 0 && k < len(posts) {
			post := posts[k].Clone()
			post.Status = domain.StatusScheduled
			post.ScheduledDate = slot.Date
			suggested := post.BestTimeToPost
			slot.Post = post
			slot.SuggestedTime = &suggested
		}
		schedule.Days[i] = slot
	}
	return schedule, nil
}

// parseDays validates day names and drops repeats, keeping first occurrence.
func parseDays(names []string) ([]domain.Weekday, error) {
	days := make([]domain.Weekday, 0, len(names))
	for _, name := range names {
		day, ok := domain.ParseWeekday(name)
		if !ok {
			return nil, invalid("preferred_days", "%q is not a day of the week", name)
		}
		if !slices.Contains(days, day) {
			days = append(days, day)
		}
	}
	return days, nil
}

// postingDays takes the first frequency preferred days and tops up from the
// monday..sunday order.
func postingDays(preferred []domain.Weekday, frequency int) []domain.Weekday {
	days := slices.Clone(preferred[:min(frequency, len(preferred))])
	for _, day := range domain.AllWeekdays {
		if len(days) >= frequency {
			break
		}
		if !slices.Contains(days, day) {
			days = append(days, day)
		}
	}
	return days
}
