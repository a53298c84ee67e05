package planner_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
	"github.com/jonesrussell/north-cloud/social-planner/internal/planner"
)

func makePosts(n int) []domain.Post {
	posts := make([]domain.Post, n)
	for i := range posts {
		posts[i] = domain.Post{
			Content:        string(rune('A' + i)),
			Hashtags:       []string{"#local"},
			PostType:       domain.PostTypeTip,
			BestTimeToPost: "9:00 AM",
			Status:         domain.StatusDraft,
		}
	}
	return posts
}

var augFourth = time.Date(2025, time.August, 4, 15, 30, 0, 0, time.UTC)

func TestSchedule_ExplicitAndDefaultDaysAgree(t *testing.T) {
	t.Parallel()

	posts := makePosts(3)
	explicit, err := planner.Schedule(posts, 3, []string{"monday", "wednesday", "friday"}, augFourth)
	require.NoError(t, err)
	defaulted, err := planner.Schedule(posts, 3, nil, augFourth)
	require.NoError(t, err)

	for _, s := range []*domain.WeeklySchedule{explicit, defaulted} {
		assert.Equal(t, "2025-08-04", s.StartDate)

		mon := s.Slot(domain.Monday)
		require.NotNil(t, mon.Post)
		assert.Equal(t, "2025-08-04", mon.Date)
		assert.Equal(t, "A", mon.Post.Content)

		wed := s.Slot(domain.Wednesday)
		require.NotNil(t, wed.Post)
		assert.Equal(t, "2025-08-06", wed.Date)
		assert.Equal(t, "B", wed.Post.Content)

		fri := s.Slot(domain.Friday)
		require.NotNil(t, fri.Post)
		assert.Equal(t, "2025-08-08", fri.Date)
		assert.Equal(t, "C", fri.Post.Content)

		for _, day := range []domain.Weekday{domain.Tuesday, domain.Thursday, domain.Saturday, domain.Sunday} {
			slot := s.Slot(day)
			assert.Nil(t, slot.Post, day)
			assert.Nil(t, slot.SuggestedTime, day)
		}
	}
	assert.Equal(t, explicit, defaulted)
}

func TestSchedule_SlotsInvariant(t *testing.T) {
	t.Parallel()

	// 2025-08-06 is a Wednesday; slots still run monday..sunday.
	start := time.Date(2025, time.August, 6, 0, 0, 0, 0, time.UTC)
	s, err := planner.Schedule(makePosts(7), 7, nil, start)
	require.NoError(t, err)

	for i, slot := range s.Days {
		assert.Equal(t, domain.AllWeekdays[i], slot.Day)
		assert.Equal(t, start.AddDate(0, 0, i).Format(domain.DateLayout), slot.Date)
		require.NotNil(t, slot.Post)
		assert.Equal(t, slot.Date, slot.Post.ScheduledDate)
		assert.Equal(t, domain.StatusScheduled, slot.Post.Status)
		require.NotNil(t, slot.SuggestedTime)
		assert.Equal(t, "9:00 AM", *slot.SuggestedTime)
	}
	assert.Equal(t, "Monday", s.Days[0].DayLabel)
	assert.Equal(t, "Sunday", s.Days[6].DayLabel)
}

func TestSchedule_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	posts := makePosts(2)
	s, err := planner.Schedule(posts, 2, []string{"tuesday"}, augFourth)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDraft, posts[0].Status)
	assert.Empty(t, posts[0].ScheduledDate)

	s.Slot(domain.Tuesday).Post.Hashtags[0] = "#changed"
	assert.Equal(t, "#local", posts[0].Hashtags[0])
}

func TestSchedule_PreferredDaysExtended(t *testing.T) {
	t.Parallel()

	// saturday first, then monday and tuesday from the fixed order
	s, err := planner.Schedule(makePosts(4), 3, []string{"Saturday"}, augFourth)
	require.NoError(t, err)

	assert.Equal(t, "A", s.Slot(domain.Saturday).Post.Content)
	assert.Equal(t, "B", s.Slot(domain.Monday).Post.Content)
	assert.Equal(t, "C", s.Slot(domain.Tuesday).Post.Content)
	assert.Len(t, s.Posts(), 3)
}

func TestSchedule_DuplicatePreferredDays(t *testing.T) {
	t.Parallel()

	s, err := planner.Schedule(makePosts(2), 2, []string{"friday", "friday", "monday"}, augFourth)
	require.NoError(t, err)

	assert.Equal(t, "A", s.Slot(domain.Friday).Post.Content)
	assert.Equal(t, "B", s.Slot(domain.Monday).Post.Content)
}

func TestSchedule_ZeroStartUsesToday(t *testing.T) {
	t.Parallel()

	before := time.Now().Format(domain.DateLayout)
	s, err := planner.Schedule(makePosts(1), 1, nil, time.Time{})
	after := time.Now().Format(domain.DateLayout)
	require.NoError(t, err)

	assert.Contains(t, []string{before, after}, s.StartDate)
	assert.Equal(t, s.StartDate, s.Days[0].Date)
}

func TestSchedule_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		posts     int
		frequency int
		days      []string
		field     string
	}{
		{"zero frequency", 3, 0, nil, "frequency"},
		{"frequency above seven", 8, 8, nil, "frequency"},
		{"more slots than posts", 2, 3, nil, "frequency"},
		{"unknown day", 3, 3, []string{"monday", "someday"}, "preferred_days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := planner.Schedule(makePosts(tt.posts), tt.frequency, tt.days, augFourth)
			var verr *planner.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestDefaultDays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []domain.Weekday{domain.Monday, domain.Wednesday, domain.Friday}, planner.DefaultDays(1))
	assert.Equal(t, []domain.Weekday{domain.Monday, domain.Tuesday, domain.Thursday, domain.Friday, domain.Saturday}, planner.DefaultDays(4))
	assert.Len(t, planner.DefaultDays(6), 7)
}
