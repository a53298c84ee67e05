package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for slots and scheduled posts.
const DateLayout = "2006-01-02"

// ScheduleSlot is one day of a weekly schedule. Post and SuggestedTime are nil
// on days without a post.
type ScheduleSlot struct {
	Day           Weekday `json:"-"`
	Date          string  `json:"date"`
	Post          *Post   `json:"post"`
	SuggestedTime *string `json:"suggested_time"`
	DayLabel      string  `json:"day_of_week"`
}

// WeeklySchedule always holds seven slots, monday through sunday.
type WeeklySchedule struct {
	ID         string          `json:"id,omitempty"`
	BusinessID string          `json:"business_id,omitempty"`
	StartDate  string          `json:"start_date"`
	Days       [7]ScheduleSlot `json:"-"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Slot returns the slot for day.
func (s *WeeklySchedule) Slot(day Weekday) *ScheduleSlot {
	for i := range s.Days {
		if s.Days[i].Day == day {
			return &s.Days[i]
		}
	}
	return nil
}

// Posts returns the posts placed in the schedule in day order.
func (s *WeeklySchedule) Posts() []*Post {
	var out []*Post
	for i := range s.Days {
		if s.Days[i].Post != nil {
			out = append(out, s.Days[i].Post)
		}
	}
	return out
}

// MarshalDays encodes the slots as an object keyed by day name, in day order.
func (s *WeeklySchedule) MarshalDays() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := range s.Days {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(string(s.Days[i].Day))
		val, err := json.Marshal(&s.Days[i])
		if err != nil {
			return nil, fmt.Errorf("encode %s slot: %w", s.Days[i].Day, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalDays is the inverse of MarshalDays.
func (s *WeeklySchedule) UnmarshalDays(data []byte) error {
	var days map[Weekday]ScheduleSlot
	if err := json.Unmarshal(data, &days); err != nil {
		return fmt.Errorf("decode schedule days: %w", err)
	}
	for i, d := range AllWeekdays {
		slot := days[d]
		slot.Day = d
		s.Days[i] = slot
	}
	return nil
}

type scheduleJSON struct {
	ID         string          `json:"id,omitempty"`
	BusinessID string          `json:"business_id,omitempty"`
	StartDate  string          `json:"start_date"`
	Schedule   json.RawMessage `json:"schedule"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (s WeeklySchedule) MarshalJSON() ([]byte, error) {
	days, err := s.MarshalDays()
	if err != nil {
		return nil, err
	}
	return json.Marshal(scheduleJSON{
		ID: s.ID, BusinessID: s.BusinessID, StartDate: s.StartDate,
		Schedule: days, CreatedAt: s.CreatedAt,
	})
}

func (s *WeeklySchedule) UnmarshalJSON(data []byte) error {
	var raw scheduleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.ID, s.BusinessID, s.StartDate, s.CreatedAt = raw.ID, raw.BusinessID, raw.StartDate, raw.CreatedAt
	if len(raw.Schedule) == 0 {
		return nil
	}
	return s.UnmarshalDays(raw.Schedule)
}
