package cmd

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
)

const contentWidth = 60

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderProfile(w io.Writer, p *domain.BusinessProfile) {
	t := newTable(w)
	t.SetTitle(p.Name)
	t.AppendRows([]table.Row{
		{"Website", p.WebsiteURL},
		{"Industry", p.Industry},
		{"Tone", p.ToneOfVoice},
		{"Description", text.WrapSoft(p.Description, contentWidth)},
		{"Services", strings.Join(p.Services, "\n")},
		{"Phone", p.ContactInfo.Phone},
		{"Email", p.ContactInfo.Email},
		{"Address", p.ContactInfo.Address},
		{"Rating", p.SocialProof.Rating},
		{"Testimonials", p.SocialProof.TestimonialsCount},
	})
	if p.ExtractionError != "" {
		t.AppendFooter(table.Row{"Error", p.ExtractionError})
	}
	t.Render()
}

func renderPosts(w io.Writer, posts []domain.Post) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Type", "Tone", "Content", "Hashtags", "Best time", "Engagement"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, WidthMax: contentWidth},
	})
	for i, p := range posts {
		t.AppendRow(table.Row{
			i + 1,
			p.PostType,
			p.Tone,
			p.Content,
			strings.Join(p.Hashtags, " "),
			p.BestTimeToPost,
			p.EstimatedEngagement.Score,
		})
	}
	t.Render()
}

func renderSchedule(w io.Writer, s *domain.WeeklySchedule) {
	t := newTable(w)
	t.SetTitle("Week of " + s.StartDate)
	t.AppendHeader(table.Row{"Day", "Date", "Time", "Type", "Content"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, WidthMax: contentWidth},
	})
	for _, slot := range s.Days {
		if slot.Post == nil {
			t.AppendRow(table.Row{slot.DayLabel, slot.Date, "", "", ""})
			continue
		}
		suggested := ""
		if slot.SuggestedTime != nil {
			suggested = *slot.SuggestedTime
		}
		t.AppendRow(table.Row{slot.DayLabel, slot.Date, suggested, slot.Post.PostType, slot.Post.Content})
	}
	t.Render()
}
