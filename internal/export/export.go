// Package export writes profiles and posts to an Excel workbook.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
)

const (
	ProfilesSheet = "Profiles"
	PostsSheet    = "Posts"

	// ContentType is the MIME type of the written workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var profileHeader = []any{
	"ID", "Business Name", "Website", "Industry", "Tone", "Description",
	"Services", "Phone", "Email", "Address", "Created At",
}

var postHeader = []any{
	"ID", "Business ID", "Type", "Tone", "Status", "Content", "Hashtags",
	"Call To Action", "Best Time", "Scheduled Date", "Engagement",
	"Facebook Post ID", "Created At", "Published At",
}

// WriteWorkbook writes a two-sheet workbook with one header row per sheet.
func WriteWorkbook(w io.Writer, profiles []domain.BusinessProfile, posts []domain.Post) error {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes Profiles.
	if err := f.SetSheetName(f.GetSheetName(0), ProfilesSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(PostsSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", PostsSheet, err)
	}

	rows := make([][]any, 0, len(profiles)+1)
	rows = append(rows, profileHeader)
	for i := range profiles {
		rows = append(rows, profileRow(&profiles[i]))
	}
	if err := writeRows(f, ProfilesSheet, rows); err != nil {
		return err
	}

	rows = make([][]any, 0, len(posts)+1)
	rows = append(rows, postHeader)
	for i := range posts {
		rows = append(rows, postRow(&posts[i]))
	}
	if err := writeRows(f, PostsSheet, rows); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	for sheet, cols := range map[string]int{ProfilesSheet: len(profileHeader), PostsSheet: len(postHeader)} {
		last, _ := excelize.CoordinatesToCellName(cols, 1)
		if err = f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return fmt.Errorf("style %s header: %w", sheet, err)
		}
	}

	if _, err = f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func profileRow(p *domain.BusinessProfile) []any {
	return []any{
		p.ID, p.Name, p.WebsiteURL, string(p.Industry), string(p.ToneOfVoice), p.Description,
		strings.Join(p.Services, "; "), p.ContactInfo.Phone, p.ContactInfo.Email, p.ContactInfo.Address,
		timestamp(p.CreatedAt),
	}
}

func postRow(p *domain.Post) []any {
	published := ""
	if p.PublishedAt != nil {
		published = timestamp(*p.PublishedAt)
	}
	return []any{
		p.ID, p.BusinessID, string(p.PostType), string(p.Tone), string(p.Status), p.Content,
		strings.Join(p.Hashtags, " "), p.CallToAction, p.BestTimeToPost, p.ScheduledDate,
		string(p.EstimatedEngagement.Score), p.ExternalPostID, timestamp(p.CreatedAt), published,
	}
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
