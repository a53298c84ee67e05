package database_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/social-planner/internal/config"
	"github.com/jonesrussell/north-cloud/social-planner/internal/database"
	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
)

func newMockStore(t *testing.T) (*database.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return database.NewStore(sqlx.NewDb(db, "postgres")), mock
}

var postCols = []string{
	"id", "business_id", "content", "hashtags", "post_type", "tone", "industry", "call_to_action",
	"news_source", "engagement", "best_time_to_post", "status", "scheduled_date", "external_post_id",
	"external_url", "created_at", "updated_at", "published_at",
}

func postValues(id, status string) []driver.Value {
	now := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	return []driver.Value{
		id, "biz-1", "Hello gym fans", `["#fitness","#gym"]`, "tip", "friendly", "fitness", "Book now!",
		"", `{"estimated_likes":78,"estimated_comments":18,"estimated_shares":30,"engagement_score":"high"}`,
		"6:00 AM", status, "", "", "", now, now, nil,
	}
}

func TestDSN(t *testing.T) {
	t.Parallel()

	dsn, err := database.DSN(config.DatabaseConfig{
		Driver: config.DriverPostgres, Host: "db", Port: 5432, User: "u", Password: "p", DBName: "planner", SSLMode: "disable",
	})
	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=planner sslmode=disable", dsn)

	path := filepath.Join(t.TempDir(), "nested", "planner.db")
	dsn, err = database.DSN(config.DatabaseConfig{Driver: config.DriverSQLite, Path: path})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dsn, path+"?"))
	assert.DirExists(t, filepath.Dir(path))

	_, err = database.DSN(config.DatabaseConfig{Driver: "mysql"})
	assert.Error(t, err)
}

func TestProfileRepository_CreateAssignsID(t *testing.T) {
	t.Parallel()
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO business_profiles").WillReturnResult(sqlmock.NewResult(1, 1))

	p := &domain.BusinessProfile{Name: "Glow Spa", Industry: domain.IndustryBeauty, ToneOfVoice: domain.TonePremium}
	require.NoError(t, store.Profiles.Create(context.Background(), p))

	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_GetByID(t *testing.T) {
	t.Parallel()
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	cols := []string{
		"id", "business_name", "website_url", "industry", "description", "services", "tone_of_voice",
		"contact_info", "social_proof", "extraction_error", "extracted_at", "created_at", "updated_at",
	}
	mock.ExpectQuery(`SELECT .+ FROM business_profiles WHERE id = \$1`).
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			"p-1", "Glow Spa", "https://glow.example", "beauty", "Day spa", `["Facials","Massage"]`, "premium",
			`{"phone":"555-0100"}`, `{"rating":"4.9","testimonials_count":3}`, "", now, now, now,
		))
	mock.ExpectQuery(`SELECT .+ FROM business_profiles WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	p, err := store.Profiles.GetByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, domain.IndustryBeauty, p.Industry)
	assert.Equal(t, domain.TonePremium, p.ToneOfVoice)
	assert.Equal(t, []string{"Facials", "Massage"}, p.Services)
	assert.Equal(t, "555-0100", p.ContactInfo.Phone)
	assert.Equal(t, 3, p.SocialProof.TestimonialsCount)

	_, err = store.Profiles.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, database.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_DeleteMissingRollsBack(t *testing.T) {
	t.Parallel()
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM posts").WithArgs("p-1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM schedules").WithArgs("p-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM page_connections").WithArgs("p-1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM business_profiles").WithArgs("p-1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := store.Profiles.Delete(context.Background(), "p-1")
	require.ErrorIs(t, err, database.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_CreateMany(t *testing.T) {
	t.Parallel()
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO posts").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO posts").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	posts := []*domain.Post{
		{BusinessID: "biz-1", Content: "one", PostType: domain.PostTypePromo},
		{BusinessID: "biz-1", Content: "two", PostType: domain.PostTypeTip},
	}
	require.NoError(t, store.Posts.CreateMany(context.Background(), posts))

	for _, p := range posts {
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, domain.StatusDraft, p.Status)
	}
	assert.NotEqual(t, posts[0].ID, posts[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByIDDecodesJSON(t *testing.T) {
	t.Parallel()
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM posts WHERE id = \$1`).
		WithArgs("post-1").
		WillReturnRows(sqlmock.NewRows(postCols).AddRow(postValues("post-1", "draft")...))

	p, err := store.Posts.GetByID(context.Background(), "post-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"#fitness", "#gym"}, p.Hashtags)
	assert.Equal(t, 78, p.EstimatedEngagement.Likes)
	assert.Equal(t, domain.EngagementHigh, p.EstimatedEngagement.Score)
	assert.Nil(t, p.PublishedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListByStatus(t *testing.T) {
	t.Parallel()
	store, mock := newMockStore(t)

	mock.ExpectQuery(`FROM posts WHERE status = \$1 AND business_id = \$2`).
		WithArgs("draft", "biz-1").
		WillReturnRows(sqlmock.NewRows(postCols).
			AddRow(postValues("a", "draft")...).
			AddRow(postValues("b", "draft")...))
	mock.ExpectQuery(`FROM posts WHERE status = \$1 ORDER BY`).
		WithArgs("scheduled").
		WillReturnRows(sqlmock.NewRows(postCols))

	posts, err := store.Posts.ListByStatus(context.Background(), domain.StatusDraft, "biz-1")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "a", posts[0].ID)

	posts, err = store.Posts.ListByStatus(context.Background(), domain.StatusScheduled, "")
	require.NoError(t, err)
	assert.Empty(t, posts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_UpdateMissing(t *testing.T) {
	t.Parallel()
	store, mock := newMockStore(t)

	mock.ExpectExec("UPDATE posts SET").WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Posts.Update(context.Background(), &domain.Post{ID: "nope"})
	require.ErrorIs(t, err, database.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_CreateUpdatesPosts(t *testing.T) {
	t.Parallel()
	store, mock := newMockStore(t)

	schedule := &domain.WeeklySchedule{BusinessID: "biz-1", StartDate: "2025-08-04"}
	for i, day := range domain.AllWeekdays {
		schedule.Days[i] = domain.ScheduleSlot{Day: day, Date: time.Date(2025, 8, 4+i, 0, 0, 0, 0, time.UTC).Format(domain.DateLayout)}
	}
	schedule.Days[0].Post = &domain.Post{ID: "post-1", Status: domain.StatusScheduled, ScheduledDate: "2025-08-04"}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE posts SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO schedules").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, store.Schedules.Create(context.Background(), schedule))
	assert.NotEmpty(t, schedule.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_GetByID(t *testing.T) {
	t.Parallel()
	store, mock := newMockStore(t)

	src := &domain.WeeklySchedule{ID: "s-1", BusinessID: "biz-1", StartDate: "2025-08-04"}
	for i, day := range domain.AllWeekdays {
		src.Days[i] = domain.ScheduleSlot{Day: day, Date: time.Date(2025, 8, 4+i, 0, 0, 0, 0, time.UTC).Format(domain.DateLayout)}
	}
	suggested := "6:00 AM"
	src.Days[2].Post = &domain.Post{ID: "p-3", Content: "midweek"}
	src.Days[2].SuggestedTime = &suggested
	days, err := src.MarshalDays()
	require.NoError(t, err)

	mock.ExpectQuery(`FROM schedules WHERE id = \$1`).
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "business_id", "start_date", "days", "created_at"}).
			AddRow("s-1", "biz-1", "2025-08-04", string(days), time.Now()))

	got, err := store.Schedules.GetByID(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, domain.Wednesday, got.Days[2].Day)
	require.NotNil(t, got.Days[2].Post)
	assert.Equal(t, "midweek", got.Days[2].Post.Content)
	assert.Equal(t, "2025-08-10", got.Days[6].Date)
	assert.Nil(t, got.Days[0].Post)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepository_Stats(t *testing.T) {
	t.Parallel()
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT status, post_type, COUNT\(\*\) AS n FROM posts WHERE business_id = \$1`).
		WithArgs("biz-1").
		WillReturnRows(sqlmock.NewRows([]string{"status", "post_type", "n"}).
			AddRow("draft", "promo", 2).
			AddRow("scheduled", "tip", 3).
			AddRow("published", "promo", 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM business_profiles WHERE id = \$1`).
		WithArgs("biz-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM schedules WHERE business_id = \$1`).
		WithArgs("biz-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	stats, err := store.Analytics.Stats(context.Background(), "biz-1")
	require.NoError(t, err)
	assert.Equal(t, 6, stats.TotalPosts)
	assert.Equal(t, 2, stats.DraftPosts)
	assert.Equal(t, 3, stats.ScheduledPosts)
	assert.Equal(t, 1, stats.PublishedPosts)
	assert.Equal(t, 1, stats.TotalBusinesses)
	assert.Equal(t, 2, stats.TotalSchedules)
	assert.Equal(t, map[string]int{"promo": 3, "tip": 3}, stats.PostTypes)

	out, err := json.Marshal(stats)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"post_types_distribution"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Cleanup(t *testing.T) {
	t.Parallel()
	store, mock := newMockStore(t)
	cutoff := time.Now().AddDate(0, 0, -30)

	mock.ExpectExec(`DELETE FROM posts WHERE status = \$1 AND created_at < \$2`).
		WithArgs("draft", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`DELETE FROM schedules WHERE created_at < \$1`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := store.Cleanup(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.DeletedPosts)
	assert.Equal(t, int64(1), res.DeletedSchedules)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectionRepository_Upsert(t *testing.T) {
	t.Parallel()
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO page_connections .+ ON CONFLICT").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`FROM page_connections WHERE business_id = \$1`).
		WithArgs("biz-9").
		WillReturnError(sql.ErrNoRows)

	c := &domain.PageConnection{BusinessID: "biz-1", PageID: "123456789", PageName: "Test Business Page"}
	require.NoError(t, store.Connections.Upsert(context.Background(), c))
	assert.False(t, c.ConnectedAt.IsZero())

	_, err := store.Connections.Get(context.Background(), "biz-9")
	require.ErrorIs(t, err, database.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
