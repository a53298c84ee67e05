package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
)

// ScheduleRepository stores weekly schedules.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Create stores s together with the scheduled posts it holds, in one
// transaction. ID and creation time are assigned when unset.
func (r *ScheduleRepository) Create(ctx context.Context, s *domain.WeeklySchedule) error {
	now := time.Now().UTC()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}

	days, err := s.MarshalDays()
	if err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}
	row := scheduleRow{
		ID:         s.ID,
		BusinessID: s.BusinessID,
		StartDate:  s.StartDate,
		Days:       string(days),
		CreatedAt:  s.CreatedAt.UTC(),
	}

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, p := range s.Posts() {
			if p.ID == "" {
				continue
			}
			p.UpdatedAt = now
			pr, rowErr := newPostRow(p)
			if rowErr != nil {
				return fmt.Errorf("schedule post %s: %w", p.ID, rowErr)
			}
			res, execErr := tx.NamedExecContext(ctx, updatePost, pr)
			if execErr != nil {
				return fmt.Errorf("schedule post %s: %w", p.ID, execErr)
			}
			if notFound := expectOne(res); notFound != nil {
				return fmt.Errorf("schedule post %s: %w", p.ID, notFound)
			}
		}

		query := `INSERT INTO schedules (` + scheduleColumns + `)
			VALUES (:id, :business_id, :start_date, :days, :created_at)`
		if _, execErr := tx.NamedExecContext(ctx, query, row); execErr != nil {
			return fmt.Errorf("create schedule: %w", execErr)
		}
		return nil
	})
}

// GetByID returns the schedule or ErrNotFound.
func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (*domain.WeeklySchedule, error) {
	var row scheduleRow
	query := r.db.Rebind(`SELECT ` + scheduleColumns + ` FROM schedules WHERE id = ?`)

	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	return row.toDomain()
}

// ListByBusiness returns a business's schedules, newest first.
func (r *ScheduleRepository) ListByBusiness(ctx context.Context, businessID string) ([]*domain.WeeklySchedule, error) {
	var rows []scheduleRow
	query := r.db.Rebind(`SELECT ` + scheduleColumns + ` FROM schedules WHERE business_id = ? ORDER BY created_at DESC`)

	if err := r.db.SelectContext(ctx, &rows, query, businessID); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}

	out := make([]*domain.WeeklySchedule, 0, len(rows))
	for i := range rows {
		s, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Delete removes a schedule. Its posts are kept.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM schedules WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return expectOne(res)
}

// DeleteOlderThan removes schedules created before cutoff.
func (r *ScheduleRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM schedules WHERE created_at < ?`), cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete old schedules: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
