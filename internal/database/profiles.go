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

// ProfileRepository stores business profiles.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a profile repository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts p, assigning an ID and creation time when unset.
func (r *ProfileRepository) Create(ctx context.Context, p *domain.BusinessProfile) error {
	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.ExtractedAt.IsZero() {
		p.ExtractedAt = now
	}

	row, err := newProfileRow(p, now)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}

	query := `INSERT INTO business_profiles (` + profileColumns + `)
		VALUES (:id, :business_name, :website_url, :industry, :description, :services, :tone_of_voice,
			:contact_info, :social_proof, :extraction_error, :extracted_at, :created_at, :updated_at)`

	if _, err = r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// GetByID returns the profile or ErrNotFound.
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.BusinessProfile, error) {
	var row profileRow
	query := r.db.Rebind(`SELECT ` + profileColumns + ` FROM business_profiles WHERE id = ?`)

	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return row.toDomain()
}

// Update rewrites every mutable column of p.
func (r *ProfileRepository) Update(ctx context.Context, p *domain.BusinessProfile) error {
	row, err := newProfileRow(p, time.Now())
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	query := `UPDATE business_profiles SET
			business_name = :business_name, website_url = :website_url, industry = :industry,
			description = :description, services = :services, tone_of_voice = :tone_of_voice,
			contact_info = :contact_info, social_proof = :social_proof,
			extraction_error = :extraction_error, extracted_at = :extracted_at, updated_at = :updated_at
		WHERE id = :id`

	res, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return expectOne(res)
}

// List returns every profile, newest first.
func (r *ProfileRepository) List(ctx context.Context) ([]*domain.BusinessProfile, error) {
	var rows []profileRow
	query := `SELECT ` + profileColumns + ` FROM business_profiles ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	profiles := make([]*domain.BusinessProfile, 0, len(rows))
	for i := range rows {
		p, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// Delete removes the profile with its posts, schedules and page connection.
func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, q := range []string{
			`DELETE FROM posts WHERE business_id = ?`,
			`DELETE FROM schedules WHERE business_id = ?`,
			`DELETE FROM page_connections WHERE business_id = ?`,
		} {
			if _, err := tx.ExecContext(ctx, tx.Rebind(q), id); err != nil {
				return fmt.Errorf("delete profile data: %w", err)
			}
		}

		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM business_profiles WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		return expectOne(res)
	})
}

// expectOne maps zero affected rows to ErrNotFound.
func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// withTx runs fn in a transaction, committing when it returns nil.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
