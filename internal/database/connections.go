package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
)

// ConnectionRepository stores one Facebook page connection per business.
type ConnectionRepository struct {
	db *sqlx.DB
}

// NewConnectionRepository creates a page connection repository.
func NewConnectionRepository(db *sqlx.DB) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

// Upsert stores c, replacing any existing connection for the business.
func (r *ConnectionRepository) Upsert(ctx context.Context, c *domain.PageConnection) error {
	now := time.Now().UTC()
	if c.ConnectedAt.IsZero() {
		c.ConnectedAt = now
	}
	c.UpdatedAt = now

	query := `INSERT INTO page_connections
			(business_id, page_id, page_name, access_token, permissions, connected_at, updated_at)
		VALUES (:business_id, :page_id, :page_name, :access_token, :permissions, :connected_at, :updated_at)
		ON CONFLICT (business_id) DO UPDATE SET
			page_id = excluded.page_id, page_name = excluded.page_name,
			access_token = excluded.access_token, permissions = excluded.permissions,
			connected_at = excluded.connected_at, updated_at = excluded.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		return fmt.Errorf("upsert page connection: %w", err)
	}
	return nil
}

// Get returns the connection for businessID or ErrNotFound.
func (r *ConnectionRepository) Get(ctx context.Context, businessID string) (*domain.PageConnection, error) {
	var c domain.PageConnection
	query := r.db.Rebind(`SELECT business_id, page_id, page_name, access_token, permissions, connected_at, updated_at
		FROM page_connections WHERE business_id = ?`)

	if err := r.db.GetContext(ctx, &c, query, businessID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get page connection: %w", err)
	}
	return &c, nil
}

// Delete removes the connection for businessID.
func (r *ConnectionRepository) Delete(ctx context.Context, businessID string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM page_connections WHERE business_id = ?`), businessID)
	if err != nil {
		return fmt.Errorf("delete page connection: %w", err)
	}
	return expectOne(res)
}
