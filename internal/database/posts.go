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

// PostRepository stores generated posts.
type PostRepository struct {
	db *sqlx.DB
}

// NewPostRepository creates a post repository.
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

const insertPost = `INSERT INTO posts (` + postColumns + `)
	VALUES (:id, :business_id, :content, :hashtags, :post_type, :tone, :industry, :call_to_action,
		:news_source, :engagement, :best_time_to_post, :status, :scheduled_date, :external_post_id,
		:external_url, :created_at, :updated_at, :published_at)`

const updatePost = `UPDATE posts SET
		content = :content, hashtags = :hashtags, call_to_action = :call_to_action,
		status = :status, scheduled_date = :scheduled_date, external_post_id = :external_post_id,
		external_url = :external_url, updated_at = :updated_at, published_at = :published_at
	WHERE id = :id`

func preparePost(p *domain.Post, now time.Time) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = domain.StatusDraft
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// Create inserts p, assigning an ID and timestamps when unset.
func (r *PostRepository) Create(ctx context.Context, p *domain.Post) error {
	preparePost(p, time.Now().UTC())
	row, err := newPostRow(p)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	if _, err = r.db.NamedExecContext(ctx, insertPost, row); err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// CreateMany inserts posts in one transaction.
func (r *PostRepository) CreateMany(ctx context.Context, posts []*domain.Post) error {
	now := time.Now().UTC()
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, p := range posts {
			preparePost(p, now)
			row, err := newPostRow(p)
			if err != nil {
				return fmt.Errorf("create post: %w", err)
			}
			if _, err = tx.NamedExecContext(ctx, insertPost, row); err != nil {
				return fmt.Errorf("create post: %w", err)
			}
		}
		return nil
	})
}

// GetByID returns the post or ErrNotFound.
func (r *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	var row postRow
	query := r.db.Rebind(`SELECT ` + postColumns + ` FROM posts WHERE id = ?`)

	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return row.toDomain()
}

// Update persists the editable and lifecycle fields of p.
func (r *PostRepository) Update(ctx context.Context, p *domain.Post) error {
	p.UpdatedAt = time.Now().UTC()
	row, err := newPostRow(p)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	res, err := r.db.NamedExecContext(ctx, updatePost, row)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return expectOne(res)
}

// Delete removes a post.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM posts WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return expectOne(res)
}

// ListByBusiness returns a business's posts, oldest first.
func (r *PostRepository) ListByBusiness(ctx context.Context, businessID string) ([]*domain.Post, error) {
	return r.list(ctx, `WHERE business_id = ? ORDER BY created_at ASC, id ASC`, businessID)
}

// ListByStatus returns posts in status, optionally limited to one business.
func (r *PostRepository) ListByStatus(ctx context.Context, status domain.PostStatus, businessID string) ([]*domain.Post, error) {
	if businessID == "" {
		return r.list(ctx, `WHERE status = ? ORDER BY created_at ASC, id ASC`, string(status))
	}
	return r.list(ctx, `WHERE status = ? AND business_id = ? ORDER BY created_at ASC, id ASC`, string(status), businessID)
}

// ListScheduledForDate returns scheduled posts due on date (YYYY-MM-DD).
func (r *PostRepository) ListScheduledForDate(ctx context.Context, date, businessID string) ([]*domain.Post, error) {
	if businessID == "" {
		return r.list(ctx, `WHERE status = ? AND scheduled_date = ? ORDER BY id ASC`,
			string(domain.StatusScheduled), date)
	}
	return r.list(ctx, `WHERE status = ? AND scheduled_date = ? AND business_id = ? ORDER BY id ASC`,
		string(domain.StatusScheduled), date, businessID)
}

// DeleteDraftsOlderThan removes drafts created before cutoff.
func (r *PostRepository) DeleteDraftsOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := r.db.Rebind(`DELETE FROM posts WHERE status = ? AND created_at < ?`)
	res, err := r.db.ExecContext(ctx, query, string(domain.StatusDraft), cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete old drafts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func (r *PostRepository) list(ctx context.Context, where string, args ...any) ([]*domain.Post, error) {
	var rows []postRow
	query := r.db.Rebind(`SELECT ` + postColumns + ` FROM posts ` + where)

	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return postsFromRows(rows)
}
