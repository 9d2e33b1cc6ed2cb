package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"gameportal-backend/internal/features/events/models"
	"gameportal-backend/internal/features/events/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.EventRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (id, slug, title, description, stream_url, creator_address, status, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.Slug, event.Title, event.Description, event.StreamURL,
		event.CreatorAddress, event.Status, event.StartsAt, event.EndsAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return repository.ErrSlugTaken
		}
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	query := `
		SELECT id, slug, title, description, stream_url, creator_address, status, starts_at, ends_at, created_at
		FROM events
		WHERE slug = $1
	`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

func (r *postgresRepository) List(ctx context.Context, status string) ([]*models.Event, error) {
	query := `
		SELECT id, slug, title, description, stream_url, creator_address, status, starts_at, ends_at, created_at
		FROM events
	`
	args := []interface{}{}

	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY starts_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func (r *postgresRepository) PromoteDue(ctx context.Context, now time.Time) (int64, error) {
	var touched int64

	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET status = $1 WHERE status = $2 AND starts_at <= $3`,
		models.StatusLive, models.StatusScheduled, now)
	if err != nil {
		return 0, fmt.Errorf("failed to promote scheduled events: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		touched += n
	}

	res, err = r.db.ExecContext(ctx,
		`UPDATE events SET status = $1 WHERE status = $2 AND ends_at IS NOT NULL AND ends_at <= $3`,
		models.StatusEnded, models.StatusLive, now)
	if err != nil {
		return touched, fmt.Errorf("failed to end live events: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		touched += n
	}

	return touched, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var event models.Event
	var endsAt sql.NullTime

	err := row.Scan(&event.ID, &event.Slug, &event.Title, &event.Description,
		&event.StreamURL, &event.CreatorAddress, &event.Status,
		&event.StartsAt, &endsAt, &event.CreatedAt)
	if err != nil {
		return nil, err
	}

	if endsAt.Valid {
		event.EndsAt = &endsAt.Time
	}

	return &event, nil
}
