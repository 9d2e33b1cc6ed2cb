package repository

import (
	"context"
	"errors"
	"time"

	"gameportal-backend/internal/features/events/models"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrSlugTaken     = errors.New("event slug already exists")
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetBySlug(ctx context.Context, slug string) (*models.Event, error)
	// List returns events newest first; status filters when non-empty.
	List(ctx context.Context, status string) ([]*models.Event, error)

	// PromoteDue moves scheduled events past their start to live and live
	// events past their end to ended. Returns the number of rows touched.
	PromoteDue(ctx context.Context, now time.Time) (int64, error)
}
