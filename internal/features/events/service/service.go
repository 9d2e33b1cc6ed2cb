package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"gameportal-backend/internal/common/apperrors"
	"gameportal-backend/internal/common/logger"
	"gameportal-backend/internal/common/validation"
	"gameportal-backend/internal/features/events/models"
	"gameportal-backend/internal/features/events/repository"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidWindow = errors.New("event end must be after start")
)

type EventService interface {
	List(ctx context.Context, status string) ([]*models.Event, error)
	Get(ctx context.Context, eventSlug string) (*models.Event, error)
	Create(ctx context.Context, creatorAddress string, req *models.CreateEventRequest) (*models.Event, error)

	// StartScheduler runs the status promotion job until Stop is called.
	StartScheduler(interval time.Duration) error
	Stop()
}

type eventService struct {
	repo      repository.EventRepository
	scheduler gocron.Scheduler
}

func NewEventService(repo repository.EventRepository) EventService {
	return &eventService{repo: repo}
}

func (s *eventService) List(ctx context.Context, status string) ([]*models.Event, error) {
	switch status {
	case "", models.StatusScheduled, models.StatusLive, models.StatusEnded:
	default:
		return nil, fmt.Errorf("unknown event status %q", status)
	}

	return s.repo.List(ctx, status)
}

func (s *eventService) Get(ctx context.Context, eventSlug string) (*models.Event, error) {
	event, err := s.repo.GetBySlug(ctx, eventSlug)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

func (s *eventService) Create(ctx context.Context, creatorAddress string, req *models.CreateEventRequest) (*models.Event, error) {
	if err := validation.ValidateTitle(req.Title); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeValidation, err.Error())
	}
	if req.EndsAt != nil && !req.EndsAt.After(req.StartsAt) {
		return nil, ErrInvalidWindow
	}

	event := &models.Event{
		ID:             uuid.New().String(),
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		StreamURL:      req.StreamURL,
		CreatorAddress: creatorAddress,
		Status:         models.StatusScheduled,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		CreatedAt:      time.Now(),
	}

	// Slugs collide across creators; suffix with a short id fragment instead
	// of failing the create.
	base := slug.Make(req.Title)
	event.Slug = base
	if err := s.repo.Create(ctx, event); err != nil {
		if !errors.Is(err, repository.ErrSlugTaken) {
			return nil, err
		}
		event.Slug = fmt.Sprintf("%s-%s", base, event.ID[:8])
		if err := s.repo.Create(ctx, event); err != nil {
			return nil, err
		}
	}

	return event, nil
}

func (s *eventService) StartScheduler(interval time.Duration) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create event scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.promoteDue),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule event promotion: %w", err)
	}

	scheduler.Start()
	s.scheduler = scheduler

	logger.Info().Dur("interval", interval).Msg("Event status scheduler started")
	return nil
}

func (s *eventService) Stop() {
	if s.scheduler != nil {
		if err := s.scheduler.Shutdown(); err != nil {
			logger.Warn().Err(err).Msg("Event scheduler shutdown failed")
		}
	}
}

func (s *eventService) promoteDue() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	touched, err := s.repo.PromoteDue(ctx, time.Now())
	if err != nil {
		logger.Error().Err(err).Msg("Event status promotion failed")
		return
	}
	if touched > 0 {
		logger.Info().Int64("events", touched).Msg("Event statuses promoted")
	}
}
