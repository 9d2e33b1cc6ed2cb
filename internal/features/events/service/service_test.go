package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameportal-backend/internal/common/apperrors"
	"gameportal-backend/internal/features/events/models"
	"gameportal-backend/internal/features/events/repository"
)

type fakeEventRepo struct {
	bySlug map[string]*models.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{bySlug: make(map[string]*models.Event)}
}

func (r *fakeEventRepo) Create(_ context.Context, event *models.Event) error {
	if _, ok := r.bySlug[event.Slug]; ok {
		return repository.ErrSlugTaken
	}
	r.bySlug[event.Slug] = event
	return nil
}

func (r *fakeEventRepo) GetBySlug(_ context.Context, slug string) (*models.Event, error) {
	e, ok := r.bySlug[slug]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	return e, nil
}

func (r *fakeEventRepo) List(_ context.Context, status string) ([]*models.Event, error) {
	var out []*models.Event
	for _, e := range r.bySlug {
		if status == "" || e.Status == status {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) PromoteDue(_ context.Context, now time.Time) (int64, error) {
	var touched int64
	for _, e := range r.bySlug {
		switch {
		case e.Status == models.StatusScheduled && !e.StartsAt.After(now):
			e.Status = models.StatusLive
			touched++
		case e.Status == models.StatusLive && e.EndsAt != nil && !e.EndsAt.After(now):
			e.Status = models.StatusEnded
			touched++
		}
	}
	return touched, nil
}

func createReq(title string) *models.CreateEventRequest {
	return &models.CreateEventRequest{
		Title:     title,
		StreamURL: "https://stream.example/live",
		StartsAt:  time.Now().Add(time.Hour),
	}
}

func TestCreateEvent(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())

	event, err := svc.Create(context.Background(), "EQcreator", createReq("Friday Night Speedrun"))
	require.NoError(t, err)

	assert.Equal(t, "friday-night-speedrun", event.Slug)
	assert.Equal(t, "EQcreator", event.CreatorAddress)
	assert.Equal(t, models.StatusScheduled, event.Status)
	assert.NotEmpty(t, event.ID)
}

func TestCreateEvent_SlugCollisionGetsSuffix(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())
	ctx := context.Background()

	first, err := svc.Create(ctx, "EQcreator", createReq("Friday Night Speedrun"))
	require.NoError(t, err)

	second, err := svc.Create(ctx, "EQother", createReq("Friday Night Speedrun"))
	require.NoError(t, err)

	assert.Equal(t, "friday-night-speedrun", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "friday-night-speedrun-")
}

func TestCreateEvent_InvalidWindow(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())

	req := createReq("Backwards")
	ends := req.StartsAt.Add(-time.Minute)
	req.EndsAt = &ends

	_, err := svc.Create(context.Background(), "EQcreator", req)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestCreateEvent_EmptyTitle(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())

	_, err := svc.Create(context.Background(), "EQcreator", createReq("   "))
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestCreateEvent_OverlongTitle(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())

	_, err := svc.Create(context.Background(), "EQcreator", createReq(strings.Repeat("a", 300)))
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Message, "title cannot exceed")
}

func TestListEvents_RejectsUnknownStatus(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())

	_, err := svc.List(context.Background(), "archived")
	assert.Error(t, err)

	_, err = svc.List(context.Background(), models.StatusLive)
	assert.NoError(t, err)
}

func TestGetEvent_NotFound(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestPromoteDue(t *testing.T) {
	repo := newFakeEventRepo()
	now := time.Now()
	past := now.Add(-time.Hour)
	ended := now.Add(-time.Minute)

	repo.bySlug["due"] = &models.Event{Slug: "due", Status: models.StatusScheduled, StartsAt: past}
	repo.bySlug["over"] = &models.Event{Slug: "over", Status: models.StatusLive, StartsAt: past, EndsAt: &ended}
	repo.bySlug["future"] = &models.Event{Slug: "future", Status: models.StatusScheduled, StartsAt: now.Add(time.Hour)}

	touched, err := repo.PromoteDue(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, int64(2), touched)
	assert.Equal(t, models.StatusLive, repo.bySlug["due"].Status)
	assert.Equal(t, models.StatusEnded, repo.bySlug["over"].Status)
	assert.Equal(t, models.StatusScheduled, repo.bySlug["future"].Status)
}
