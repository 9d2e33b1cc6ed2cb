package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"gameportal-backend/internal/common/middleware"
	"gameportal-backend/internal/features/events/models"
	"gameportal-backend/internal/features/events/repository"
	"gameportal-backend/internal/features/events/service"
)

type fakeEventRepo struct {
	bySlug map[string]*models.Event
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

func (r *fakeEventRepo) PromoteDue(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func setupEventRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewEventService(&fakeEventRepo{bySlug: make(map[string]*models.Event)})
	handler := NewEventHandler(svc)

	router := gin.New()
	api := router.Group("/api")
	handler.RegisterRoutes(api)

	authed := api.Group("", func(c *gin.Context) {
		c.Set(middleware.ContextAddressKey, "EQcreator")
	})
	handler.RegisterAuthRoutes(authed)

	return router
}

func postEvent(router *gin.Engine, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateEvent_Created(t *testing.T) {
	router := setupEventRouter()

	rec := postEvent(router, `{"title":"Friday Night Speedrun","streamUrl":"https://stream.example/live","startsAt":"2026-09-01T20:00:00Z"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "friday-night-speedrun")
}

func TestCreateEvent_OverlongTitleIsBadRequest(t *testing.T) {
	router := setupEventRouter()

	longTitle := strings.Repeat("a", 300)
	rec := postEvent(router, `{"title":"`+longTitle+`","streamUrl":"https://stream.example/live","startsAt":"2026-09-01T20:00:00Z"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "title cannot exceed")
}

func TestCreateEvent_BlankTitleIsBadRequest(t *testing.T) {
	router := setupEventRouter()

	rec := postEvent(router, `{"title":"   ","streamUrl":"https://stream.example/live","startsAt":"2026-09-01T20:00:00Z"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEvent_InvalidWindowIsBadRequest(t *testing.T) {
	router := setupEventRouter()

	rec := postEvent(router, `{"title":"Backwards","streamUrl":"https://stream.example/live","startsAt":"2026-09-01T20:00:00Z","endsAt":"2026-09-01T19:00:00Z"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "end must be after start")
}

func TestGetEvent_NotFound(t *testing.T) {
	router := setupEventRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events/missing", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event not found")
}
