package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gameportal-backend/internal/common/apperrors"
	"gameportal-backend/internal/common/logger"
	"gameportal-backend/internal/common/middleware"
	"gameportal-backend/internal/features/events/models"
	"gameportal-backend/internal/features/events/service"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(router *gin.RouterGroup) {
	events := router.Group("/events")
	{
		events.GET("", h.ListEvents)
		events.GET("/:slug", h.GetEvent)
	}
}

// RegisterAuthRoutes expects a group guarded by SessionAuth.
func (h *EventHandler) RegisterAuthRoutes(router *gin.RouterGroup) {
	router.POST("/events", h.CreateEvent)
}

// @Summary List events
// @Tags events
// @Produce json
// @Param status query string false "Filter: scheduled, live or ended"
// @Success 200 {object} models.EventListResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if events == nil {
		events = []*models.Event{}
	}
	c.JSON(http.StatusOK, models.EventListResponse{Events: events})
}

// @Summary Get event by slug
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} models.EventResponse
// @Failure 404 {object} models.ErrorResponse "Event not found"
// @Failure 500 {object} models.ErrorResponse
// @Router /events/{slug} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.service.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		logger.Error().Err(err).Str("slug", c.Param("slug")).Msg("Failed to get event")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, models.EventResponse{Event: event})
}

// @Summary Create event
// @Description Creates a scheduled livestream event owned by the authenticated wallet.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerSession
// @Param body body models.CreateEventRequest true "Event"
// @Success 201 {object} models.EventResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	address := c.GetString(middleware.ContextAddressKey)
	if address == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: bearer session token required"})
		return
	}

	var input models.CreateEventRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.service.Create(c.Request.Context(), address, &input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidWindow) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if appErr, ok := apperrors.As(err); ok {
			c.AbortWithStatusJSON(apperrors.HTTPStatus(appErr.Code), gin.H{"error": appErr.Message})
			return
		}
		logger.Error().Err(err).Str("address", address).Msg("Failed to create event")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, models.EventResponse{Event: event})
}
