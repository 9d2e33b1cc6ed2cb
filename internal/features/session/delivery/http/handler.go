package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gameportal-backend/internal/common/logger"
	"gameportal-backend/internal/common/validation"
	"gameportal-backend/internal/features/session/models"
	"gameportal-backend/internal/features/session/service"
)

type SessionHandler struct {
	service service.SessionService
}

func NewSessionHandler(service service.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.GET("/session", h.GetSession)
		auth.POST("/logout", h.Logout)
	}
}

// @Summary Login
// @Description Issues a bearer session for a wallet address with an existing profile. Attempts are rate limited per address.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Address"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Failure 429 {object} models.ErrorResponse "Too many attempts"
// @Failure 500 {object} models.ErrorResponse
// @Router /auth/login [post]
func (h *SessionHandler) Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validation.ValidateAddress(input.Address); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.service.Login(c.Request.Context(), input.Address)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, service.ErrTooManyAttempts):
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts, try again later"})
		default:
			logger.Error().Err(err).Str("address", input.Address).Msg("Login failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Token:     session.ID,
		Address:   session.Address,
		ExpiresAt: session.ExpiresAt,
	})
}

// @Summary Validate session
// @Tags auth
// @Produce json
// @Security BearerSession
// @Success 200 {object} models.SessionResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/session [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: bearer session token required"})
		return
	}

	session, err := h.service.Validate(c.Request.Context(), token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: session expired or unknown"})
		return
	}

	c.JSON(http.StatusOK, models.SessionResponse{
		Address:   session.Address,
		ExpiresAt: session.ExpiresAt,
	})
}

// @Summary Logout
// @Tags auth
// @Produce json
// @Security BearerSession
// @Success 204 "Session invalidated"
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/logout [post]
func (h *SessionHandler) Logout(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: bearer session token required"})
		return
	}

	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		logger.Error().Err(err).Msg("Logout failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}

func bearerToken(c *gin.Context) (string, bool) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	return token, ok && token != ""
}
