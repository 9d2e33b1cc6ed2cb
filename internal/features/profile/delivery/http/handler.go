package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gameportal-backend/internal/common/logger"
	"gameportal-backend/internal/common/validation"
	"gameportal-backend/internal/features/profile/models"
	"gameportal-backend/internal/features/profile/service"
)

type ProfileHandler struct {
	service service.ProfileService
}

func NewProfileHandler(service service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/profile", h.GetProfile)
	router.PATCH("/profile", h.UpdateProfile)
}

// @Summary Get or create profile
// @Description Returns the profile for a wallet address, creating it on first sight.
// @Tags profile
// @Produce json
// @Param address query string true "Wallet address"
// @Success 200 {object} models.UserResponse
// @Failure 400 {object} models.ErrorResponse "Missing or invalid address"
// @Failure 500 {object} models.ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	address := c.Query("address")
	if err := validation.ValidateAddress(address); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.GetOrCreateByAddress(c.Request.Context(), address)
	if err != nil {
		logger.Error().Err(err).Str("address", address).Msg("Failed to get or create profile")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, models.UserResponse{User: user})
}

// @Summary Update profile name
// @Description Updates the display name of an existing profile.
// @Tags profile
// @Accept json
// @Produce json
// @Param address query string true "Wallet address"
// @Param body body models.UpdateProfileRequest true "New name"
// @Success 200 {object} models.UserResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Failure 500 {object} models.ErrorResponse
// @Router /profile [patch]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	address := c.Query("address")
	if err := validation.ValidateAddress(address); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validation.ValidateName(input.Name); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.UpdateName(c.Request.Context(), address, input.Name)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error().Err(err).Str("address", address).Msg("Failed to update profile")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, models.UserResponse{User: user})
}
