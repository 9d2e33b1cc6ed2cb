package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gameportal-backend/internal/common/apperrors"
	"gameportal-backend/internal/common/logger"
	"gameportal-backend/internal/common/validation"
	"gameportal-backend/internal/features/games/models"
	"gameportal-backend/internal/features/games/service"
)

type GameHandler struct {
	service service.GameService
}

func NewGameHandler(service service.GameService) *GameHandler {
	return &GameHandler{service: service}
}

func (h *GameHandler) RegisterRoutes(router *gin.RouterGroup) {
	games := router.Group("/games")
	{
		games.GET("", h.ListGames)
		games.GET("/:slug", h.GetGame)
	}

	profile := router.Group("/profile/games")
	{
		profile.GET("", h.GetStats)
		profile.POST("/play", h.RecordPlay)
		profile.POST("/score", h.RecordScore)
	}
}

// RegisterAdminRoutes mounts catalog seeding under an admin-guarded group.
func (h *GameHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.POST("/games", h.CreateGame)
}

// @Summary List games
// @Tags games
// @Produce json
// @Success 200 {object} models.GameListResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /games [get]
func (h *GameHandler) ListGames(c *gin.Context) {
	games, err := h.service.ListGames(c.Request.Context())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list games")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if games == nil {
		games = []*models.Game{}
	}
	c.JSON(http.StatusOK, models.GameListResponse{Games: games})
}

// @Summary Get game by slug
// @Tags games
// @Produce json
// @Param slug path string true "Game slug"
// @Success 200 {object} models.GameResponse
// @Failure 404 {object} models.ErrorResponse "Game not found"
// @Failure 500 {object} models.ErrorResponse
// @Router /games/{slug} [get]
func (h *GameHandler) GetGame(c *gin.Context) {
	game, err := h.service.GetGame(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		logger.Error().Err(err).Str("slug", c.Param("slug")).Msg("Failed to get game")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, models.GameResponse{Game: game})
}

// @Summary Seed a game
// @Description Admin-only catalog seeding. Slug is derived from the name when omitted.
// @Tags games
// @Accept json
// @Produce json
// @Security BearerSession
// @Param body body models.CreateGameRequest true "Game"
// @Success 201 {object} models.GameResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Slug already exists"
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/games [post]
func (h *GameHandler) CreateGame(c *gin.Context) {
	var input models.CreateGameRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.service.CreateGame(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, service.ErrSlugTaken) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Game slug already exists"})
			return
		}
		if appErr, ok := apperrors.As(err); ok {
			c.AbortWithStatusJSON(apperrors.HTTPStatus(appErr.Code), gin.H{"error": appErr.Message})
			return
		}
		logger.Error().Err(err).Msg("Failed to create game")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, models.GameResponse{Game: game})
}

// @Summary Per-game stats for a user
// @Description Aggregates plays and scores per game: play count, last played, high score, up to 5 recent scores.
// @Tags games
// @Produce json
// @Param address query string true "Wallet address"
// @Success 200 {object} models.GameStatsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Failure 500 {object} models.ErrorResponse
// @Router /profile/games [get]
func (h *GameHandler) GetStats(c *gin.Context) {
	address := c.Query("address")
	if err := validation.ValidateAddress(address); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stats, err := h.service.GetStats(c.Request.Context(), address)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error().Err(err).Str("address", address).Msg("Failed to aggregate game stats")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if stats == nil {
		stats = []*models.GameStats{}
	}
	c.JSON(http.StatusOK, models.GameStatsResponse{GameStats: stats})
}

// @Summary Record a play session
// @Tags games
// @Accept json
// @Produce json
// @Param address query string true "Wallet address"
// @Param body body models.RecordPlayRequest true "Play"
// @Success 201 {object} models.GamePlayResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse "User or game not found"
// @Failure 500 {object} models.ErrorResponse
// @Router /profile/games/play [post]
func (h *GameHandler) RecordPlay(c *gin.Context) {
	address := c.Query("address")
	if err := validation.ValidateAddress(address); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input models.RecordPlayRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	play, err := h.service.RecordPlay(c.Request.Context(), address, &input)
	if err != nil {
		h.recordingError(c, err, address)
		return
	}

	c.JSON(http.StatusCreated, models.GamePlayResponse{GamePlay: play})
}

// @Summary Record a score
// @Tags games
// @Accept json
// @Produce json
// @Param address query string true "Wallet address"
// @Param body body models.RecordScoreRequest true "Score"
// @Success 201 {object} models.GameScoreResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse "User or game not found"
// @Failure 500 {object} models.ErrorResponse
// @Router /profile/games/score [post]
func (h *GameHandler) RecordScore(c *gin.Context) {
	address := c.Query("address")
	if err := validation.ValidateAddress(address); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input models.RecordScoreRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	score, err := h.service.RecordScore(c.Request.Context(), address, &input)
	if err != nil {
		h.recordingError(c, err, address)
		return
	}

	c.JSON(http.StatusCreated, models.GameScoreResponse{GameScore: score})
}

// recordingError keeps the two 404 cases distinguishable by message.
func (h *GameHandler) recordingError(c *gin.Context, err error, address string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, service.ErrGameNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Game not found"})
	default:
		logger.Error().Err(err).Str("address", address).Msg("Failed to record game activity")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
