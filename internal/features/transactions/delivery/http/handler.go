package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gameportal-backend/internal/common/logger"
	"gameportal-backend/internal/common/validation"
	"gameportal-backend/internal/features/transactions/models"
	"gameportal-backend/internal/features/transactions/service"
)

type TransactionHandler struct {
	service service.TransactionService
}

func NewTransactionHandler(service service.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

func (h *TransactionHandler) RegisterRoutes(router *gin.RouterGroup) {
	txs := router.Group("/profile/transactions")
	{
		txs.GET("", h.ListTransactions)
		txs.POST("", h.CreateTransaction)
	}
}

// @Summary List transactions
// @Description Per-user ledger entries, newest first. No pagination.
// @Tags transactions
// @Produce json
// @Param address query string true "Wallet address"
// @Success 200 {object} models.TransactionListResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Failure 500 {object} models.ErrorResponse
// @Router /profile/transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	address := c.Query("address")
	if err := validation.ValidateAddress(address); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txs, err := h.service.List(c.Request.Context(), address)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error().Err(err).Str("address", address).Msg("Failed to list transactions")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if txs == nil {
		txs = []*models.Transaction{}
	}
	c.JSON(http.StatusOK, models.TransactionListResponse{Transactions: txs})
}

// @Summary Create transaction record
// @Tags transactions
// @Accept json
// @Produce json
// @Param address query string true "Wallet address"
// @Param body body models.CreateTransactionRequest true "Transaction"
// @Success 201 {object} models.TransactionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Failure 500 {object} models.ErrorResponse
// @Router /profile/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	address := c.Query("address")
	if err := validation.ValidateAddress(address); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.service.Create(c.Request.Context(), address, &input)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error().Err(err).Str("address", address).Msg("Failed to create transaction")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, models.TransactionResponse{Transaction: tx})
}
