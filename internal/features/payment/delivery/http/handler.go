package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gameportal-backend/internal/common/logger"
	"gameportal-backend/internal/common/middleware"
	"gameportal-backend/internal/features/payment/models"
	"gameportal-backend/internal/features/payment/service"
)

type PaymentHandler struct {
	service service.PaymentService
}

func NewPaymentHandler(service service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// RegisterRoutes expects a group already guarded by SessionAuth.
func (h *PaymentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/payment/purchase", h.Purchase)
}

// @Summary Purchase game access
// @Description Runs the fee payment to settlement: balance pre-check, single chain submission, best-effort ledger record. The response body carries the settled state even when the payment failed.
// @Tags payment
// @Accept json
// @Produce json
// @Security BearerSession
// @Param body body models.PurchaseRequest true "Purchase"
// @Success 200 {object} models.PurchaseResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse "Game not found"
// @Failure 500 {object} models.ErrorResponse
// @Router /payment/purchase [post]
func (h *PaymentHandler) Purchase(c *gin.Context) {
	address := c.GetString(middleware.ContextAddressKey)
	if address == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: bearer session token required"})
		return
	}

	var input models.PurchaseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Purchase(c.Request.Context(), address, &input)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		logger.Error().Err(err).Str("address", address).Msg("Purchase flow failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, models.PurchaseResponse{Result: result})
}
