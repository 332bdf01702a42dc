package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"creator-platform/internal/services"
)

// PaymentHandler handles payment confirmation endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// ConfirmPayment verifies an incoming transaction and pays the creator share
// POST /api/payment/confirm
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var req struct {
		CreatorID string          `json:"creatorId" binding:"required"`
		TxID      string          `json:"txId" binding:"required"`
		Amount    decimal.Decimal `json:"amount" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "creatorId, txId and amount are required"})
		return
	}

	if !req.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}

	result, err := h.paymentService.Confirm(c.Request.Context(), req.CreatorID, req.TxID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCreatorNotFound), errors.Is(err, services.ErrConditionsNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNoWallet),
			errors.Is(err, services.ErrTxInvalid),
			errors.Is(err, services.ErrAmountMismatch),
			errors.Is(err, services.ErrTxAlreadyProcessed):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrDisbursement):
			log.Printf("Disbursement failed for %s: %v", req.CreatorID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": services.ErrDisbursement.Error()})
		default:
			log.Printf("Payment confirmation failed for %s: %v", req.CreatorID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payment confirmation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "payment confirmed, funds sent to creator",
		"creatorShare":  result.CreatorShare,
		"transactionId": result.TransactionID,
	})
}
