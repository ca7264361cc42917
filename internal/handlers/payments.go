package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/splitroom/splitroom/internal/payments"
)

// PaymentHandler serves payment-link generation.
type PaymentHandler struct{}

func NewPaymentHandler() *PaymentHandler {
	return &PaymentHandler{}
}

// VenmoLink formats a Venmo deep link for a settled amount.
func (h *PaymentHandler) VenmoLink(c *gin.Context) {
	var req payments.VenmoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := payments.VenmoLink(req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment_url": link})
}
