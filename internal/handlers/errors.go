// Package handlers exposes the services as a JSON API.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/splitroom/splitroom/internal/auth"
	"github.com/splitroom/splitroom/internal/payments"
	"github.com/splitroom/splitroom/internal/service"
	"github.com/splitroom/splitroom/internal/storage"
)

// writeError maps service and storage errors to HTTP status codes.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, storage.ErrDuplicateMember):
		c.JSON(http.StatusConflict, gin.H{"error": "already a member"})
	case errors.Is(err, auth.ErrWrongPassword),
		errors.Is(err, auth.ErrOTPIncorrect):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, service.ErrNegativeAmount),
		errors.Is(err, payments.ErrNoRecipient),
		errors.Is(err, payments.ErrBadPaymentType),
		errors.Is(err, payments.ErrBadAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
