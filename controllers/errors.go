package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/surajjj07/Ecommerce-website/services"
)

// respondServiceError maps a service failure onto the wire: business
// rules and validation 400, missing orders 404, missing gateway config
// 500 with its explicit message, anything else a generic 500 so store
// driver errors never leak to clients.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, services.ErrPaymentNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
	case services.IsBusinessError(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Something went wrong"})
	}
}

func currentUserID(c *gin.Context) (string, bool) {
	userId, exists := c.Get("userId")
	if !exists {
		return "", false
	}
	id, ok := userId.(string)
	return id, ok
}
