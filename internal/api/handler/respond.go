package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"obnavi/backend/internal/apperr"
	"obnavi/backend/internal/logger"
)

// Every JSON response is a typed envelope: {data} on success, {error, code}
// on failure. Clients never have to sniff the shape.

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"data": data})
}

func respondError(c *gin.Context, status int, message, code string) {
	body := gin.H{"error": message}
	if code != "" {
		body["code"] = code
	}
	c.AbortWithStatusJSON(status, body)
}

// respondServiceError maps a service failure onto the envelope. Typed
// apperr failures surface verbatim; anything else is logged with detail and
// returned as a generic 500.
func respondServiceError(c *gin.Context, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		respondError(c, ae.Status, ae.Message, ae.Code)
		return
	}
	logger.Log.Errorf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	respondError(c, http.StatusInternalServerError, "internal server error", "")
}
