package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/unlockedcoding/backend/pkg/apperror"
)

// Error writes a standardized error response. Internal errors are logged
// server-side and never leak detail to the client.
func Error(c *gin.Context, err error) {
	var validationErr *apperror.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": validationErr.Fields,
		})
		return
	}

	code := apperror.MapErrorToStatus(err)
	if code == http.StatusInternalServerError {
		zap.L().Error("internal error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(code, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}

// Message writes a `{"message": ...}` body with the given status.
func Message(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"message": msg})
}
