package handlers

import (
	"errors"
	"net/http"

	"academy-service/internal/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError writes err with the status of its apperror kind. Unknown
// errors are logged and hidden behind a generic message.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := apperror.Status(err)
	_ = c.Error(err)

	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.AbortWithStatusJSON(status, gin.H{"error": "internal server error"})
		return
	}

	body := gin.H{"error": err.Error()}
	var ve *apperror.ValidationError
	if errors.As(err, &ve) && len(ve.Fields) > 0 {
		body["fields"] = ve.Fields
	}
	c.AbortWithStatusJSON(status, body)
}

func notFound(resource string) error {
	return &apperror.NotFoundError{Resource: resource}
}

// bindError reports a request body that could not be decoded.
func bindError(field string, err error) error {
	return &apperror.ValidationError{
		Message: "malformed request body",
		Fields:  map[string]string{field: err.Error()},
	}
}
