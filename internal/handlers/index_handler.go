package handlers

import (
	"net/http"

	"academy-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type IndexHandler struct {
	logger *zap.Logger
}

func NewIndexHandler(logger *zap.Logger) *IndexHandler {
	return &IndexHandler{logger: logger}
}

// Index forgets everything the visitor did so far.
func (h *IndexHandler) Index(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if err := sess.Clear(c.Request.Context()); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Jedi academy",
		"links": gin.H{
			"register": "/new_candidate/",
			"mentor":   "/jedi/",
			"report":   "/jedi/all/",
		},
	})
}
