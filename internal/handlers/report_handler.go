package handlers

import (
	"net/http"

	"academy-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReportHandler struct {
	Service *service.ReportService
	logger  *zap.Logger
}

func NewReportHandler(s *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{Service: s, logger: logger}
}

// AllJedi lists every Jedi with its padawan count.
func (h *ReportHandler) AllJedi(c *gin.Context) {
	page, err := h.Service.AllJedi(c.Request.Context(), c.Query("page"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// MoreThanOne lists Jedi who train two or more padawans.
func (h *ReportHandler) MoreThanOne(c *gin.Context) {
	page, err := h.Service.JediWithMoreThanOnePadawan(c.Request.Context(), c.Query("page"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
