package handlers

import (
	"net/http"

	"academy-service/internal/apperror"
	"academy-service/internal/middleware"
	"academy-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CandidateHandler struct {
	Service *service.RegistrationService
	logger  *zap.Logger
}

func NewCandidateHandler(s *service.RegistrationService, logger *zap.Logger) *CandidateHandler {
	return &CandidateHandler{Service: s, logger: logger}
}

// Form describes the registration form.
func (h *CandidateHandler) Form(c *gin.Context) {
	form, err := h.Service.Form(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *CandidateHandler) Register(c *gin.Context) {
	var in service.RegistrationInput
	if err := c.ShouldBind(&in); err != nil {
		respondError(c, h.logger, &apperror.ValidationError{Message: "invalid registration form: " + err.Error()})
		return
	}

	sess := middleware.CurrentSession(c)
	redirect, err := h.Service.Register(c.Request.Context(), in, sess.State)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := sess.Save(c.Request.Context()); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Redirect(http.StatusFound, redirect)
}
