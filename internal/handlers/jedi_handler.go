package handlers

import (
	"net/http"
	"strconv"

	"academy-service/internal/apperror"
	"academy-service/internal/middleware"
	"academy-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const candidatesPath = "/jedi/candidates/"

type JediHandler struct {
	Service *service.MentorService
	logger  *zap.Logger
}

func NewJediHandler(s *service.MentorService, logger *zap.Logger) *JediHandler {
	return &JediHandler{Service: s, logger: logger}
}

type selectJediRequest struct {
	Jedi string `form:"jedi" json:"jedi"`
}

func (h *JediHandler) List(c *gin.Context) {
	jedi, err := h.Service.ListJedi(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jedi": jedi})
}

func (h *JediHandler) Select(c *gin.Context) {
	var req selectJediRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, h.logger, bindError("jedi", err))
		return
	}
	jediID, err := strconv.ParseInt(req.Jedi, 10, 64)
	if err != nil || jediID <= 0 {
		respondError(c, h.logger, apperror.NewValidation("jedi", "Select a valid choice."))
		return
	}

	ctx := c.Request.Context()
	sess := middleware.CurrentSession(c)
	if err := h.Service.SelectMentor(ctx, sess.State, jediID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := sess.Save(ctx); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Redirect(http.StatusFound, candidatesPath)
}

func (h *JediHandler) Candidates(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	page, err := h.Service.EligibleCandidates(c.Request.Context(), sess.State, c.Query("page"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *JediHandler) Candidate(c *gin.Context) {
	candidateID, ok := parseCandidateRef(c.Param("ref"))
	if !ok {
		respondError(c, h.logger, notFound("candidate"))
		return
	}

	sess := middleware.CurrentSession(c)
	detail, err := h.Service.CandidateDetail(c.Request.Context(), sess.State, candidateID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *JediHandler) Accept(c *gin.Context) {
	candidateID, ok := parseCandidateRef(c.Param("ref"))
	if !ok {
		respondError(c, h.logger, notFound("candidate"))
		return
	}

	sess := middleware.CurrentSession(c)
	candidate, err := h.Service.Accept(c.Request.Context(), sess.State, candidateID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   candidate.Name + " is now your padawan.",
		"candidate": candidate,
	})
}
