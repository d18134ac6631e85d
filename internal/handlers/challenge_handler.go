package handlers

import (
	"net/http"

	"academy-service/internal/middleware"
	"academy-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChallengeHandler struct {
	Service *service.QuizService
	logger  *zap.Logger
}

func NewChallengeHandler(s *service.QuizService, logger *zap.Logger) *ChallengeHandler {
	return &ChallengeHandler{Service: s, logger: logger}
}

type answerRequest struct {
	AnswerText string `form:"answer_text" json:"answer_text"`
}

func (h *ChallengeHandler) GetQuestion(c *gin.Context) {
	code, questionID, ok := parseQuestionRef(c.Param("ref"))
	if !ok {
		respondError(c, h.logger, notFound("question"))
		return
	}

	sess := middleware.CurrentSession(c)
	question, err := h.Service.View(c.Request.Context(), sess.State, code, questionID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order":    code,
		"question": question,
		"choices":  []bool{true, false},
	})
}

func (h *ChallengeHandler) SubmitAnswer(c *gin.Context) {
	code, questionID, ok := parseQuestionRef(c.Param("ref"))
	if !ok {
		respondError(c, h.logger, notFound("question"))
		return
	}

	var req answerRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, h.logger, bindError("answer_text", err))
		return
	}
	value, err := service.ParseAnswer(req.AnswerText)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	ctx := c.Request.Context()
	sess := middleware.CurrentSession(c)
	step, err := h.Service.Submit(ctx, sess.State, code, questionID, value)

	if step != nil && step.Completed {
		if clearErr := sess.Clear(ctx); clearErr != nil {
			h.logger.Error("failed to clear session", zap.Error(clearErr))
		}
	} else if err == nil {
		if saveErr := sess.Save(ctx); saveErr != nil {
			respondError(c, h.logger, saveErr)
			return
		}
	}

	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Redirect(http.StatusFound, step.Redirect)
}

func (h *ChallengeHandler) Done(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Thank you! Your answers have been recorded."})
}
