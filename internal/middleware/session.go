package middleware

import (
	"net/http"

	"academy-service/internal/config"
	"academy-service/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionKey = "academy.session"

// Session resumes or opens the visitor's session and stores it in the
// gin context. New sessions get their signed cookie set here.
func Session(manager *session.Manager, cfg config.SessionConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cfg.CookieName)

		sess, newToken, err := manager.Start(c.Request.Context(), token)
		if err != nil {
			logger.Error("failed to start session", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}
		if newToken != "" {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.CookieName, newToken, int(cfg.TTL.Seconds()), "/", "", cfg.Secure, true)
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session stored by Session.
func CurrentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}
