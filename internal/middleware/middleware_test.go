package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"academy-service/internal/config"
	"academy-service/internal/metrics"
	"academy-service/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newSessionRouter(t *testing.T) (*gin.Engine, config.SessionConfig) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := config.SessionConfig{Secret: "secret", TTL: time.Hour, CookieName: "academy_session"}
	manager := session.NewManager(session.NewRedisStore(client, cfg.TTL), session.NewTokenIssuer(cfg.Secret, cfg.TTL))

	r := gin.New()
	r.Use(Session(manager, cfg, zap.NewNop()))
	r.GET("/mentor", func(c *gin.Context) {
		sess := CurrentSession(c)
		c.JSON(http.StatusOK, gin.H{"jedi": sess.State.JediID})
	})
	r.POST("/mentor", func(c *gin.Context) {
		sess := CurrentSession(c)
		sess.State.BindMentor(7)
		require.NoError(t, sess.Save(c.Request.Context()))
		c.Status(http.StatusNoContent)
	})
	return r, cfg
}

func TestSessionCookieIsIssuedOnceAndResumed(t *testing.T) {
	r, cfg := newSessionRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mentor", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cfg.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/mentor", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"jedi":7}`, w.Body.String())
	assert.Empty(t, w.Result().Cookies(), "a valid session keeps its cookie")
}

func TestForgedCookieStartsFreshSession(t *testing.T) {
	r, cfg := newSessionRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/mentor", nil)
	req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: "forged"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.JSONEq(t, `{"jedi":0}`, w.Body.String())
	assert.Len(t, w.Result().Cookies(), 1)
}

func TestMetricsCountsByRoute(t *testing.T) {
	r := gin.New()
	r.Use(Metrics(), Logger(zap.NewNop()))
	r.GET("/jedi/candidate_:ref/", func(c *gin.Context) { c.Status(http.StatusForbidden) })

	counter := metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/jedi/candidate_:ref/", "403")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/jedi/candidate_5_answer/", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
