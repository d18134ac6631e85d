package handlers

import (
	"time"

	"academy-service/internal/config"
	"academy-service/internal/middleware"
	"academy-service/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handlers groups everything the router serves.
type Handlers struct {
	Index     *IndexHandler
	Candidate *CandidateHandler
	Challenge *ChallengeHandler
	Jedi      *JediHandler
	Report    *ReportHandler
	Health    *HealthHandler
	Sessions  *session.Manager
	Config    *config.Config
	Logger    *zap.Logger
}

func NewRouter(h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger(h.Logger))
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     h.Config.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", h.Health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	app := router.Group("/")
	app.Use(middleware.Session(h.Sessions, h.Config.Session, h.Logger))
	{
		app.GET("/", h.Index.Index)

		app.GET("/new_candidate/", h.Candidate.Form)
		app.POST("/new_candidate/", h.Candidate.Register)

		app.GET("/challenge/order_:ref/", h.Challenge.GetQuestion)
		app.POST("/challenge/order_:ref/", h.Challenge.SubmitAnswer)
		app.GET("/challenge/done/", h.Challenge.Done)

		app.GET("/jedi/", h.Jedi.List)
		app.POST("/jedi/", h.Jedi.Select)
		app.GET("/jedi/candidates/", h.Jedi.Candidates)
		app.GET("/jedi/candidate_:ref/", h.Jedi.Candidate)
		app.POST("/jedi/candidate_:ref/", h.Jedi.Accept)

		app.GET("/jedi/all/", h.Report.AllJedi)
		app.GET("/jedi/more_one/", h.Report.MoreThanOne)
	}

	return router
}
