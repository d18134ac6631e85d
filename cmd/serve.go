package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"academy-service/internal/config"
	"academy-service/internal/event"
	"academy-service/internal/handlers"
	"academy-service/internal/logging"
	"academy-service/internal/notify"
	"academy-service/internal/service"
	"academy-service/internal/session"
	"academy-service/pkg/discovery"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server and the mail consumer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), config.Load())
	},
}

type redisPinger struct {
	client *redis.Client
}

func (r redisPinger) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}

	publisher, err := event.NewEventPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange, logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	mailer, err := notify.NewMailer(cfg.Mail, publisher, logger)
	if err != nil {
		return err
	}

	limit := cfg.Academy.PadawanLimit
	challenges := service.NewChallengeService(store)
	registration := service.NewRegistrationService(store, challenges, publisher, cfg.Academy.RegistrationOrderCode, limit, logger)
	quiz := service.NewQuizService(challenges, store, publisher, logger)
	mentor := service.NewMentorService(store, mailer, publisher, cfg.Mail.SMTP.From, limit, cfg.Academy.PageSize, logger)
	reports := service.NewReportService(store, cfg.Academy.PageSize)

	gin.SetMode(cfg.Server.Mode)
	router := handlers.NewRouter(handlers.Handlers{
		Index:     handlers.NewIndexHandler(logger),
		Candidate: handlers.NewCandidateHandler(registration, logger),
		Challenge: handlers.NewChallengeHandler(quiz, logger),
		Jedi:      handlers.NewJediHandler(mentor, logger),
		Report:    handlers.NewReportHandler(reports, logger),
		Health: handlers.NewHealthHandler(map[string]handlers.Pinger{
			"store": store,
			"redis": redisPinger{client: rdb},
		}, logger),
		Sessions: session.NewManager(
			session.NewRedisStore(rdb, cfg.Session.TTL),
			session.NewTokenIssuer(cfg.Session.Secret, cfg.Session.TTL),
		),
		Config: cfg,
		Logger: logger,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	// Queued mail is delivered over SMTP by the consumer.
	if cfg.Mail.Transport == notify.TransportQueue {
		consumer, err := notify.NewConsumer(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.MailQueue,
			notify.NewSMTPMailer(cfg.Mail.SMTP), logger)
		if err != nil {
			stop()
			_ = g.Wait()
			return err
		}
		defer consumer.Close()
		g.Go(func() error { return consumer.Run(gctx) })
	}

	if cfg.Consul.ConsulAddress != "" {
		registry, err := discovery.NewServiceRegistry(cfg, logger)
		if err != nil {
			logger.Warn("service discovery unavailable", zap.Error(err))
		} else if err := registry.Register(); err != nil {
			logger.Warn("service registration failed", zap.Error(err))
		} else {
			defer func() {
				if err := registry.Deregister(); err != nil {
					logger.Warn("service deregistration failed", zap.Error(err))
				}
			}()
		}
	}

	err = g.Wait()
	logger.Info("server stopped")
	return err
}
