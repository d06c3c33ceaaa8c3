package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	jwttoken "parrainage/internal/jwt_token"
	notificationhandler "parrainage/internal/notification/handler"
	notificationmetrics "parrainage/internal/notification/metrics"
	"parrainage/internal/notification/queue"
	notificationservice "parrainage/internal/notification/service"
	"parrainage/internal/platform/config"
	"parrainage/internal/platform/httpserver"
	"parrainage/internal/platform/kafka"
	"parrainage/internal/platform/logger"
	httpmetrics "parrainage/internal/platform/metrics"
	platformredis "parrainage/internal/platform/redis"
	"parrainage/internal/sponsorship/feed"
	sponsorshiphandler "parrainage/internal/sponsorship/handler"
	sponsorshipmetrics "parrainage/internal/sponsorship/metrics"
	"parrainage/internal/sponsorship/service"
	"parrainage/pkg/platform/middleware/auth"
	"parrainage/pkg/platform/middleware/request"
	"parrainage/pkg/platform/middleware/requesttime"
)

const (
	shutdownTimeout = 10 * time.Second

	historyTopicPartitions  = 3
	historyTopicReplication = 1
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func main() {
	if err := run(); err != nil {
		slog.Error("parrainage exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	defer func() {
		if err := be.close(); err != nil {
			log.Warn("closing store", "error", err)
		}
	}()
	checks := []healthCheck{{name: "store", check: be.ping}}

	notificationOpts := []notificationservice.Option{
		notificationservice.WithLogger(log),
		notificationservice.WithMetrics(notificationmetrics.New()),
	}
	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer func() {
			_ = redisClient.Close()
		}()
		notificationOpts = append(notificationOpts,
			notificationservice.WithQueue(queue.NewRedisQueue(redisClient.Client, cfg.Redis.QueueKey)))
		checks = append(checks, healthCheck{name: "redis", check: redisClient.Health})
	} else {
		log.Info("REDIS_URL not set; notifications are stored but not queued")
	}
	notifications, err := notificationservice.New(be.inbox, notificationOpts...)
	if err != nil {
		return fmt.Errorf("notification service: %w", err)
	}

	serviceOpts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(sponsorshipmetrics.New()),
		service.WithNotifier(notifications),
	}
	var producer *kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err = kafka.NewProducer(cfg.Kafka.Brokers, log)
		if err != nil {
			return err
		}
		if err := producer.EnsureTopic(ctx, cfg.Kafka.HistoryTopic, historyTopicPartitions, historyTopicReplication); err != nil {
			log.Warn("history topic not ensured; publishing anyway", "topic", cfg.Kafka.HistoryTopic, "error", err)
		}
		serviceOpts = append(serviceOpts, service.WithHistoryFeed(feed.NewKafka(producer, cfg.Kafka.HistoryTopic)))
		checks = append(checks, healthCheck{name: "kafka", check: producer.Ping})
	}
	svc, err := service.New(be.stores, be.tx, serviceOpts...)
	if err != nil {
		return fmt.Errorf("sponsorship service: %w", err)
	}

	validator := jwttoken.NewValidator(jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer))

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(log))
	r.Use(request.Logger(log))
	r.Use(requesttime.Middleware)
	r.Use(httpmetrics.New().Middleware)

	r.Get("/healthz", healthHandler(checks...))
	r.Handle("/metrics", promhttp.Handler())
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(validator, log))
		sponsorshiphandler.New(svc, log).Register(r)
		notificationhandler.New(notifications, log).Register(r)
	})

	srv := httpserver.New(cfg.Addr, r, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting parrainage", "addr", cfg.Addr, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info("shutting down")
		err := srv.Shutdown(shutdownCtx)
		if producer != nil {
			producer.Close(shutdownCtx)
		}
		if err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
