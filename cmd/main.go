package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/campuscrew/interview-scheduling/internal/config"
	"github.com/campuscrew/interview-scheduling/internal/handler"
	"github.com/campuscrew/interview-scheduling/internal/health"
	"github.com/campuscrew/interview-scheduling/internal/infra/cache"
	"github.com/campuscrew/interview-scheduling/internal/infra/notify"
	"github.com/campuscrew/interview-scheduling/internal/infra/recorder"
	"github.com/campuscrew/interview-scheduling/internal/infra/store"
	"github.com/campuscrew/interview-scheduling/internal/observability/logging"
	"github.com/campuscrew/interview-scheduling/internal/observability/metrics"
	"github.com/campuscrew/interview-scheduling/internal/observability/middleware"
	"github.com/campuscrew/interview-scheduling/internal/service/availability"
	"github.com/campuscrew/interview-scheduling/internal/service/booking"
	"github.com/campuscrew/interview-scheduling/internal/service/busytime"
	"github.com/campuscrew/interview-scheduling/internal/service/conflict"
	"github.com/campuscrew/interview-scheduling/internal/service/grid"
	"github.com/campuscrew/interview-scheduling/internal/service/match"
)

// Version is set via ldflags at build time
var Version = "dev"

const serviceName = "interview-scheduling"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	logging.Setup(cfg.LogLevel, serviceName, Version)

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	metricsShutdown, err := initMetrics(ctx, serviceName)
	if err != nil {
		slog.Error("failed to initialize metrics export", slog.String("error", err.Error()))
		return 1
	}
	if metricsShutdown != nil {
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := metricsShutdown(shutdownCtx); err != nil {
				slog.Warn("metrics shutdown error", slog.String("error", err.Error()))
			}
		}()
	}

	schedulingMetrics, err := metrics.NewSchedulingMetrics()
	if err != nil {
		slog.Error("failed to initialize scheduling metrics", slog.String("error", err.Error()))
		return 1
	}

	resultRecorder, err := recorder.NewRecorder(ctx, recorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := resultRecorder.Close(); err != nil {
			slog.Warn("failed to close result recorder", slog.String("error", err.Error()))
		}
	}()

	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{})
	if err != nil {
		slog.Error("failed to connect database",
			slog.String("event", "db.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}
	if err := store.Migrate(db); err != nil {
		slog.Error("failed to migrate database schema", slog.String("error", err.Error()))
		return 1
	}
	slog.Info("database connected",
		slog.String("host", cfg.DB.Host),
		slog.String("name", cfg.DB.Name),
	)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()
	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	scheduleStore := store.New(db)
	slotCache := cache.NewRedisCache(redisClient)
	notifier := notify.NewWebhookNotifier(cfg.NotifyWebhookURL)

	loc := cfg.Schedule.Location()
	codec, err := grid.NewCodec(cfg.Schedule.SeasonStart, cfg.Schedule.SeasonEnd, loc)
	if err != nil {
		slog.Error("failed to build season token universe", slog.String("error", err.Error()))
		return 1
	}
	slog.Info("season token universe built",
		slog.Int("tokens", codec.Size()),
		slog.Time("season_start", cfg.Schedule.SeasonStart),
		slog.Time("season_end", cfg.Schedule.SeasonEnd),
	)

	checker := conflict.NewChecker(cfg.Schedule.OpenHour, cfg.Schedule.CloseHour, cfg.Schedule.Grace, loc)

	scheduler := match.NewAutoScheduler(
		scheduleStore,
		checker,
		codec,
		slotCache,
		notifier,
		resultRecorder,
		schedulingMetrics,
		cfg.Schedule.SlotsCacheTTL,
	)
	bookingService := booking.NewService(scheduleStore, checker, slotCache, notifier, schedulingMetrics)
	busyProcessor := busytime.NewProcessor(
		scheduleStore,
		slotCache,
		resultRecorder,
		schedulingMetrics,
		cfg.Schedule.ChunkSize,
		cfg.Schedule.ChunkTimeout,
	)
	availabilityService := availability.NewService(scheduleStore, codec, slotCache)

	availabilityHandler := handler.NewAvailabilityHandler(availabilityService)
	gridHandler := handler.NewGridHandler(codec, scheduler)
	bookingHandler := handler.NewBookingHandler(bookingService)
	busyTimeHandler := handler.NewBusyTimeHandler(busyProcessor)
	matchHandler := handler.NewMatchHandler(scheduler)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths: []string{"/health", "/health/live", "/health/ready"},
	}))

	healthChecker := health.NewChecker(db, redisClient, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/grid", gridHandler.HandleGetGrid)
		v1.POST("/applicants/:id/availability", availabilityHandler.HandleSubmitApplicantAvailability)
		v1.PUT("/interviewers/:id/availability", availabilityHandler.HandleReplaceInterviewerAvailability)
		v1.GET("/interviewers/:id/slots", gridHandler.HandleGetInterviewerSlots)
		v1.POST("/interviewers/:id/busy/batch", busyTimeHandler.HandleBatch)
		v1.POST("/interviewers/:id/busy/toggle", busyTimeHandler.HandleToggle)
		v1.POST("/interviews", bookingHandler.HandleCreateInterview)
		v1.DELETE("/interviews/:id", bookingHandler.HandleCancelInterview)
		v1.PATCH("/interviews/:id", bookingHandler.HandleUpdateInterview)
		v1.POST("/match/reset", matchHandler.HandleReset)
		v1.POST("/match/schedule", matchHandler.HandleSchedule)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Int("open_hour", cfg.Schedule.OpenHour),
			slog.Int("close_hour", cfg.Schedule.CloseHour),
			slog.Int("busy_chunk_size", cfg.Schedule.ChunkSize),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
