package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wscmeso/mesocycle-planner/internal/api"
	"wscmeso/mesocycle-planner/internal/cache"
	"wscmeso/mesocycle-planner/internal/config"
	"wscmeso/mesocycle-planner/internal/events"
	"wscmeso/mesocycle-planner/internal/logger"
	"wscmeso/mesocycle-planner/internal/metrics"
	"wscmeso/mesocycle-planner/internal/repository/mongo"
	"wscmeso/mesocycle-planner/internal/service"
	"wscmeso/mesocycle-planner/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title Mesocycle Planner API
// @version 1.0
// @description API for planning periodized training blocks, scheduling workouts and tracking progress.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("FATAL: Could not build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg config.Config, zlog *zap.Logger) error {
	zlog.Info("starting mesocycle planner", zap.String("address", cfg.Server.Address))

	// --- Database Connection ---
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	dbClient, err := mongo.ConnectDB(connectCtx, cfg.Database.URI)
	cancelConnect()
	if err != nil {
		return err
	}
	defer func() {
		zlog.Info("disconnecting mongodb")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			zlog.Error("failed to disconnect mongodb", zap.Error(err))
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
			zlog.Error("index creation failed", zap.Error(err))
			return
		}
		zlog.Info("database indexes ensured")
	}()

	// --- Optional Backends ---
	var exerciseCache cache.Cache = cache.Nop{}
	if cfg.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rc, err := cache.NewRedisCache(ctx, cfg.Redis)
		cancel()
		if err != nil {
			zlog.Warn("redis unavailable, exercise cache disabled", zap.Error(err))
		} else {
			exerciseCache = rc
			defer func() { _ = rc.Close() }()
		}
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.AMQP.URL != "" {
		p, err := events.NewAMQPPublisher(cfg.AMQP)
		if err != nil {
			zlog.Warn("amqp unavailable, lifecycle events disabled", zap.Error(err))
		} else {
			publisher = p
		}
	}
	defer func() { _ = publisher.Close() }()

	var fileStorage storage.FileStorage
	if cfg.S3.BucketName != "" {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3, zlog)
		if err != nil {
			return err
		}
	} else {
		zlog.Info("s3 bucket not configured, progress photos disabled")
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	mesocycleRepo := mongo.NewMongoMesocycleRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	progressRepo := mongo.NewMongoProgressRepository(appDB)
	sessionRepo := mongo.NewMongoTrainingSessionRepository(appDB)

	// --- Initialize Services ---
	services := api.Services{
		Auth:       service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration, zlog),
		Users:      service.NewUserService(userRepo),
		Exercises:  service.NewExerciseService(exerciseRepo, exerciseCache, cfg.Redis.TTL, zlog),
		Mesocycles: service.NewMesocycleService(mesocycleRepo, workoutRepo, userRepo, publisher, zlog),
		Workouts:   service.NewWorkoutService(workoutRepo, mesocycleRepo, zlog),
		Progress:   service.NewProgressService(progressRepo, fileStorage, zlog),
		Tracking:   service.NewTrackingService(sessionRepo, mesocycleRepo, exerciseRepo, zlog),
	}

	// --- Initialize Gin Engine ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(zlog), metrics.Middleware())

	if err := api.RegisterValidators(); err != nil {
		return err
	}
	health := func(ctx context.Context) error { return mongo.Ping(ctx, appDB) }
	api.SetupRoutes(router, services, health, cfg.RateLimit, zlog)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		zlog.Info("http server listening", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return err
	case sig := <-quit:
		zlog.Info("shutting down server", zap.String("signal", sig.String()))
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		return err
	}

	zlog.Info("server exiting")
	return nil
}
