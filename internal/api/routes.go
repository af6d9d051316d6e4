package api

import (
	"context"
	"net/http"
	"time"

	"wscmeso/mesocycle-planner/internal/config"
	"wscmeso/mesocycle-planner/internal/domain"
	"wscmeso/mesocycle-planner/internal/metrics"
	"wscmeso/mesocycle-planner/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services bundles what the handlers call into.
type Services struct {
	Auth       service.AuthService
	Users      service.UserService
	Exercises  service.ExerciseService
	Mesocycles service.MesocycleService
	Workouts   service.WorkoutService
	Progress   service.ProgressService
	Tracking   service.TrackingService
}

// HealthCheck reports whether a backing store is reachable.
type HealthCheck func(ctx context.Context) error

func SetupRoutes(
	router *gin.Engine,
	services Services,
	health HealthCheck,
	rateLimit config.RateLimitConfig,
	log *zap.Logger,
) {
	authHandler := NewAuthHandler(services.Auth, log)
	userHandler := NewUserHandler(services.Users, log)
	exerciseHandler := NewExerciseHandler(services.Exercises, log)
	mesocycleHandler := NewMesocycleHandler(services.Mesocycles, log)
	workoutHandler := NewWorkoutHandler(services.Workouts, log)
	progressHandler := NewProgressHandler(services.Progress, log)
	trackingHandler := NewTrackingHandler(services.Tracking, log)

	authMiddleware := AuthMiddleware(services.Auth)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/health", healthHandler(health))
	router.GET("/metrics", metrics.Handler())

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		authGroup.Use(RateLimitMiddleware(rateLimit))
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/users/me", userHandler.GetMe)
		protected.PUT("/users/me", userHandler.UpdateMe)

		// --- Exercise Library ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/search", exerciseHandler.SearchExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.GET("/:id/recommended", exerciseHandler.GetRecommended)
		}

		// --- Mesocycles ---
		mesocycleGroup := protected.Group("/mesocycles")
		{
			mesocycleGroup.POST("", mesocycleHandler.CreateMesocycle)
			mesocycleGroup.GET("", mesocycleHandler.ListMesocycles)
			mesocycleGroup.GET("/:id", mesocycleHandler.GetMesocycle)
			mesocycleGroup.PUT("/:id", mesocycleHandler.UpdateMesocycle)
			mesocycleGroup.DELETE("/:id", mesocycleHandler.DeleteMesocycle)

			mesocycleGroup.POST("/:id/start", mesocycleHandler.Transition(domain.ActionStart))
			mesocycleGroup.POST("/:id/pause", mesocycleHandler.Transition(domain.ActionPause))
			mesocycleGroup.POST("/:id/resume", mesocycleHandler.Transition(domain.ActionResume))
			mesocycleGroup.POST("/:id/complete", mesocycleHandler.Transition(domain.ActionComplete))

			mesocycleGroup.GET("/:id/microcycles/:week", mesocycleHandler.GetMicrocycle)
			mesocycleGroup.GET("/:id/dashboard", mesocycleHandler.GetDashboard)
			mesocycleGroup.GET("/:id/progression", mesocycleHandler.GetProgression)
		}

		// --- Workouts ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.PUT("/:id", workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:id", workoutHandler.DeleteWorkout)
			workoutGroup.POST("/:id/complete", workoutHandler.CompleteWorkout)
		}

		// --- Progress ---
		progressGroup := protected.Group("/progress")
		{
			progressGroup.POST("", progressHandler.CreateProgress)
			progressGroup.GET("", progressHandler.ListProgress)
			progressGroup.GET("/analytics", progressHandler.GetAnalytics)
			progressGroup.GET("/:id", progressHandler.GetProgress)
			progressGroup.PUT("/:id", progressHandler.UpdateProgress)
			progressGroup.DELETE("/:id", progressHandler.DeleteProgress)
			progressGroup.POST("/:id/photo", progressHandler.RequestPhotoUpload)
			progressGroup.GET("/:id/photo", progressHandler.GetPhotoURL)
		}

		// --- Tracking ---
		protected.POST("/sessions", trackingHandler.LogSession)
		protected.GET("/stats/progress", trackingHandler.GetStats)
		protected.GET("/progression/:goal", GetProgression)
	}
}

func healthHandler(check HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := check(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
