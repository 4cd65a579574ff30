package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/imon025/quizi-backend/internal/config"
	"github.com/imon025/quizi-backend/internal/database"
	"github.com/imon025/quizi-backend/internal/handler"
	"github.com/imon025/quizi-backend/internal/logger"
	"github.com/imon025/quizi-backend/internal/repository"
	"github.com/imon025/quizi-backend/internal/router"
	"github.com/imon025/quizi-backend/internal/service"
	"github.com/imon025/quizi-backend/internal/validator"
	"github.com/imon025/quizi-backend/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Quizi Backend")

	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// Repositories
	userRepo := repository.NewUserRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	quizRepo := repository.NewQuizRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	resultRepo := repository.NewResultRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	// Services
	notifier := service.NewQueueNotifier(rdb, log)
	poolCache := service.NewRedisPoolCache(rdb, log)

	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo, authService, log)
	courseService := service.NewCourseService(courseRepo, notifier, log)
	quizService := service.NewQuizService(quizRepo, courseRepo, poolCache, notifier, log)
	questionService := service.NewQuestionService(questionRepo, quizRepo, courseRepo, poolCache, notifier, log)
	attemptService := service.NewAttemptService(quizRepo, questionRepo, resultRepo, courseRepo, poolCache, notifier, log)
	resultService := service.NewResultService(resultRepo, quizRepo, courseRepo, log)
	notificationService := service.NewNotificationService(notificationRepo, log)

	// Handlers
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(userService, authService),
		Course:       handler.NewCourseHandler(courseService),
		Quiz:         handler.NewQuizHandler(quizService),
		Question:     handler.NewQuestionHandler(questionService),
		Attempt:      handler.NewAttemptHandler(attemptService),
		Result:       handler.NewResultHandler(resultService),
		Notification: handler.NewNotificationHandler(notificationService),
	}

	// Background workers
	workerCtx, workerCancel := context.WithCancel(context.Background())

	notificationWorker := worker.NewNotificationWorker(notificationRepo, rdb, log)
	go notificationWorker.Start(workerCtx)

	r := router.SetupRouter(authService, handlers, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
