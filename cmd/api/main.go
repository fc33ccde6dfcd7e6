package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"trivia-api/internal/cache"
	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/handler"
	"trivia-api/internal/logger"
	"trivia-api/internal/repository/postgres"
	"trivia-api/internal/service"
)

func main() {
	log := logger.New("trivia-api")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	// Initialize database connection
	pool, err := database.ConnectPostgres(context.Background(), cfg.Postgres)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer pool.Close()

	// Initialize repositories
	questionRepo := postgres.NewQuestionRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)

	// The category cache is optional; the service reads straight from
	// Postgres when Redis is disabled or unreachable.
	var categoryCache *cache.CategoryCache
	if cfg.Redis.Enabled {
		redisClient, err := database.ConnectRedis(cfg.Redis)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, running without category cache")
		} else {
			defer redisClient.Close()
			categoryCache = cache.NewCategoryCache(redisClient)
		}
	}

	// Initialize service and handlers
	trivia := service.NewTriviaService(questionRepo, categoryRepo, categoryCache, log)
	categoryHandler := handler.NewCategoryHandler(trivia)
	questionHandler := handler.NewQuestionHandler(trivia)
	quizHandler := handler.NewQuizHandler(trivia)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Routes
	e.GET("/categories", categoryHandler.ListCategories)
	e.GET("/categories/:id/questions", categoryHandler.QuestionsByCategory)
	e.GET("/questions", questionHandler.ListQuestions)
	e.POST("/questions", questionHandler.CreateQuestion)
	e.DELETE("/questions/:id", questionHandler.DeleteQuestion)
	e.POST("/search", questionHandler.SearchQuestions)
	e.POST("/quizzes", quizHandler.NextQuestion)

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	// Start server
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("failed to shut down cleanly")
	}
}
