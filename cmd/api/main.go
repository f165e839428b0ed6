package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"vidquiz/internal/adapter"
	"vidquiz/internal/adapter/media"
	"vidquiz/internal/adapter/synthesizer"
	"vidquiz/internal/adapter/transcriber"
	"vidquiz/internal/cache"
	"vidquiz/internal/config"
	"vidquiz/internal/database"
	"vidquiz/internal/handler"
	"vidquiz/internal/logger"
	"vidquiz/internal/middleware"
	"vidquiz/internal/repository"
	"vidquiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Connect to Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")

	// Initialize repositories
	quizRepository := repository.NewQuizDatabaseAdapter(db)
	userRepository := repository.NewSQLXUserRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)
	tokenBlacklist := adapter.NewRedisTokenBlacklist(redisClient)

	// Initialize pipeline adapters
	fetcher := media.NewYTDLPFetcher(cfg.Pipeline)
	whisperTranscriber := transcriber.NewWhisperTranscriber(cfg.Pipeline)
	quizSynthesizer, err := synthesizer.NewOpenAISynthesizer(cfg.OpenAI, cfg.Pipeline.SynthesizeTimeout)
	if err != nil {
		appLogger.Fatal("Failed to create quiz synthesizer", zap.Error(err))
	}

	// Initialize services
	authService, err := service.NewAuthService(userRepository, tokenBlacklist, cfg.Auth)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	appLogger.Info("AuthService initialized")

	quizService := service.NewQuizService(fetcher, whisperTranscriber, quizSynthesizer, quizRepository, txManager)
	appLogger.Info("QuizService initialized")

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.Auth)
	quizHandler := handler.NewQuizHandler(quizService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000",
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
		MaxAge:           300,
	}))
	app.Use(recover.New())

	// Auth routes
	app.Post("/register", authHandler.Register)
	app.Post("/login", authHandler.Login)
	app.Post("/logout", middleware.Protected(authService), authHandler.Logout)
	app.Post("/token/refresh", authHandler.RefreshToken)

	if cfg.Auth.GoogleOAuth.Enabled() {
		app.Get("/auth/google/login", authHandler.GoogleLogin)
		app.Get("/auth/google/callback", authHandler.GoogleCallback)
		appLogger.Info("Google OAuth login enabled")
	}

	// Quiz routes (all protected)
	app.Post("/createQuiz", middleware.Protected(authService), quizHandler.CreateQuiz)
	quizGroup := app.Group("/quizzes", middleware.Protected(authService))
	quizGroup.Get("/", quizHandler.ListQuizzes)
	quizGroup.Get("/:id", quizHandler.GetQuiz)
	quizGroup.Patch("/:id", quizHandler.UpdateQuiz)
	quizGroup.Delete("/:id", quizHandler.DeleteQuiz)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
