package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"slang-quiz-service/internal/config"
	"slang-quiz-service/internal/db"
	"slang-quiz-service/internal/event"
	"slang-quiz-service/internal/handlers"
	"slang-quiz-service/internal/logger"
	"slang-quiz-service/internal/question"
	"slang-quiz-service/internal/repository"
	"slang-quiz-service/internal/selection"
	"slang-quiz-service/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	mongoClient, err := db.ConnectMongo(ctx, cfg.Mongo.URI)
	if err != nil {
		zlog.Fatal("mongo connection failed", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)
	database := mongoClient.Database(cfg.Mongo.Database)

	rdb, err := db.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		zlog.Fatal("redis connection failed", zap.Error(err))
	}
	defer rdb.Close()

	// RabbitMQ event publisher, optional.
	var publisher *event.EventPublisher
	if cfg.Rabbit.URI != "" && cfg.Rabbit.Exchange != "" {
		publisher, err = event.NewEventPublisher(cfg.Rabbit.URI, cfg.Rabbit.Exchange, zlog)
		if err != nil {
			zlog.Fatal("rabbitmq connection failed", zap.Error(err))
		}
		defer publisher.Close()
	} else {
		zlog.Info("rabbitmq not configured, lifecycle events will not be published")
	}

	// Repositories
	termRepo := repository.NewTermRepository(database)
	sessionRepo := repository.NewSessionRepository(rdb, cfg.Quiz.SessionTTL)
	historyRepo := repository.NewHistoryRepository(database)
	answerRepo := repository.NewAnswerRepository(database)

	// Services
	historyService := service.NewHistoryService(historyRepo, zlog)
	sessionService := service.NewSessionService(
		sessionRepo,
		selection.NewTermSelector(termRepo),
		question.NewBuilder(termRepo),
		historyService,
		answerRepo,
		zlog,
		cfg.Quiz.InactivityWindow,
		cfg.Quiz.SessionTTL,
	)
	if publisher != nil {
		sessionService.SetEventSink(publisher)
	}

	sessionHandler := handlers.NewSessionHandler(sessionService)
	historyHandler := handlers.NewHistoryHandler(historyService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	protected := r.Group("/protected/quiz")
	protected.Use(requireUser())
	{
		protected.POST("/session/next", sessionHandler.NextQuestion)
		protected.POST("/session/:id/answer", sessionHandler.SubmitAnswer)
		protected.GET("/session/:id/progress", sessionHandler.GetProgress)
		protected.POST("/session/:id/end", sessionHandler.EndSession)
		protected.GET("/history", historyHandler.GetHistory)
	}

	zlog.Info("starting quiz service", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

// requireUser rejects requests without a caller identity. Token validation
// happens upstream at the gateway; this service only needs the resolved
// user ID.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(handlers.UserIDHeader) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
