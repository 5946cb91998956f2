package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/P4ndro/Intervia/internal/cache"
	"github.com/P4ndro/Intervia/internal/config"
	"github.com/P4ndro/Intervia/internal/repository"
	"github.com/P4ndro/Intervia/internal/service"
	"github.com/P4ndro/Intervia/internal/transport/rest"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()
	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Generation model: %s", aiConfig.Model)
	log.Printf("  Eval model:       %s", aiConfig.EvalModel)
	if aiConfig.GenerationEnabled() {
		log.Println("  Generation key:   configured")
	} else {
		log.Println("  Generation key:   NOT SET")
	}
	if !aiConfig.EvalEnabled() {
		log.Println("  Eval key:         NOT SET (heuristic answer scoring)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)
	if err := repository.EnsureInterviewIndexes(ctx, db); err != nil {
		log.Printf("Warning: failed to create interview indexes: %v", err)
	}
	if err := repository.EnsureJobIndexes(ctx, db); err != nil {
		log.Printf("Warning: failed to create job indexes: %v", err)
	}

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize repositories
	interviewRepo := repository.NewInterviewRepo(db)
	jobRepo := repository.NewJobRepo(db)

	// Initialize caches
	interviewCache := cache.NewInterviewCache(rdb)
	jobCache := cache.NewJobCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg)
	generator, err := service.NewGeneratorService(aiConfig)
	if err != nil {
		log.Fatal("Question generation unusable: ", err)
	}
	evaluator := service.NewEvaluatorService(aiConfig)
	reportSvc := service.NewReportService()
	interviewSvc := service.NewInterviewService(interviewRepo, jobRepo, interviewCache, generator, evaluator, reportSvc)
	jobSvc := service.NewJobService(jobRepo, jobCache)

	// Create router with container
	container := &rest.Container{
		AuthService:      authSvc,
		InterviewService: interviewSvc,
		JobService:       jobSvc,
	}
	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET  /v1/jobs")
		log.Println("  POST /v1/interviews")
		log.Println("  GET  /v1/interviews/{id}")
		log.Println("  POST /v1/interviews/{id}/answers")
		log.Println("  POST /v1/interviews/{id}/complete")
		log.Println("  GET  /v1/interviews/{id}/report")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
