package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/lld-lab-api/internal/config"
	"github.com/noah-isme/lld-lab-api/internal/database"
	"github.com/noah-isme/lld-lab-api/internal/handler"
	"github.com/noah-isme/lld-lab-api/internal/middleware"
	"github.com/noah-isme/lld-lab-api/internal/models"
	"github.com/noah-isme/lld-lab-api/internal/repository"
	"github.com/noah-isme/lld-lab-api/internal/router"
	"github.com/noah-isme/lld-lab-api/internal/service"
	"github.com/noah-isme/lld-lab-api/pkg/evaluator"
	"github.com/noah-isme/lld-lab-api/pkg/sandbox"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Problem{}, &models.ClassDesign{}, &models.Evaluation{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	executor, err := sandbox.NewDockerExecutor(sandbox.Config{
		Host:          cfg.DockerHost,
		Timeout:       cfg.DemoTimeout,
		MemoryLimitMB: int64(cfg.DemoMemoryMB),
		CPUShares:     int64(cfg.DemoCPUShares),
		Logger:        logger,
	})
	if err != nil {
		log.Fatalf("failed to create sandbox executor: %v", err)
	}
	defer executor.Close()

	judge, err := evaluator.NewOpenAIJudge(evaluator.OpenAIConfig{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.OpenAIModel,
		Temperature: cfg.OpenAITemperature,
		MaxTokens:   cfg.OpenAIMaxTokens,
		Timeout:     cfg.JudgeTimeout,
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("failed to create design judge: %v", err)
	}

	eval := evaluator.New(judge, logger)

	validate := validator.New(validator.WithRequiredStructEnabled())

	problemRepo := repository.NewProblemRepository(db)
	designRepo := repository.NewClassDesignRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)

	problemService := service.NewProblemService(problemRepo, validate, logger)
	designService := service.NewDesignService(problemRepo, designRepo, validate, logger)
	evaluationService := service.NewEvaluationService(problemRepo, designRepo, evaluationRepo, eval, redisClient, cfg.EvaluationCacheTTL, logger)
	demoService := service.NewDemoService(executor, validate, logger, service.DemoConfig{
		Timeout:       cfg.DemoTimeout,
		MemoryLimitMB: cfg.DemoMemoryMB,
		CPUShares:     cfg.DemoCPUShares,
	})

	problemHandler := handler.NewProblemHandler(problemService, logger)
	classDesignHandler := handler.NewClassDesignHandler(designService, logger)
	evaluationHandler := handler.NewEvaluationHandler(evaluationService, logger)
	demoHandler := handler.NewDemoHandler(demoService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ProblemHandler:     problemHandler,
		ClassDesignHandler: classDesignHandler,
		EvaluationHandler:  evaluationHandler,
		DemoHandler:        demoHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
