package main

import (
	"context"
	"log"

	api "taskbot-backend/cmd/api"
	detectdomain "taskbot-backend/internal/detect/domain"
	detectUsecase "taskbot-backend/internal/detect/usecase"
	"taskbot-backend/internal/notification"
	scanRepo "taskbot-backend/internal/scan/repository"
	scanUsecase "taskbot-backend/internal/scan/usecase"
	todoRepo "taskbot-backend/internal/todo/repository"
	todoScheduler "taskbot-backend/internal/todo/scheduler"
	todoUsecase "taskbot-backend/internal/todo/usecase"
	"taskbot-backend/pkg/ai"
	"taskbot-backend/pkg/config"
	"taskbot-backend/pkg/database"
	"taskbot-backend/pkg/slack"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db := database.NewPostgresConnection(cfg.DatabaseURL)

	// Initialize repositories (dependency injection)
	todoRepository := todoRepo.NewGormTodoRepository(db)
	configRepository := scanRepo.NewGormSourceConfigRepository(db)

	// Initialize workspace client and resolve the bot identity
	var slackOpts []slack.Option
	if cfg.SlackAPIRoot != "" {
		slackOpts = append(slackOpts, slack.WithAPIRoot(cfg.SlackAPIRoot))
	}
	slackClient := slack.NewClient(cfg.SlackBotToken, slackOpts...)

	botUserID, err := slackClient.AuthTest(context.Background())
	if err != nil {
		log.Printf("[WARN] Could not resolve bot identity: %v", err)
	} else {
		log.Printf("Connected to workspace as %s", botUserID)
	}

	// Initialize AI classifier with keyword fallback
	classifier, err := ai.NewClassifier(ai.Config{
		Provider:     ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey: cfg.GeminiAPIKey,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		OpenAIModel:  cfg.OpenAIModel,
	})
	if err != nil {
		log.Printf("[WARN] Failed to initialize AI classifier, using keyword detection only: %v", err)
		classifier = ai.NewKeywordClassifier()
	}

	// Detection policy, with confidence floors overridable from env
	policy := detectdomain.DefaultPolicy()
	policy.ChannelFloor = cfg.ChannelConfidenceFloor
	policy.DMFloor = cfg.DMConfidenceFloor
	policy.RealtimeFloor = cfg.RealtimeConfidenceFloor
	policy.DedupSimilarity = cfg.DedupSimilarity

	// Initialize use cases (dependency injection)
	todoUsecaseInstance := todoUsecase.NewTodoUsecase(todoRepository)
	detector := detectUsecase.NewDetector(classifier, policy)
	adapter := scanUsecase.NewSourceAdapter(slackClient, botUserID, policy)
	notifier := notification.NewService(slackClient)
	scanner := scanUsecase.NewScanner(slackClient, adapter, detector, todoUsecaseInstance,
		configRepository, notifier, policy, botUserID)

	// Start due-date reminder loop
	reminderScheduler := todoScheduler.NewReminderScheduler(todoRepository, notifier)
	reminderScheduler.Start()
	defer reminderScheduler.Stop()

	// Initialize HTTP handler
	handler := api.NewHandler(cfg, todoUsecaseInstance, scanner, configRepository)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
