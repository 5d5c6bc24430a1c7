package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tripweaver/tripweaver-api/internal/domain/assistant"
	"github.com/tripweaver/tripweaver-api/internal/domain/trip"
	"github.com/tripweaver/tripweaver-api/internal/llm"
	"github.com/tripweaver/tripweaver-api/pkg/config"
	"github.com/tripweaver/tripweaver-api/pkg/db"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	// Clients
	ChatClient llm.ChatClient

	// Repositories
	TripRepo trip.Repository

	// Services
	TripService      trip.Service
	AssistantService assistant.Service

	// Handlers
	TripHandler      *trip.Handler
	AssistantHandler *assistant.Handler
}

// InitDependencies initializes all application dependencies
func InitDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}

	if err := deps.initClients(ctx); err != nil {
		return nil, fmt.Errorf("failed to init clients: %w", err)
	}

	if err := deps.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	if err := deps.initHandlers(); err != nil {
		return nil, fmt.Errorf("failed to init handlers: %w", err)
	}

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// initDatabase initializes the database connection and runs migrations
func (d *Dependencies) initDatabase() error {
	database, err := db.New(db.Config{
		DSN:             d.Config.Database.DSN(),
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}, d.Logger)
	if err != nil {
		return err
	}

	d.DB = database

	if err := d.DB.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.Logger.Info("database connected and migrations completed successfully")
	return nil
}

// initClients initializes outbound service clients
func (d *Dependencies) initClients(ctx context.Context) error {
	chatClient, err := llm.NewGeminiChatClient(ctx, d.Config.LLM.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create chat client: %w", err)
	}
	d.ChatClient = chatClient

	d.Logger.Info("clients initialized", slog.String("model", chatClient.Model()))
	return nil
}

// initServices initializes repository and service layer dependencies
func (d *Dependencies) initServices() error {
	d.TripRepo = trip.NewRepository(d.DB.Pool, d.Logger)
	d.TripService = trip.NewService(d.TripRepo, d.Logger)
	d.AssistantService = assistant.NewService(d.ChatClient, d.Logger)

	d.Logger.Info("services initialized")
	return nil
}

// initHandlers initializes all handler dependencies
func (d *Dependencies) initHandlers() error {
	d.TripHandler = trip.NewHandler(d.TripService, d.Logger)
	d.AssistantHandler = assistant.NewHandler(d.AssistantService, d.TripService, d.Logger)
	d.Logger.Info("handlers initialized")
	return nil
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.DB != nil {
		d.DB.Close()
	}
	d.Logger.Info("cleanup completed")
}
