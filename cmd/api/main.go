package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"todo-assistant/config"
	_ "todo-assistant/docs" // Swagger docs
	"todo-assistant/internal/app"
	"todo-assistant/internal/httpserver"
)

// @title       Todo Assistant API
// @description Personal task manager with a natural-language assistant.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Logger, database, sessions, assistant collaborators
	deps, err := app.Build(ctx, cfg)
	if err != nil {
		fmt.Println("Failed to initialize: ", err)
		os.Exit(1)
	}
	defer deps.Close()

	logger := deps.Logger
	logger.Info(ctx, "Starting Todo Assistant...")
	logger.Infof(ctx, "Environment: %s, database: %s", cfg.Environment.Name, cfg.Database.Driver)

	// 3. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ReadTimeout:     cfg.HTTPServer.ReadTimeout,
		WriteTimeout:    cfg.HTTPServer.WriteTimeout,
		ShutdownTimeout: cfg.HTTPServer.ShutdownTimeout,

		DB:     deps.DB,
		Driver: deps.Driver,

		JWTManager:      deps.JWTManager,
		Encrypter:       deps.Encrypter,
		Cookie:          cfg.Cookie,
		CORS:            cfg.CORS,
		RateLimitPerMin: cfg.Assistant.RateLimitPerMin,

		LLM:              deps.LLM(),
		Dates:            deps.Dates,
		AssistantOptions: deps.AssistantOptions,
		MaxUploadMB:      cfg.Transcription.MaxUploadMB,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	// 4. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
