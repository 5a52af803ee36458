// Package app wires the collaborators shared by the API server and the CLI.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"todo-assistant/config"
	"todo-assistant/internal/assistant"
	assistantUC "todo-assistant/internal/assistant/usecase"
	todoRepo "todo-assistant/internal/todo/repository/sqldb"
	"todo-assistant/pkg/database"
	"todo-assistant/pkg/datemath"
	"todo-assistant/pkg/encrypter"
	"todo-assistant/pkg/gcalendar"
	"todo-assistant/pkg/llmprovider"
	"todo-assistant/pkg/log"
	"todo-assistant/pkg/openai"
	"todo-assistant/pkg/scope"
)

// ErrAssistantUnavailable is returned by Assistant when no language model
// could be initialized.
var ErrAssistantUnavailable = errors.New("no language model configured")

// Deps holds the process-wide collaborators.
type Deps struct {
	Logger     log.Logger
	DB         *sql.DB
	Driver     database.Driver
	JWTManager scope.Manager
	Encrypter  encrypter.Encrypter
	Dates      *datemath.Parser

	Manager          *llmprovider.Manager
	AssistantOptions assistantUC.Options
}

// Build opens the database, runs migrations when enabled and initializes the
// optional assistant collaborators. A failing LLM, transcription or calendar
// setup is logged and leaves that collaborator disabled.
func Build(ctx context.Context, cfg *config.Config) (*Deps, error) {
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
		FilePath:     cfg.Logger.FilePath,
		MaxSizeMB:    cfg.Logger.MaxSizeMB,
		MaxBackups:   cfg.Logger.MaxBackups,
		MaxAgeDays:   cfg.Logger.MaxAgeDays,
	})

	deps, err := buildCore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	manager, err := llmprovider.NewFromConfig(ctx, &cfg.LLM, logger)
	if err != nil {
		logger.Warnf(ctx, "LLM providers unavailable, assistant disabled: %v", err)
	} else {
		deps.Manager = manager
		for _, p := range manager.Providers() {
			logger.Infof(ctx, "LLM provider ready: %s (%s)", p.Name, p.Model)
		}
	}

	deps.AssistantOptions = assistantUC.Options{
		TranscriptionTimeout: cfg.Transcription.Timeout,
		MaxQuestionLength:    cfg.Assistant.MaxQuestionLength,
		CalendarID:           cfg.GoogleCalendar.CalendarID,
		CalendarTimeout:      cfg.GoogleCalendar.Timeout,
	}

	if cfg.Transcription.Enabled {
		t, err := openai.NewTranscriber(openai.Config{
			APIKey:  cfg.Transcription.APIKey,
			BaseURL: cfg.Transcription.BaseURL,
			Model:   cfg.Transcription.Model,
		})
		if err != nil {
			logger.Warnf(ctx, "Transcription disabled: %v", err)
		} else {
			deps.AssistantOptions.Transcriber = t
		}
	}

	if cfg.GoogleCalendar.CredentialsPath != "" {
		cal, err := gcalendar.NewFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if err != nil {
			logger.Warnf(ctx, "Google Calendar mirror disabled: %v", err)
		} else {
			deps.AssistantOptions.Calendar = cal
		}
	}

	return deps, nil
}

// BuildStorage opens the database only. Used by commands that never call a
// language model.
func BuildStorage(ctx context.Context, cfg *config.Config) (*Deps, error) {
	logger := log.Init(log.ZapConfig{
		Level:    cfg.Logger.Level,
		Mode:     cfg.Logger.Mode,
		Encoding: cfg.Logger.Encoding,
	})
	return buildCore(ctx, cfg, logger)
}

func buildCore(ctx context.Context, cfg *config.Config, logger log.Logger) (*Deps, error) {
	driver := database.Driver(cfg.Database.Driver)
	db, err := database.Open(ctx, database.Config{
		Driver:          driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, driver); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	jwtManager, err := scope.New(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("scope: %w", err)
	}

	dates, err := datemath.NewParser(cfg.Assistant.Timezone)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("datemath: %w", err)
	}

	return &Deps{
		Logger:     logger,
		DB:         db,
		Driver:     driver,
		JWTManager: jwtManager,
		Encrypter:  encrypter.New(nil),
		Dates:      dates,
	}, nil
}

// LLM returns the language model, or a nil interface when none is available.
func (d *Deps) LLM() assistant.LLM {
	if d.Manager == nil {
		return nil
	}
	return d.Manager
}

// Assistant builds the assistant use case over the configured store.
func (d *Deps) Assistant() (assistant.UseCase, error) {
	llm := d.LLM()
	if llm == nil {
		return nil, ErrAssistantUnavailable
	}
	repo := todoRepo.New(d.DB, d.Driver, d.Logger)
	return assistantUC.New(d.Logger, repo, llm, d.Dates, d.AssistantOptions), nil
}

// Close releases the database handle.
func (d *Deps) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
