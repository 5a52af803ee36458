package llmprovider

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"todo-assistant/config"
	"todo-assistant/pkg/deepseek"
	"todo-assistant/pkg/gemini"
	"todo-assistant/pkg/log"
	"todo-assistant/pkg/openai"
)

// InitializeProviders creates Provider instances from config.LLMConfig.
// Returns providers sorted by priority (ascending) with disabled providers filtered out.
// Providers that fail to initialize are skipped and reported in the returned warnings.
func InitializeProviders(cfg *config.LLMConfig) ([]Provider, []string, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("LLM config is nil")
	}

	var enabledProviders []config.ProviderConfig
	for _, p := range cfg.Providers {
		if p.Enabled {
			enabledProviders = append(enabledProviders, p)
		}
	}
	if len(enabledProviders) == 0 {
		return nil, nil, ErrNoProvidersConfigured
	}

	sort.SliceStable(enabledProviders, func(i, j int) bool {
		return enabledProviders[i].Priority < enabledProviders[j].Priority
	})

	var (
		providers []Provider
		warnings  []string
	)
	for _, p := range enabledProviders {
		provider, err := createProvider(p)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("failed to initialize provider %s (priority %d): %v", p.Name, p.Priority, err))
			continue
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		return nil, warnings, fmt.Errorf("no providers successfully initialized: %s", strings.Join(warnings, "; "))
	}
	return providers, warnings, nil
}

// ManagerConfig converts the string durations of config.LLMConfig.
func ManagerConfig(cfg *config.LLMConfig) (*Config, error) {
	retryDelay, err := parseDuration(cfg.RetryDelay, time.Second)
	if err != nil {
		return nil, fmt.Errorf("llm.retry_delay: %w", err)
	}
	maxTotal, err := parseDuration(cfg.MaxTotalTimeout, 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("llm.max_total_timeout: %w", err)
	}
	return &Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTotal,
	}, nil
}

// createProvider creates a concrete provider instance based on the provider config
func createProvider(cfg config.ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("provider %s: API key is required", cfg.Name)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("provider %s: model is required", cfg.Name)
	}
	timeout, err := parseDuration(cfg.Timeout, 0)
	if err != nil {
		return nil, fmt.Errorf("provider %s: timeout: %w", cfg.Name, err)
	}

	var provider Provider
	switch strings.ToLower(cfg.Name) {
	case "openai":
		client, err := openai.NewChat(openai.Config{APIKey: cfg.APIKey, BaseURL: cfg.BaseURL, Model: cfg.Model, JSONMode: true})
		if err != nil {
			return nil, err
		}
		provider = NewOpenAIAdapter("openai", client)

	case "qwen", "alibaba":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = openai.QwenBaseURL
		}
		client, err := openai.NewChat(openai.Config{APIKey: cfg.APIKey, BaseURL: baseURL, Model: cfg.Model, JSONMode: true})
		if err != nil {
			return nil, err
		}
		provider = NewOpenAIAdapter("qwen", client)

	case "deepseek":
		client, err := deepseek.New(deepseek.Config{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL, JSONMode: true})
		if err != nil {
			return nil, fmt.Errorf("failed to create deepseek client: %w", err)
		}
		provider = NewDeepSeekAdapter(client)

	case "gemini":
		client, err := gemini.New(gemini.Config{APIKey: cfg.APIKey, Model: cfg.Model, APIURL: cfg.BaseURL})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		provider = NewGeminiAdapter(client)

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Name)
	}

	return withTimeout(provider, timeout), nil
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}

// NewFromConfig builds a Manager from config.LLMConfig. Providers that fail
// to initialize are logged and skipped.
func NewFromConfig(ctx context.Context, cfg *config.LLMConfig, l log.Logger) (*Manager, error) {
	providers, warnings, err := InitializeProviders(cfg)
	for _, w := range warnings {
		l.Warnf(ctx, "llmprovider: %s", w)
	}
	if err != nil {
		return nil, err
	}

	mcfg, err := ManagerConfig(cfg)
	if err != nil {
		return nil, err
	}
	return NewManager(providers, mcfg, l), nil
}
