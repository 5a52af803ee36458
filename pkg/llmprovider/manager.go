package llmprovider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"todo-assistant/pkg/log"
)

const (
	minRetryAttempts = 1
	maxRetryAttempts = 5
)

// Manager orchestrates provider selection, fallback, and retry logic
type Manager struct {
	providers []Provider
	config    *Config
	logger    log.Logger
}

// Config defines configuration for the Provider Manager
type Config struct {
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      time.Duration
	MaxTotalTimeout time.Duration // bounds the whole fallback chain
}

// NewManager creates a new Provider Manager with the given providers, config, and logger.
// RetryAttempts is clamped to [1, 5].
func NewManager(providers []Provider, config *Config, logger log.Logger) *Manager {
	cfg := Config{}
	if config != nil {
		cfg = *config
	}
	if cfg.RetryAttempts < minRetryAttempts {
		cfg.RetryAttempts = minRetryAttempts
	}
	if cfg.RetryAttempts > maxRetryAttempts {
		cfg.RetryAttempts = maxRetryAttempts
	}
	return &Manager{
		providers: providers,
		config:    &cfg,
		logger:    logger,
	}
}

// Providers lists the provider chain in the order it is tried.
func (m *Manager) Providers() []ProviderInfo {
	out := make([]ProviderInfo, 0, len(m.providers))
	for _, p := range m.providers {
		out = append(out, ProviderInfo{Name: p.Name(), Model: p.Model()})
	}
	return out
}

// GenerateContent iterates through providers in priority order with fallback logic.
// A response without text counts as a failure.
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}
	if req == nil || len(req.Messages) == 0 {
		return nil, ErrInvalidRequest
	}

	var cancel context.CancelFunc
	if m.config.MaxTotalTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	var lastErr error
	tried := 0

	for _, provider := range m.providers {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("global timeout exceeded after trying %d provider(s): %w", tried, err)
		}
		tried++

		resp, err := m.generateWithRetry(ctx, provider, req)
		if err == nil {
			m.logSuccess(ctx, provider, resp)
			return resp, nil
		}

		m.logFailure(ctx, provider, err)
		lastErr = &ProviderError{Provider: provider.Name(), Err: err}

		if !m.config.FallbackEnabled {
			break
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, err)
	}
	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
}

// generateWithRetry retries one provider with a linearly growing delay
func (m *Manager) generateWithRetry(ctx context.Context, provider Provider, req *Request) (*Response, error) {
	var lastErr error

	for attempt := 0; attempt < m.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * m.config.RetryDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err := provider.GenerateContent(ctx, req)
		if err == nil && strings.TrimSpace(resp.Text()) == "" {
			err = ErrEmptyResponse
		}
		if err == nil {
			return resp, nil
		}

		lastErr = err
		if ctx.Err() != nil {
			return nil, lastErr
		}
	}

	return nil, lastErr
}

func (m *Manager) logSuccess(ctx context.Context, provider Provider, resp *Response) {
	var in, out int
	if resp.Usage != nil {
		in, out = resp.Usage.InputTokens, resp.Usage.OutputTokens
	}
	m.logger.Infof(ctx, "llmprovider: generation succeeded provider=%s model=%s input_tokens=%d output_tokens=%d",
		provider.Name(), provider.Model(), in, out)
}

func (m *Manager) logFailure(ctx context.Context, provider Provider, err error) {
	m.logger.Warnf(ctx, "llmprovider: generation failed provider=%s model=%s error=%v",
		provider.Name(), provider.Model(), err)
}
