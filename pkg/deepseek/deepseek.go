package deepseek

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Client implements IDeepSeek on top of langchaingo's OpenAI-compatible LLM.
type Client struct {
	llm   llms.Model
	model string
}

// New creates a new DeepSeek client
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("deepseek: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithModel(cfg.Model),
	}
	if cfg.JSONMode {
		opts = append(opts, openai.WithResponseFormat(&openai.ResponseFormat{Type: "json_object"}))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, openai.WithHTTPClient(cfg.HTTPClient))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("deepseek: failed to create client: %w", err)
	}
	return &Client{llm: llm, model: cfg.Model}, nil
}

// Model returns the model being used
func (c *Client) Model() string {
	return c.model
}

// Chat sends a system + user exchange and returns the first choice.
func (c *Client) Chat(ctx context.Context, req *Request) (*Response, error) {
	var messages []llms.MessageContent
	if req.System != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, req.System))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, req.User))

	var callOpts []llms.CallOption
	if req.Temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(req.Temperature))
	}
	if req.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(req.MaxTokens))
	}

	resp, err := c.llm.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		return nil, fmt.Errorf("deepseek: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("deepseek: no choices in response")
	}

	choice := resp.Choices[0]
	return &Response{
		Text:         choice.Content,
		InputTokens:  intInfo(choice.GenerationInfo, "PromptTokens"),
		OutputTokens: intInfo(choice.GenerationInfo, "CompletionTokens"),
		TotalTokens:  intInfo(choice.GenerationInfo, "TotalTokens"),
	}, nil
}

func intInfo(info map[string]any, key string) int {
	switch v := info[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
