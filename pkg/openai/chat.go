package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	goopenai "github.com/sashabaranov/go-openai"
)

// ChatClient implements IChat with go-openai.
type ChatClient struct {
	client   *goopenai.Client
	model    string
	jsonMode bool
}

func newClient(cfg Config) *goopenai.Client {
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		clientCfg.HTTPClient = cfg.HTTPClient
	} else {
		clientCfg.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return goopenai.NewClientWithConfig(clientCfg)
}

// NewChat creates a chat client. Model defaults to DefaultChatModel.
func NewChat(cfg Config) (*ChatClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultChatModel
	}
	return &ChatClient{client: newClient(cfg), model: cfg.Model, jsonMode: cfg.JSONMode}, nil
}

// Model returns the model being used
func (c *ChatClient) Model() string {
	return c.model
}

// Chat sends a system + user exchange and returns the first choice.
func (c *ChatClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	var messages []goopenai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleSystem, Content: req.System})
	}
	messages = append(messages, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleUser, Content: req.User})

	chatReq := goopenai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	}
	if c.jsonMode {
		chatReq.ResponseFormat = &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai: no choices in response")
	}

	choice := resp.Choices[0]
	return &ChatResponse{
		Text:         choice.Message.Content,
		FinishReason: string(choice.FinishReason),
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}, nil
}
