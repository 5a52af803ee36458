package llmprovider

import (
	"context"
	"strings"
	"time"

	"todo-assistant/pkg/deepseek"
	"todo-assistant/pkg/gemini"
	"todo-assistant/pkg/openai"
)

// OpenAIAdapter adapts pkg/openai chat clients. It serves OpenAI itself
// and any OpenAI-compatible vendor such as Qwen.
type OpenAIAdapter struct {
	name   string
	client openai.IChat
}

func NewOpenAIAdapter(name string, client openai.IChat) *OpenAIAdapter {
	return &OpenAIAdapter{name: name, client: client}
}

func (a *OpenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.Chat(ctx, &openai.ChatRequest{
		System:      systemText(req),
		User:        userText(req),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return &Response{
		Content:      NewTextMessage(RoleAssistant, resp.Text),
		ProviderName: a.name,
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.InputTokens,
			OutputTokens: resp.OutputTokens,
			TotalTokens:  resp.TotalTokens,
		},
	}, nil
}

func (a *OpenAIAdapter) Name() string  { return a.name }
func (a *OpenAIAdapter) Model() string { return a.client.Model() }

// DeepSeekAdapter adapts pkg/deepseek to llmprovider.Provider interface
type DeepSeekAdapter struct {
	client deepseek.IDeepSeek
}

func NewDeepSeekAdapter(client deepseek.IDeepSeek) *DeepSeekAdapter {
	return &DeepSeekAdapter{client: client}
}

func (a *DeepSeekAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.Chat(ctx, &deepseek.Request{
		System:      systemText(req),
		User:        userText(req),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return &Response{
		Content:      NewTextMessage(RoleAssistant, resp.Text),
		ProviderName: "deepseek",
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.InputTokens,
			OutputTokens: resp.OutputTokens,
			TotalTokens:  resp.TotalTokens,
		},
	}, nil
}

func (a *DeepSeekAdapter) Name() string  { return "deepseek" }
func (a *DeepSeekAdapter) Model() string { return a.client.Model() }

// GeminiAdapter adapts pkg/gemini to llmprovider.Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	geminiReq := &gemini.Request{
		System:      systemText(req),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		JSONMode:    true,
	}
	for _, msg := range req.Messages {
		role := gemini.RoleUser
		if msg.Role == RoleAssistant {
			role = gemini.RoleModel
		}
		geminiReq.Messages = append(geminiReq.Messages, gemini.Message{Role: role, Text: msg.Text()})
	}

	resp, err := a.client.GenerateContent(ctx, geminiReq)
	if err != nil {
		return nil, err
	}
	return &Response{
		Content:      NewTextMessage(RoleAssistant, resp.Text),
		ProviderName: "gemini",
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (a *GeminiAdapter) Name() string  { return "gemini" }
func (a *GeminiAdapter) Model() string { return a.client.Model() }

// timeoutProvider bounds every call of the wrapped provider.
type timeoutProvider struct {
	Provider
	timeout time.Duration
}

func withTimeout(p Provider, timeout time.Duration) Provider {
	if timeout <= 0 {
		return p
	}
	return &timeoutProvider{Provider: p, timeout: timeout}
}

func (p *timeoutProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.Provider.GenerateContent(ctx, req)
}

func systemText(req *Request) string {
	if req.SystemInstruction == nil {
		return ""
	}
	return req.SystemInstruction.Text()
}

// userText flattens the conversation for single-turn chat clients.
func userText(req *Request) string {
	if len(req.Messages) == 1 {
		return req.Messages[0].Text()
	}
	texts := make([]string, 0, len(req.Messages))
	for _, msg := range req.Messages {
		texts = append(texts, msg.Text())
	}
	return strings.Join(texts, "\n\n")
}
