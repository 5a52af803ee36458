package deepseek

import (
	"context"
	"net/http"
)

// IDeepSeek defines the interface for DeepSeek LLM client
type IDeepSeek interface {
	Chat(ctx context.Context, req *Request) (*Response, error)
	Model() string
}

// Config configures the DeepSeek client. BaseURL may point at any
// OpenAI-compatible endpoint.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	JSONMode   bool
	HTTPClient *http.Client
}

// Request is one chat completion call.
type Request struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

type Response struct {
	Text         string
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
