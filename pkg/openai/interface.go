package openai

import (
	"context"
	"io"
	"net/http"
)

// IChat is a chat completion client for OpenAI-compatible APIs.
type IChat interface {
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
	Model() string
}

// ITranscriber turns recorded speech into text.
type ITranscriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// Config configures both clients. BaseURL empty means api.openai.com.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	JSONMode   bool
	HTTPClient *http.Client
}

type ChatRequest struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

type ChatResponse struct {
	Text         string
	FinishReason string
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
