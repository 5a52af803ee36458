package llmprovider

import (
	"context"
	"strings"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// GenerateContent sends a generation request and returns a response
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name (e.g., "openai", "gemini")
	Name() string

	// Model returns the model being used
	Model() string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Request represents a normalized LLM generation request
type Request struct {
	SystemInstruction *Message
	Messages          []Message
	Temperature       float64
	MaxTokens         int
}

// Message represents a conversation message
type Message struct {
	Role  string
	Parts []Part
}

// Part is a text segment of a message.
type Part struct {
	Text string
}

// NewTextMessage builds a single-part message.
func NewTextMessage(role, text string) Message {
	return Message{Role: role, Parts: []Part{{Text: text}}}
}

// Text concatenates the message parts.
func (m Message) Text() string {
	if len(m.Parts) == 1 {
		return m.Parts[0].Text
	}
	var sb strings.Builder
	for _, p := range m.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// Response represents a normalized LLM generation response
type Response struct {
	Content      Message
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Text returns the reply text.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return r.Content.Text()
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// ProviderInfo describes a configured provider.
type ProviderInfo struct {
	Name  string
	Model string
}
