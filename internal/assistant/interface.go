package assistant

import (
	"context"
	"io"

	"todo-assistant/internal/model"
	"todo-assistant/pkg/llmprovider"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Ask turns a typed request into tasks, task lists and subtasks of the caller.
	Ask(ctx context.Context, sc model.Scope, input AskInput) (AskOutput, error)
	// AskSpeech transcribes a recording and then behaves like Ask.
	AskSpeech(ctx context.Context, sc model.Scope, input SpeechInput) (AskOutput, error)
}

// LLM is the chat completion gateway. *llmprovider.Manager satisfies it.
type LLM interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Transcriber converts recorded speech to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}
