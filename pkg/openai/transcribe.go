package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
)

// Transcriber implements ITranscriber with the audio transcription endpoint.
type Transcriber struct {
	client *goopenai.Client
	model  string
}

// NewTranscriber creates a Transcriber. Model defaults to whisper-1.
func NewTranscriber(cfg Config) (*Transcriber, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultTranscriptionModel
	}
	return &Transcriber{client: newClient(cfg), model: cfg.Model}, nil
}

// Transcribe returns the trimmed transcript. The filename extension tells
// the API the audio format.
func (t *Transcriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if filepath.Ext(filename) == "" {
		filename += ".webm"
	}

	resp, err := t.client.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    t.model,
		Reader:   audio,
		FilePath: filename,
	})
	if err != nil {
		return "", fmt.Errorf("openai: transcription: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
