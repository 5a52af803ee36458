package http

import (
	"todo-assistant/internal/assistant"
	"todo-assistant/pkg/log"
)

type handler struct {
	l              log.Logger
	uc             assistant.UseCase
	maxUploadBytes int64
}

// New creates a new HTTP handler for the assistant. maxUploadMB bounds the
// speech upload size.
func New(l log.Logger, uc assistant.UseCase, maxUploadMB int) *handler {
	if maxUploadMB <= 0 {
		maxUploadMB = 25
	}
	return &handler{
		l:              l,
		uc:             uc,
		maxUploadBytes: int64(maxUploadMB) << 20,
	}
}
