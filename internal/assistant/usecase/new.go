package usecase

import (
	"time"

	"todo-assistant/internal/assistant"
	"todo-assistant/internal/todo/repository"
	"todo-assistant/pkg/datemath"
	"todo-assistant/pkg/gcalendar"
	"todo-assistant/pkg/log"
)

// Options holds the optional collaborators and limits of the assistant.
type Options struct {
	// Transcriber is nil when speech input is disabled.
	Transcriber          assistant.Transcriber
	TranscriptionTimeout time.Duration
	MaxQuestionLength    int
	// Calendar is nil when the calendar mirror is disabled.
	Calendar   gcalendar.ICalendar
	CalendarID string

	// CalendarTimeout bounds the whole mirror step. Zero means defaultCalendarTimeout.
	CalendarTimeout time.Duration
}

type implUseCase struct {
	l     log.Logger
	repo  repository.Repository
	llm   assistant.LLM
	dates *datemath.Parser
	opts  Options
	now   func() time.Time
}

// New creates a new assistant UseCase. repo is the todo store the proposals
// are reconciled into.
func New(l log.Logger, repo repository.Repository, llm assistant.LLM, dates *datemath.Parser, opts Options) *implUseCase {
	return &implUseCase{
		l:     l,
		repo:  repo,
		llm:   llm,
		dates: dates,
		opts:  opts,
		now:   time.Now,
	}
}
