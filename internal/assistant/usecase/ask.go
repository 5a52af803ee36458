package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"todo-assistant/internal/assistant"
	"todo-assistant/internal/model"
	repo "todo-assistant/internal/todo/repository"
	"todo-assistant/pkg/datemath"
	"todo-assistant/pkg/llmprovider"
)

// Ask runs the pipeline for a typed question.
func (uc *implUseCase) Ask(ctx context.Context, sc model.Scope, input assistant.AskInput) (assistant.AskOutput, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return assistant.AskOutput{}, assistant.ErrEmptyQuestion
	}
	if uc.opts.MaxQuestionLength > 0 && utf8.RuneCountInString(question) > uc.opts.MaxQuestionLength {
		return assistant.AskOutput{}, assistant.ErrQuestionTooLong
	}
	return uc.run(ctx, sc, question)
}

// AskSpeech transcribes the recording and runs the pipeline on the transcript.
func (uc *implUseCase) AskSpeech(ctx context.Context, sc model.Scope, input assistant.SpeechInput) (assistant.AskOutput, error) {
	if uc.opts.Transcriber == nil {
		return assistant.AskOutput{}, assistant.ErrTranscriptionDisabled
	}

	transcript, err := uc.transcribe(ctx, input)
	if err != nil {
		return assistant.AskOutput{}, err
	}

	output, err := uc.run(ctx, sc, transcript)
	if err != nil {
		return assistant.AskOutput{}, err
	}
	output.Transcript = transcript
	return output, nil
}

func (uc *implUseCase) transcribe(ctx context.Context, input assistant.SpeechInput) (string, error) {
	if uc.opts.TranscriptionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.opts.TranscriptionTimeout)
		defer cancel()
	}

	text, err := uc.opts.Transcriber.Transcribe(ctx, input.Audio, input.Filename)
	if err != nil {
		uc.l.Warnf(ctx, "uc.AskSpeech Transcribe: %v", err)
		return "", gatewayErr(ctx, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", assistant.ErrEmptyTranscript
	}
	if uc.opts.MaxQuestionLength > 0 && utf8.RuneCountInString(text) > uc.opts.MaxQuestionLength {
		return "", assistant.ErrQuestionTooLong
	}
	return text, nil
}

// run is the shared pipeline: prompt, model call, parse, reconcile, re-identify.
func (uc *implUseCase) run(ctx context.Context, sc model.Scope, question string) (assistant.AskOutput, error) {
	now := uc.now().In(uc.dates.Location())

	prompt, err := uc.systemPrompt(ctx, sc, now)
	if err != nil {
		return assistant.AskOutput{}, err
	}

	reply, err := uc.complete(ctx, prompt, question)
	if err != nil {
		return assistant.AskOutput{}, err
	}

	proposal, warnings, err := parseReply(reply, func(s string) (datemath.DueDate, error) {
		return uc.dates.ResolveDueDate(s, now)
	})
	if err != nil {
		uc.l.Warnf(ctx, "uc.Ask parseReply: %v", err)
		return assistant.AskOutput{}, err
	}
	for _, w := range warnings {
		uc.l.Warnf(ctx, "uc.Ask parseReply: %s", w)
	}

	if proposal.Declined != "" {
		return assistant.AskOutput{
			Status:       assistant.StatusError,
			ErrorMessage: proposal.Declined,
			Proposal:     proposal,
		}, nil
	}

	if err := uc.reconcile(ctx, sc, proposal); err != nil {
		return assistant.AskOutput{}, err
	}
	if err := uc.reidentify(ctx, sc, &proposal); err != nil {
		uc.l.Errorf(ctx, "uc.Ask reidentify: %v", err)
		return assistant.AskOutput{}, err
	}

	uc.mirrorToCalendar(ctx, proposal)

	return assistant.AskOutput{Status: assistant.StatusSuccess, Proposal: proposal}, nil
}

// systemPrompt loads the caller's current names and renders the instruction.
func (uc *implUseCase) systemPrompt(ctx context.Context, sc model.Scope, now time.Time) (string, error) {
	tasks, err := uc.repo.ListTasks(ctx, repo.ListTasksOptions{UserID: sc.UserID})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Ask ListTasks: %v", err)
		return "", err
	}
	lists, err := uc.repo.ListTaskLists(ctx, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Ask ListTaskLists: %v", err)
		return "", err
	}

	in := promptInput{Now: now}
	for _, t := range tasks {
		in.TaskNames = append(in.TaskNames, t.Name)
	}
	for _, tl := range lists {
		in.TaskListNames = append(in.TaskListNames, tl.Name)
	}
	return buildSystemPrompt(in), nil
}

// complete sends a fresh two-message conversation and returns the reply text.
func (uc *implUseCase) complete(ctx context.Context, prompt, question string) (string, error) {
	system := llmprovider.NewTextMessage(llmprovider.RoleSystem, prompt)
	resp, err := uc.llm.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: &system,
		Messages:          []llmprovider.Message{llmprovider.NewTextMessage(llmprovider.RoleUser, question)},
		Temperature:       defaultTemperature,
		MaxTokens:         defaultMaxTokens,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Ask GenerateContent: %v", err)
		return "", gatewayErr(ctx, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty reply", assistant.ErrGatewayUnavailable)
	}
	return text, nil
}

// gatewayErr classifies an outbound call failure.
func gatewayErr(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", assistant.ErrGatewayTimeout, err)
	}
	return fmt.Errorf("%w: %v", assistant.ErrGatewayUnavailable, err)
}
