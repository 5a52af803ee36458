package assistant

import "errors"

var (
	ErrEmptyQuestion         = errors.New("question is empty")
	ErrQuestionTooLong       = errors.New("question is too long")
	ErrTranscriptionDisabled = errors.New("speech transcription is not configured")
	ErrEmptyTranscript       = errors.New("transcription returned no text")
	ErrGatewayUnavailable    = errors.New("language model service unavailable")
	ErrGatewayTimeout        = errors.New("language model service timed out")
	ErrMalformedModelOutput  = errors.New("malformed model output")
	ErrUnresolvedReference   = errors.New("unresolved reference")
	ErrConflict              = errors.New("conflicting concurrent change")
)
