package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"todo-assistant/internal/assistant"
	"todo-assistant/pkg/response"
)

// Ask godoc
// @Summary     Ask the assistant
// @Description Sends a natural-language request to the language model and adds the tasks, task lists and subtasks it proposes. A refusal by the model is answered with status "error".
// @Tags        Assistant
// @Accept      json
// @Produce     json
// @Param       body body askReq true "Question"
// @Success     200 {object} askResp
// @Failure     400 {object} response.Resp "Empty or too long question"
// @Failure     409 {object} response.Resp "Unresolved reference"
// @Failure     422 {object} response.Resp "Malformed model output"
// @Failure     429 {object} response.Resp "Too many requests"
// @Failure     502 {object} response.Resp "Model unavailable"
// @Failure     504 {object} response.Resp "Model timed out"
// @Router      /api/v1/assistant/ask [POST]
func (h *handler) Ask(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.scope(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	req, err := h.processAskReq(c)
	if err != nil {
		response.ValidationError(c, err)
		return
	}

	output, err := h.uc.Ask(ctx, sc, assistant.AskInput{Question: req.Question})
	if err != nil {
		h.logError(c, "uc.Ask", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newAskResp(output))
}

// Speech godoc
// @Summary     Ask the assistant by voice
// @Description Transcribes the uploaded recording and processes it like /assistant/ask. The transcript is returned with the result.
// @Tags        Assistant
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "Audio recording"
// @Success     200 {object} askResp
// @Failure     400 {object} response.Resp "Missing file"
// @Failure     413 {object} response.Resp "File too large"
// @Failure     502 {object} response.Resp "Transcription or model unavailable"
// @Failure     503 {object} response.Resp "Speech input disabled"
// @Router      /api/v1/assistant/speech [POST]
func (h *handler) Speech(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.scope(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	file, filename, err := h.processSpeechReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	defer file.Close()

	output, err := h.uc.AskSpeech(ctx, sc, assistant.SpeechInput{Audio: file, Filename: filename})
	if err != nil {
		h.logError(c, "uc.AskSpeech", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newAskResp(output))
}

// logError keeps expected pipeline outcomes at warn level.
func (h *handler) logError(c *gin.Context, op string, err error) {
	ctx := c.Request.Context()
	switch {
	case errors.Is(err, assistant.ErrEmptyQuestion),
		errors.Is(err, assistant.ErrQuestionTooLong),
		errors.Is(err, assistant.ErrMalformedModelOutput),
		errors.Is(err, assistant.ErrUnresolvedReference),
		errors.Is(err, assistant.ErrEmptyTranscript):
		h.l.Warnf(ctx, "%s: %v", op, err)
	default:
		h.l.Errorf(ctx, "%s: %v", op, err)
	}
}
