package http

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todo-assistant/internal/model"
	pkgErrors "todo-assistant/pkg/errors"
)

func (h *handler) scope(c *gin.Context) (model.Scope, error) {
	sc, ok := model.ScopeFromContext(c.Request.Context())
	if !ok {
		return model.Scope{}, pkgErrors.ErrUnauthorized
	}
	return sc, nil
}

func (h *handler) processAskReq(c *gin.Context) (askReq, error) {
	var req askReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processSpeechReq opens the uploaded recording. The caller closes it.
func (h *handler) processSpeechReq(c *gin.Context) (multipart.File, string, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return nil, "", errFileTooLarge
		}
		return nil, "", errMissingFile
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", errMissingFile
	}
	return f, fh.Filename, nil
}
