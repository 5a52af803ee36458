package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"todo-assistant/internal/model"
	pkgErrors "todo-assistant/pkg/errors"
)

// scope returns the caller's Scope. Routes are behind mw.Auth, so a missing
// scope means the wiring is wrong.
func (h *handler) scope(c *gin.Context) (model.Scope, error) {
	sc, ok := model.ScopeFromContext(c.Request.Context())
	if !ok {
		return model.Scope{}, pkgErrors.ErrUnauthorized
	}
	return sc, nil
}

func (h *handler) pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

func (h *handler) processCreateTaskReq(c *gin.Context) (createTaskReq, error) {
	var req createTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

func (h *handler) processListTasksReq(c *gin.Context) (listTasksReq, error) {
	var req listTasksReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, nil
}
