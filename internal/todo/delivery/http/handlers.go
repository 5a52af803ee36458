package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"todo-assistant/internal/model"
	"todo-assistant/internal/todo"
	"todo-assistant/pkg/response"
)

// ListTasks godoc
// @Summary     List tasks
// @Description Returns the caller's tasks ordered by due date, undated tasks last.
// @Tags        Tasks
// @Produce     json
// @Param       tasklist_id query int false "Only tasks in this list"
// @Success     200 {object} listTasksResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks [GET]
func (h *handler) ListTasks(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.scope(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	req, err := h.processListTasksReq(c)
	if err != nil {
		response.ValidationError(c, err)
		return
	}

	output, err := h.uc.ListTasks(ctx, sc, todo.ListTasksInput{TaskListID: req.TaskListID})
	if err != nil {
		h.l.Errorf(ctx, "uc.ListTasks: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newListTasksResp(output))
}

// CreateTask godoc
// @Summary     Create a task
// @Description Creates a task. duedate accepts MM/DD/YYYY or YYYY-MM-DD with an optional ",HH:MM".
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       body body createTaskReq true "Task data"
// @Success     201 {object} taskResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Task list not found"
// @Failure     409 {object} response.Resp "Conflict - name already exists"
// @Router      /api/v1/tasks [POST]
func (h *handler) CreateTask(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.scope(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	req, err := h.processCreateTaskReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	t, err := h.uc.CreateTask(ctx, sc, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.CreateTask: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.Created(c, h.newTaskResp(t))
}

// DetailTask godoc
// @Summary     Get a task
// @Description Returns one task with its subtasks and list ids.
// @Tags        Tasks
// @Produce     json
// @Param       id path int true "Task ID"
// @Success     200 {object} taskResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/tasks/{id} [GET]
func (h *handler) DetailTask(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.scope(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	id, err := h.pathID(c, "id")
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.DetailTask(ctx, sc, id)
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newDetailTaskResp(output))
}

// SetComplete godoc
// @Summary     Mark a task complete or incomplete
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       id   path int         true "Task ID"
// @Param       body body completeReq true "Flag"
// @Success     200 {object} taskResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/tasks/{id}/complete [PATCH]
func (h *handler) SetComplete(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.scope(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	id, err := h.pathID(c, "id")
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	var req completeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	t, err := h.uc.SetComplete(ctx, sc, id, *req.Complete)
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newTaskResp(t))
}

// SetStarred godoc
// @Summary     Star or unstar a task
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       id   path int        true "Task ID"
// @Param       body body starredReq true "Flag"
// @Success     200 {object} taskResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/tasks/{id}/starred [PATCH]
func (h *handler) SetStarred(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.scope(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	id, err := h.pathID(c, "id")
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	var req starredReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	t, err := h.uc.SetStarred(ctx, sc, id, *req.Starred)
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newTaskResp(t))
}

// DeleteTask godoc
// @Summary     Delete a task
// @Description Deletes a task together with its subtasks and list memberships.
// @Tags        Tasks
// @Produce     json
// @Param       id path int true "Task ID"
// @Success     200 {object} response.Resp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/tasks/{id} [DELETE]
func (h *handler) DeleteTask(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.scope(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	id, err := h.pathID(c, "id")
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.uc.DeleteTask(ctx, sc, id); err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, nil)
}

// ListTaskLists godoc
// @Summary     List task lists
// @Tags        TaskLists
// @Produce     json
// @Success     200 {array} taskListResp
// @Router      /api/v1/tasklists [GET]
func (h *handler) ListTaskLists(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.scope(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	lists, err := h.uc.ListTaskLists(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "uc.ListTaskLists: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newTaskListListResp(lists))
}

// CreateTaskList godoc
// @Summary     Create a task list
// @Tags        TaskLists
// @Accept      json
// @Produce     json
// @Param       body body createTaskListReq true "List data"
// @Success     201 {object} taskListResp
// @Failure     409 {object} response.Resp "Conflict - name already exists"
// @Router      /api/v1/tasklists [POST]
func (h *handler) CreateTaskList(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.scope(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	var req createTaskListReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	tl, err := h.uc.CreateTaskList(ctx, sc, req.Name)
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.Created(c, h.newTaskListResp(tl))
}

// DeleteTaskList godoc
// @Summary     Delete a task list
// @Description Deletes the list and its memberships. The tasks are kept.
// @Tags        TaskLists
// @Produce     json
// @Param       id path int true "Task list ID"
// @Success     200 {object} response.Resp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/tasklists/{id} [DELETE]
func (h *handler) DeleteTaskList(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.scope(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	id, err := h.pathID(c, "id")
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.uc.DeleteTaskList(ctx, sc, id); err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, nil)
}

// AttachTask godoc
// @Summary     Add a task to a list
// @Tags        TaskLists
// @Produce     json
// @Param       id      path int true "Task list ID"
// @Param       task_id path int true "Task ID"
// @Success     200 {object} response.Resp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/tasklists/{id}/tasks/{task_id} [PUT]
func (h *handler) AttachTask(c *gin.Context) {
	h.membership(c, h.uc.AttachTask)
}

// DetachTask godoc
// @Summary     Remove a task from a list
// @Tags        TaskLists
// @Produce     json
// @Param       id      path int true "Task list ID"
// @Param       task_id path int true "Task ID"
// @Success     200 {object} response.Resp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/tasklists/{id}/tasks/{task_id} [DELETE]
func (h *handler) DetachTask(c *gin.Context) {
	h.membership(c, h.uc.DetachTask)
}

func (h *handler) membership(c *gin.Context, fn func(ctx context.Context, sc model.Scope, taskListID, taskID int64) error) {
	ctx := c.Request.Context()

	sc, err := h.scope(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	listID, err := h.pathID(c, "id")
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	taskID, err := h.pathID(c, "task_id")
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := fn(ctx, sc, listID, taskID); err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, nil)
}

// ListSubtasks godoc
// @Summary     List the subtasks of a task
// @Tags        Subtasks
// @Produce     json
// @Param       id path int true "Task ID"
// @Success     200 {array} subtaskResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/tasks/{id}/subtasks [GET]
func (h *handler) ListSubtasks(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.scope(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	id, err := h.pathID(c, "id")
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	subtasks, err := h.uc.ListSubtasks(ctx, sc, id)
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSubtaskListResp(subtasks))
}

// CreateSubtask godoc
// @Summary     Add a subtask
// @Tags        Subtasks
// @Accept      json
// @Produce     json
// @Param       id   path int              true "Task ID"
// @Param       body body createSubtaskReq true "Subtask data"
// @Success     201 {object} subtaskResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Conflict - name already exists"
// @Router      /api/v1/tasks/{id}/subtasks [POST]
func (h *handler) CreateSubtask(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.scope(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	id, err := h.pathID(c, "id")
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	var req createSubtaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	st, err := h.uc.CreateSubtask(ctx, sc, todo.CreateSubtaskInput{TaskID: id, Name: req.Name, Priority: req.Priority})
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.Created(c, h.newSubtaskResp(st))
}

// DeleteSubtask godoc
// @Summary     Delete a subtask
// @Tags        Subtasks
// @Produce     json
// @Param       id path int true "Subtask ID"
// @Success     200 {object} response.Resp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/subtasks/{id} [DELETE]
func (h *handler) DeleteSubtask(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.scope(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	id, err := h.pathID(c, "id")
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.uc.DeleteSubtask(ctx, sc, id); err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, nil)
}
