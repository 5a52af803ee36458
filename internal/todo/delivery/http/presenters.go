package http

import (
	"time"

	"todo-assistant/internal/model"
	"todo-assistant/internal/todo"
	"todo-assistant/pkg/datemath"
)

// --- Request DTOs ---

type createTaskReq struct {
	Name          string  `json:"name"           binding:"required,max=255"`
	DueDate       string  `json:"duedate"        binding:"max=32"`
	Priority      *int    `json:"priority"`
	Starred       bool    `json:"starred"`
	ProgressNotes string  `json:"progress_notes" binding:"max=4000"`
	GeneralNotes  string  `json:"general_notes"  binding:"max=4000"`
	TaskListIDs   []int64 `json:"task_list_ids"`

	due datemath.DueDate
}

func (r *createTaskReq) validate() error {
	if r.DueDate == "" {
		return nil
	}
	due, err := datemath.ParseDueDate(r.DueDate)
	if err != nil {
		return errInvalidDueDate
	}
	r.due = due
	return nil
}

func (r createTaskReq) toInput() todo.CreateTaskInput {
	return todo.CreateTaskInput{
		Name:          r.Name,
		Due:           r.due,
		Priority:      r.Priority,
		Starred:       r.Starred,
		ProgressNotes: r.ProgressNotes,
		GeneralNotes:  r.GeneralNotes,
		TaskListIDs:   r.TaskListIDs,
	}
}

type listTasksReq struct {
	TaskListID int64 `form:"tasklist_id"`
}

type completeReq struct {
	Complete *bool `json:"complete" binding:"required"`
}

type starredReq struct {
	Starred *bool `json:"starred" binding:"required"`
}

type createTaskListReq struct {
	Name string `json:"name" binding:"required,max=255"`
}

type createSubtaskReq struct {
	Name     string `json:"name" binding:"required,max=255"`
	Priority *int   `json:"priority"`
}

// --- Response DTOs ---

type taskResp struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Complete      bool             `json:"complete"`
	Starred       bool             `json:"starred"`
	DueDate       datemath.DueDate `json:"duedate" swaggertype:"string"`
	Priority      *int             `json:"priority"`
	ProgressNotes string           `json:"progress_notes"`
	GeneralNotes  string           `json:"general_notes"`
	TaskListIDs   []int64          `json:"task_list_ids"`
	Subtasks      []subtaskResp    `json:"subtasks,omitempty"`
}

type listTasksResp struct {
	Retrieved time.Time  `json:"retrieved"`
	Count     int        `json:"count"`
	Tasks     []taskResp `json:"tasks"`
}

type taskListResp struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type subtaskResp struct {
	ID       int64  `json:"id"`
	TaskID   int64  `json:"task_id"`
	Name     string `json:"name"`
	Complete bool   `json:"complete"`
	Priority *int   `json:"priority"`
}

func (h *handler) newTaskResp(t model.Task) taskResp {
	ids := t.TaskListIDs
	if ids == nil {
		ids = []int64{}
	}
	return taskResp{
		ID:            t.ID,
		Name:          t.Name,
		Complete:      t.Complete,
		Starred:       t.Starred,
		DueDate:       t.Due,
		Priority:      t.Priority,
		ProgressNotes: t.ProgressNotes,
		GeneralNotes:  t.GeneralNotes,
		TaskListIDs:   ids,
	}
}

func (h *handler) newListTasksResp(o todo.ListTasksOutput) listTasksResp {
	tasks := make([]taskResp, 0, len(o.Tasks))
	for _, t := range o.Tasks {
		tasks = append(tasks, h.newTaskResp(t))
	}
	return listTasksResp{Retrieved: o.Retrieved, Count: len(tasks), Tasks: tasks}
}

func (h *handler) newDetailTaskResp(o todo.DetailTaskOutput) taskResp {
	resp := h.newTaskResp(o.Task)
	resp.Subtasks = h.newSubtaskListResp(o.Subtasks)
	return resp
}

func (h *handler) newTaskListResp(tl model.TaskList) taskListResp {
	return taskListResp{ID: tl.ID, Name: tl.Name}
}

func (h *handler) newTaskListListResp(lists []model.TaskList) []taskListResp {
	out := make([]taskListResp, 0, len(lists))
	for _, tl := range lists {
		out = append(out, h.newTaskListResp(tl))
	}
	return out
}

func (h *handler) newSubtaskResp(st model.Subtask) subtaskResp {
	return subtaskResp{ID: st.ID, TaskID: st.TaskID, Name: st.Name, Complete: st.Complete, Priority: st.Priority}
}

func (h *handler) newSubtaskListResp(subtasks []model.Subtask) []subtaskResp {
	out := make([]subtaskResp, 0, len(subtasks))
	for _, st := range subtasks {
		out = append(out, h.newSubtaskResp(st))
	}
	return out
}
