package http

import (
	"strings"

	"todo-assistant/internal/assistant"
	"todo-assistant/pkg/datemath"
)

type askReq struct {
	Question string `json:"question" binding:"required"`
}

type taskListResp struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type taskResp struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Starred       bool             `json:"starred"`
	DueDate       datemath.DueDate `json:"duedate" swaggertype:"string"`
	Priority      *int             `json:"priority"`
	TaskListNames string           `json:"tasklistnames"`
}

type subtaskResp struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Priority       *int   `json:"priority"`
	ParentTaskName string `json:"parenttaskname"`
}

type askResp struct {
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Transcript   string         `json:"transcript,omitempty"`
	NumTaskLists int            `json:"numtasklists"`
	TaskLists    []taskListResp `json:"tasklists"`
	NumTasks     int            `json:"numtasks"`
	Tasks        []taskResp     `json:"tasks"`
	NumSubtasks  int            `json:"numsubtasks"`
	Subtasks     []subtaskResp  `json:"subtasks"`
}

func (h *handler) newAskResp(o assistant.AskOutput) askResp {
	resp := askResp{
		Status:       o.Status,
		ErrorMessage: o.ErrorMessage,
		Transcript:   o.Transcript,
		TaskLists:    make([]taskListResp, 0, len(o.Proposal.TaskLists)),
		Tasks:        make([]taskResp, 0, len(o.Proposal.Tasks)),
		Subtasks:     make([]subtaskResp, 0, len(o.Proposal.Subtasks)),
	}

	for _, tl := range o.Proposal.TaskLists {
		resp.TaskLists = append(resp.TaskLists, taskListResp{ID: tl.ID, Name: tl.Name})
	}
	for _, t := range o.Proposal.Tasks {
		resp.Tasks = append(resp.Tasks, taskResp{
			ID:            t.ID,
			Name:          t.Name,
			Starred:       t.Starred,
			DueDate:       t.Due,
			Priority:      t.Priority,
			TaskListNames: strings.Join(t.TaskListNames, ","),
		})
	}
	for _, st := range o.Proposal.Subtasks {
		resp.Subtasks = append(resp.Subtasks, subtaskResp{
			ID:             st.ID,
			Name:           st.Name,
			Priority:       st.Priority,
			ParentTaskName: st.ParentTaskName,
		})
	}

	resp.NumTaskLists = len(resp.TaskLists)
	resp.NumTasks = len(resp.Tasks)
	resp.NumSubtasks = len(resp.Subtasks)
	return resp
}
