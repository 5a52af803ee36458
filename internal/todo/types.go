package todo

import (
	"time"

	"todo-assistant/internal/model"
	"todo-assistant/pkg/datemath"
)

type ListTasksInput struct {
	TaskListID int64
}

type ListTasksOutput struct {
	Retrieved time.Time
	Tasks     []model.Task
}

type CreateTaskInput struct {
	Name          string
	Due           datemath.DueDate
	Priority      *int
	Starred       bool
	ProgressNotes string
	GeneralNotes  string
	TaskListIDs   []int64
}

type DetailTaskOutput struct {
	Task     model.Task
	Subtasks []model.Subtask
}

type CreateSubtaskInput struct {
	TaskID   int64
	Name     string
	Priority *int
}
