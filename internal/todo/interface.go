package todo

import (
	"context"

	"todo-assistant/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	ListTasks(ctx context.Context, sc model.Scope, input ListTasksInput) (ListTasksOutput, error)
	CreateTask(ctx context.Context, sc model.Scope, input CreateTaskInput) (model.Task, error)
	DetailTask(ctx context.Context, sc model.Scope, id int64) (DetailTaskOutput, error)
	SetComplete(ctx context.Context, sc model.Scope, id int64, complete bool) (model.Task, error)
	SetStarred(ctx context.Context, sc model.Scope, id int64, starred bool) (model.Task, error)
	DeleteTask(ctx context.Context, sc model.Scope, id int64) error

	ListTaskLists(ctx context.Context, sc model.Scope) ([]model.TaskList, error)
	CreateTaskList(ctx context.Context, sc model.Scope, name string) (model.TaskList, error)
	DeleteTaskList(ctx context.Context, sc model.Scope, id int64) error
	AttachTask(ctx context.Context, sc model.Scope, taskListID, taskID int64) error
	DetachTask(ctx context.Context, sc model.Scope, taskListID, taskID int64) error

	ListSubtasks(ctx context.Context, sc model.Scope, taskID int64) ([]model.Subtask, error)
	CreateSubtask(ctx context.Context, sc model.Scope, input CreateSubtaskInput) (model.Subtask, error)
	DeleteSubtask(ctx context.Context, sc model.Scope, id int64) error
}
