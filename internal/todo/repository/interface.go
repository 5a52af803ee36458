package repository

import (
	"context"

	"todo-assistant/internal/model"
)

// Repository is the composed interface for the todo data store. Every
// method is scoped by a user id; rows of other users are never returned.
type Repository interface {
	TaskListRepository
	TaskRepository
	SubtaskRepository

	// WithTx runs fn inside one transaction. The Repository passed to fn is
	// bound to that transaction; returning an error rolls everything back.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error
}

// TaskListRepository defines data access for task lists and memberships.
type TaskListRepository interface {
	CreateTaskList(ctx context.Context, opt CreateTaskListOptions) (model.TaskList, error)
	GetOneTaskList(ctx context.Context, opt GetOneTaskListOptions) (model.TaskList, error)
	ListTaskLists(ctx context.Context, userID int64) ([]model.TaskList, error)
	DeleteTaskList(ctx context.Context, userID, id int64) error
	AttachTask(ctx context.Context, opt MembershipOptions) error
	DetachTask(ctx context.Context, opt MembershipOptions) error
}

// TaskRepository defines data access for tasks.
type TaskRepository interface {
	CreateTask(ctx context.Context, opt CreateTaskOptions) (model.Task, error)
	GetOneTask(ctx context.Context, opt GetOneTaskOptions) (model.Task, error)
	ListTasks(ctx context.Context, opt ListTasksOptions) ([]model.Task, error)
	UpdateTaskFlags(ctx context.Context, opt UpdateTaskFlagsOptions) (model.Task, error)
	DeleteTask(ctx context.Context, userID, id int64) error
}

// SubtaskRepository defines data access for subtasks.
type SubtaskRepository interface {
	CreateSubtask(ctx context.Context, opt CreateSubtaskOptions) (model.Subtask, error)
	GetOneSubtask(ctx context.Context, opt GetOneSubtaskOptions) (model.Subtask, error)
	ListSubtasks(ctx context.Context, opt ListSubtasksOptions) ([]model.Subtask, error)
	DeleteSubtask(ctx context.Context, userID, id int64) error
}
