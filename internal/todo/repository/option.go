package repository

import "todo-assistant/pkg/datemath"

type CreateTaskListOptions struct {
	UserID int64
	Name   string
}

// GetOneTaskListOptions filters a single list. UserID is required; ID and
// Name are applied as AND conditions when set. Name matches case-insensitively.
type GetOneTaskListOptions struct {
	UserID int64
	ID     int64
	Name   string
}

// MembershipOptions links a task to a list. Both must belong to UserID.
type MembershipOptions struct {
	UserID     int64
	TaskListID int64
	TaskID     int64
}

type CreateTaskOptions struct {
	UserID        int64
	Name          string
	Complete      bool
	Starred       bool
	Due           datemath.DueDate
	Priority      *int
	ProgressNotes string
	GeneralNotes  string
	TaskListIDs   []int64
}

// GetOneTaskOptions filters a single task. UserID is required.
type GetOneTaskOptions struct {
	UserID int64
	ID     int64
	Name   string
}

// ListTasksOptions lists a user's tasks ordered by due date, undated last.
type ListTasksOptions struct {
	UserID     int64
	TaskListID int64
}

// UpdateTaskFlagsOptions sets the flags that are non-nil.
type UpdateTaskFlagsOptions struct {
	UserID   int64
	ID       int64
	Complete *bool
	Starred  *bool
}

type CreateSubtaskOptions struct {
	UserID   int64
	TaskID   int64
	Name     string
	Priority *int
}

// GetOneSubtaskOptions filters a single subtask. UserID is required.
type GetOneSubtaskOptions struct {
	UserID int64
	ID     int64
	TaskID int64
	Name   string
}

type ListSubtasksOptions struct {
	UserID int64
	TaskID int64
}
