package model

import "todo-assistant/pkg/datemath"

// Priority bounds for tasks and subtasks.
const (
	MinPriority = 1
	MaxPriority = 10
)

// TaskList is a named, user-owned group of tasks.
type TaskList struct {
	ID     int64
	UserID int64
	Name   string
}

// Task is a user-owned to-do item. A task belongs to zero or more lists.
type Task struct {
	ID            int64
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

// Subtask is a step of a task.
type Subtask struct {
	ID       int64
	TaskID   int64
	UserID   int64
	Name     string
	Complete bool
	Priority *int
}

// ClampPriority limits p to the allowed range. Nil stays nil.
func ClampPriority(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	if v < MinPriority {
		v = MinPriority
	}
	if v > MaxPriority {
		v = MaxPriority
	}
	return &v
}
