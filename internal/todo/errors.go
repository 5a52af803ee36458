package todo

import "errors"

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskListNotFound = errors.New("task list not found")
	ErrSubtaskNotFound  = errors.New("subtask not found")
	ErrDuplicateName    = errors.New("name already exists")
	ErrEmptyName        = errors.New("name is empty")
)
