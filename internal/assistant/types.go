package assistant

import (
	"io"

	"todo-assistant/pkg/datemath"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ProposedTaskList is a task list named by the model. ID is zero until
// the proposal has been reconciled.
type ProposedTaskList struct {
	ID   int64
	Name string
}

// ProposedTask references its lists by name.
type ProposedTask struct {
	ID            int64
	Name          string
	Starred       bool
	Due           datemath.DueDate
	Priority      *int
	TaskListNames []string
}

// ProposedSubtask references its parent task by name.
type ProposedSubtask struct {
	ID             int64
	Name           string
	Priority       *int
	ParentTaskName string
}

// Proposal is the decoded model reply. Declined carries the model's own
// error message when it refused the request; the collections are then empty.
type Proposal struct {
	TaskLists []ProposedTaskList
	Tasks     []ProposedTask
	Subtasks  []ProposedSubtask
	Declined  string
}

type AskInput struct {
	Question string
}

type SpeechInput struct {
	Audio    io.Reader
	Filename string
}

// AskOutput is the result of one assistant request.
type AskOutput struct {
	Status       string
	ErrorMessage string
	Transcript   string
	Proposal     Proposal
}
