package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"todo-assistant/internal/assistant"
	"todo-assistant/internal/model"
	"todo-assistant/pkg/datemath"
)

var fencedJSONRe = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(\\{.*?\\})\\s*```")

// dueResolver turns the model's duedate string into a DueDate.
type dueResolver func(s string) (datemath.DueDate, error)

type rawReply struct {
	TaskLists    *[]rawTaskList  `json:"tasklists"`
	NumTaskLists *int            `json:"numtasklists"`
	Tasks        *[]rawTask      `json:"tasks"`
	NumTasks     *int            `json:"numtasks"`
	Subtasks     *[]rawSubtask   `json:"subtasks"`
	NumSubtasks  *int            `json:"numsubtasks"`
	Error        json.RawMessage `json:"error"`
}

type rawTaskList struct {
	Name *string `json:"name"`
}

type rawTask struct {
	Name          *string         `json:"name"`
	Starred       json.RawMessage `json:"starred"`
	DueDate       json.RawMessage `json:"duedate"`
	Priority      json.RawMessage `json:"priority"`
	TaskListNames json.RawMessage `json:"tasklistnames"`
}

type rawSubtask struct {
	Name           *string         `json:"name"`
	Priority       json.RawMessage `json:"priority"`
	ParentTaskName *string         `json:"parenttaskname"`
}

// parseReply decodes the model reply into a Proposal. The returned warnings
// describe inconsistencies that did not prevent decoding.
func parseReply(reply string, resolve dueResolver) (assistant.Proposal, []string, error) {
	payload, ok := extractJSON(reply)
	if !ok {
		return assistant.Proposal{}, nil, fmt.Errorf("%w: no JSON object in reply", assistant.ErrMalformedModelOutput)
	}

	var raw rawReply
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return assistant.Proposal{}, nil, fmt.Errorf("%w: %v", assistant.ErrMalformedModelOutput, err)
	}

	if msg := declineMessage(raw.Error); msg != "" {
		return assistant.Proposal{Declined: msg}, nil, nil
	}

	switch {
	case raw.TaskLists == nil:
		return assistant.Proposal{}, nil, missingField("tasklists")
	case raw.Tasks == nil:
		return assistant.Proposal{}, nil, missingField("tasks")
	case raw.Subtasks == nil:
		return assistant.Proposal{}, nil, missingField("subtasks")
	}

	var p assistant.Proposal
	for i, tl := range *raw.TaskLists {
		name, err := requiredName(tl.Name, fmt.Sprintf("tasklists[%d].name", i))
		if err != nil {
			return assistant.Proposal{}, nil, err
		}
		p.TaskLists = append(p.TaskLists, assistant.ProposedTaskList{Name: name})
	}

	for i, t := range *raw.Tasks {
		task, err := decodeTask(i, t, resolve)
		if err != nil {
			return assistant.Proposal{}, nil, err
		}
		p.Tasks = append(p.Tasks, task)
	}

	for i, st := range *raw.Subtasks {
		name, err := requiredName(st.Name, fmt.Sprintf("subtasks[%d].name", i))
		if err != nil {
			return assistant.Proposal{}, nil, err
		}
		parent, err := requiredName(st.ParentTaskName, fmt.Sprintf("subtasks[%d].parenttaskname", i))
		if err != nil {
			return assistant.Proposal{}, nil, err
		}
		priority, err := decodePriority(st.Priority)
		if err != nil {
			return assistant.Proposal{}, nil, invalidField(fmt.Sprintf("subtasks[%d].priority", i), err)
		}
		p.Subtasks = append(p.Subtasks, assistant.ProposedSubtask{Name: name, Priority: priority, ParentTaskName: parent})
	}

	var warnings []string
	warnings = appendCountWarning(warnings, "numtasklists", raw.NumTaskLists, len(p.TaskLists))
	warnings = appendCountWarning(warnings, "numtasks", raw.NumTasks, len(p.Tasks))
	warnings = appendCountWarning(warnings, "numsubtasks", raw.NumSubtasks, len(p.Subtasks))

	return p, warnings, nil
}

func decodeTask(i int, t rawTask, resolve dueResolver) (assistant.ProposedTask, error) {
	field := func(name string) string { return fmt.Sprintf("tasks[%d].%s", i, name) }

	name, err := requiredName(t.Name, field("name"))
	if err != nil {
		return assistant.ProposedTask{}, err
	}
	starred, err := decodeBool(t.Starred)
	if err != nil {
		return assistant.ProposedTask{}, invalidField(field("starred"), err)
	}
	priority, err := decodePriority(t.Priority)
	if err != nil {
		return assistant.ProposedTask{}, invalidField(field("priority"), err)
	}
	lists, err := decodeNames(t.TaskListNames)
	if err != nil {
		return assistant.ProposedTask{}, invalidField(field("tasklistnames"), err)
	}

	dueText, err := decodeString(t.DueDate)
	if err != nil {
		return assistant.ProposedTask{}, invalidField(field("duedate"), err)
	}
	due, err := resolve(dueText)
	if err != nil {
		return assistant.ProposedTask{}, invalidField(field("duedate"), err)
	}

	return assistant.ProposedTask{
		Name:          name,
		Starred:       starred,
		Due:           due,
		Priority:      priority,
		TaskListNames: lists,
	}, nil
}

// extractJSON prefers a fenced block and falls back to the outermost braces.
func extractJSON(reply string) (string, bool) {
	if m := fencedJSONRe.FindStringSubmatch(reply); m != nil {
		return m[1], true
	}
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return reply[start : end+1], true
}

func declineMessage(raw json.RawMessage) string {
	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil {
		return ""
	}
	return strings.TrimSpace(msg)
}

func requiredName(name *string, field string) (string, error) {
	if name == nil {
		return "", missingField(field)
	}
	n := strings.TrimSpace(*name)
	if n == "" {
		return "", fmt.Errorf("%w: %s is empty", assistant.ErrMalformedModelOutput, field)
	}
	return n, nil
}

func missingField(field string) error {
	return fmt.Errorf("%w: missing %s", assistant.ErrMalformedModelOutput, field)
}

func invalidField(field string, err error) error {
	return fmt.Errorf("%w: invalid %s: %v", assistant.ErrMalformedModelOutput, field, err)
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func decodeString(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("expected a string")
	}
	return s, nil
}

// decodeBool accepts true, false, null and their string spellings.
func decodeBool(raw json.RawMessage) (bool, error) {
	if isNull(raw) {
		return false, nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, nil
	}
	s, err := decodeString(raw)
	if err != nil {
		return false, fmt.Errorf("expected a boolean")
	}
	if strings.TrimSpace(s) == "" {
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(s))
}

// decodePriority accepts a number, a numeric string or null, clamped to 1..10.
func decodePriority(raw json.RawMessage) (*int, error) {
	if isNull(raw) {
		return nil, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		s, serr := decodeString(raw)
		if serr != nil {
			return nil, fmt.Errorf("expected a number")
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		if f, err = strconv.ParseFloat(s, 64); err != nil {
			return nil, fmt.Errorf("expected a number, got %q", s)
		}
	}
	if math.IsNaN(f) {
		return nil, fmt.Errorf("expected a number, got NaN")
	}
	f = math.Max(model.MinPriority, math.Min(model.MaxPriority, math.Round(f)))
	v := int(f)
	return &v, nil
}

// decodeNames accepts a JSON array of strings or one comma-separated string.
func decodeNames(raw json.RawMessage) ([]string, error) {
	if isNull(raw) {
		return nil, nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		s, serr := decodeString(raw)
		if serr != nil {
			return nil, fmt.Errorf("expected a list of names")
		}
		items = strings.Split(s, ",")
	}

	var out []string
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		key := strings.ToLower(it)
		if it == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out, nil
}

func appendCountWarning(warnings []string, field string, reported *int, actual int) []string {
	if reported == nil || *reported == actual {
		return warnings
	}
	return append(warnings, fmt.Sprintf("%s=%d but %d decoded", field, *reported, actual))
}
