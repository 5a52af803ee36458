package usecase

import (
	"context"
	"strings"

	"todo-assistant/internal/assistant"
	"todo-assistant/internal/model"
	repo "todo-assistant/internal/todo/repository"
)

// reidentify looks every proposed entity up by (user, name), and by parent
// for subtasks, and writes the stored id into the proposal. Reused entities
// keep their stored flags, due date and priority, so those are copied back
// too. It only reads, so calling it again yields the same result.
func (uc *implUseCase) reidentify(ctx context.Context, sc model.Scope, p *assistant.Proposal) error {
	for i := range p.TaskLists {
		tl, err := uc.repo.GetOneTaskList(ctx, repo.GetOneTaskListOptions{UserID: sc.UserID, Name: p.TaskLists[i].Name})
		if err != nil {
			return err
		}
		p.TaskLists[i].ID = tl.ID
	}

	parents := make(map[string]int64, len(p.Tasks))
	for i := range p.Tasks {
		t, err := uc.repo.GetOneTask(ctx, repo.GetOneTaskOptions{UserID: sc.UserID, Name: p.Tasks[i].Name})
		if err != nil {
			return err
		}
		p.Tasks[i].ID = t.ID
		if t.ID != 0 {
			p.Tasks[i].Starred = t.Starred
			p.Tasks[i].Due = t.Due
			p.Tasks[i].Priority = t.Priority
		}
		parents[strings.ToLower(p.Tasks[i].Name)] = t.ID
	}

	for i := range p.Subtasks {
		key := strings.ToLower(p.Subtasks[i].ParentTaskName)
		parentID, ok := parents[key]
		if !ok {
			t, err := uc.repo.GetOneTask(ctx, repo.GetOneTaskOptions{UserID: sc.UserID, Name: p.Subtasks[i].ParentTaskName})
			if err != nil {
				return err
			}
			parentID = t.ID
			parents[key] = parentID
		}
		if parentID == 0 {
			p.Subtasks[i].ID = 0
			continue
		}

		st, err := uc.repo.GetOneSubtask(ctx, repo.GetOneSubtaskOptions{UserID: sc.UserID, TaskID: parentID, Name: p.Subtasks[i].Name})
		if err != nil {
			return err
		}
		p.Subtasks[i].ID = st.ID
		if st.ID != 0 {
			p.Subtasks[i].Priority = st.Priority
		}
	}
	return nil
}
