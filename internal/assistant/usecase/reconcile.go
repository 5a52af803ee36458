package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"todo-assistant/internal/assistant"
	"todo-assistant/internal/model"
	repo "todo-assistant/internal/todo/repository"
)

// reconcile writes the proposal into the caller's store in one transaction:
// task lists, then tasks, then subtasks. Entities whose name already exists
// are reused. Any failure rolls back the whole proposal.
func (uc *implUseCase) reconcile(ctx context.Context, sc model.Scope, p assistant.Proposal) error {
	err := uc.repo.WithTx(ctx, func(ctx context.Context, tx repo.Repository) error {
		r := reconciler{tx: tx, userID: sc.UserID, lists: map[string]int64{}}
		for _, tl := range p.TaskLists {
			if _, err := r.ensureTaskList(ctx, tl.Name); err != nil {
				return err
			}
		}
		for _, t := range p.Tasks {
			if err := r.ensureTask(ctx, t); err != nil {
				return err
			}
		}
		for _, st := range p.Subtasks {
			if err := r.ensureSubtask(ctx, st); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		return nil
	}

	if errors.Is(err, repo.ErrDuplicate) {
		err = fmt.Errorf("%w: %v", assistant.ErrConflict, err)
	}
	if errors.Is(err, assistant.ErrUnresolvedReference) {
		uc.l.Warnf(ctx, "uc.Ask reconcile: %v", err)
	} else {
		uc.l.Errorf(ctx, "uc.Ask reconcile: %v", err)
	}
	return err
}

// reconciler carries one transaction's lookups. lists caches list ids by
// lower-cased name so repeated names in a proposal resolve to one record.
type reconciler struct {
	tx     repo.Repository
	userID int64
	lists  map[string]int64
}

func (r *reconciler) ensureTaskList(ctx context.Context, name string) (int64, error) {
	key := strings.ToLower(name)
	if id, ok := r.lists[key]; ok {
		return id, nil
	}

	existing, err := r.tx.GetOneTaskList(ctx, repo.GetOneTaskListOptions{UserID: r.userID, Name: name})
	if err != nil {
		return 0, err
	}
	if existing.ID == 0 {
		existing, err = r.tx.CreateTaskList(ctx, repo.CreateTaskListOptions{UserID: r.userID, Name: name})
		if err != nil {
			return 0, err
		}
	}

	r.lists[key] = existing.ID
	return existing.ID, nil
}

// resolveTaskList finds a list created earlier in this proposal or owned by the user.
func (r *reconciler) resolveTaskList(ctx context.Context, name string) (int64, error) {
	if id, ok := r.lists[strings.ToLower(name)]; ok {
		return id, nil
	}
	tl, err := r.tx.GetOneTaskList(ctx, repo.GetOneTaskListOptions{UserID: r.userID, Name: name})
	if err != nil {
		return 0, err
	}
	if tl.ID != 0 {
		r.lists[strings.ToLower(name)] = tl.ID
	}
	return tl.ID, nil
}

func (r *reconciler) ensureTask(ctx context.Context, t assistant.ProposedTask) error {
	listIDs := make([]int64, 0, len(t.TaskListNames))
	for _, name := range t.TaskListNames {
		id, err := r.resolveTaskList(ctx, name)
		if err != nil {
			return err
		}
		if id == 0 {
			return fmt.Errorf("%w: task %q names unknown task list %q", assistant.ErrUnresolvedReference, t.Name, name)
		}
		if !slices.Contains(listIDs, id) {
			listIDs = append(listIDs, id)
		}
	}

	existing, err := r.tx.GetOneTask(ctx, repo.GetOneTaskOptions{UserID: r.userID, Name: t.Name})
	if err != nil {
		return err
	}

	if existing.ID == 0 {
		_, err = r.tx.CreateTask(ctx, repo.CreateTaskOptions{
			UserID:      r.userID,
			Name:        t.Name,
			Starred:     t.Starred,
			Due:         t.Due,
			Priority:    model.ClampPriority(t.Priority),
			TaskListIDs: listIDs,
		})
		return err
	}

	for _, id := range listIDs {
		if slices.Contains(existing.TaskListIDs, id) {
			continue
		}
		if err := r.tx.AttachTask(ctx, repo.MembershipOptions{UserID: r.userID, TaskListID: id, TaskID: existing.ID}); err != nil {
			return err
		}
	}
	return nil
}

func (r *reconciler) ensureSubtask(ctx context.Context, st assistant.ProposedSubtask) error {
	parent, err := r.tx.GetOneTask(ctx, repo.GetOneTaskOptions{UserID: r.userID, Name: st.ParentTaskName})
	if err != nil {
		return err
	}
	if parent.ID == 0 {
		return fmt.Errorf("%w: subtask %q names unknown parent task %q", assistant.ErrUnresolvedReference, st.Name, st.ParentTaskName)
	}

	existing, err := r.tx.GetOneSubtask(ctx, repo.GetOneSubtaskOptions{UserID: r.userID, TaskID: parent.ID, Name: st.Name})
	if err != nil {
		return err
	}
	if existing.ID != 0 {
		return nil
	}

	created, err := r.tx.CreateSubtask(ctx, repo.CreateSubtaskOptions{
		UserID:   r.userID,
		TaskID:   parent.ID,
		Name:     st.Name,
		Priority: model.ClampPriority(st.Priority),
	})
	if err != nil {
		return err
	}
	if created.ID == 0 {
		return fmt.Errorf("%w: parent task %q disappeared", assistant.ErrUnresolvedReference, st.ParentTaskName)
	}
	return nil
}
