package usecase

import (
	"context"

	"todo-assistant/internal/model"
	"todo-assistant/internal/todo"
	repo "todo-assistant/internal/todo/repository"
)

func (uc *implUseCase) ListTaskLists(ctx context.Context, sc model.Scope) ([]model.TaskList, error) {
	lists, err := uc.repo.ListTaskLists(ctx, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "uc.ListTaskLists ListTaskLists: %v", err)
		return nil, err
	}
	return lists, nil
}

// CreateTaskList creates a list. Names are unique per user, ignoring case.
func (uc *implUseCase) CreateTaskList(ctx context.Context, sc model.Scope, name string) (model.TaskList, error) {
	name, err := cleanName(name)
	if err != nil {
		return model.TaskList{}, err
	}

	existing, err := uc.repo.GetOneTaskList(ctx, repo.GetOneTaskListOptions{UserID: sc.UserID, Name: name})
	if err != nil {
		uc.l.Errorf(ctx, "uc.CreateTaskList GetOneTaskList: %v", err)
		return model.TaskList{}, err
	}
	if existing.ID != 0 {
		return model.TaskList{}, todo.ErrDuplicateName
	}

	tl, err := uc.repo.CreateTaskList(ctx, repo.CreateTaskListOptions{UserID: sc.UserID, Name: name})
	if err != nil {
		return model.TaskList{}, mapRepoErr(err)
	}
	return tl, nil
}

func (uc *implUseCase) DeleteTaskList(ctx context.Context, sc model.Scope, id int64) error {
	if _, err := uc.ownedList(ctx, sc, id); err != nil {
		return err
	}
	if err := uc.repo.DeleteTaskList(ctx, sc.UserID, id); err != nil {
		uc.l.Errorf(ctx, "uc.DeleteTaskList DeleteTaskList: %v", err)
		return err
	}
	return nil
}

// AttachTask adds a task to a list. Attaching twice is a no-op.
func (uc *implUseCase) AttachTask(ctx context.Context, sc model.Scope, taskListID, taskID int64) error {
	if err := uc.checkMembership(ctx, sc, taskListID, taskID); err != nil {
		return err
	}
	opt := repo.MembershipOptions{UserID: sc.UserID, TaskListID: taskListID, TaskID: taskID}
	if err := uc.repo.AttachTask(ctx, opt); err != nil {
		uc.l.Errorf(ctx, "uc.AttachTask AttachTask: %v", err)
		return err
	}
	return nil
}

func (uc *implUseCase) DetachTask(ctx context.Context, sc model.Scope, taskListID, taskID int64) error {
	if err := uc.checkMembership(ctx, sc, taskListID, taskID); err != nil {
		return err
	}
	opt := repo.MembershipOptions{UserID: sc.UserID, TaskListID: taskListID, TaskID: taskID}
	if err := uc.repo.DetachTask(ctx, opt); err != nil {
		uc.l.Errorf(ctx, "uc.DetachTask DetachTask: %v", err)
		return err
	}
	return nil
}

func (uc *implUseCase) ownedList(ctx context.Context, sc model.Scope, id int64) (model.TaskList, error) {
	tl, err := uc.repo.GetOneTaskList(ctx, repo.GetOneTaskListOptions{UserID: sc.UserID, ID: id})
	if err != nil {
		uc.l.Errorf(ctx, "uc.ownedList GetOneTaskList: %v", err)
		return model.TaskList{}, err
	}
	if tl.ID == 0 {
		return model.TaskList{}, todo.ErrTaskListNotFound
	}
	return tl, nil
}

func (uc *implUseCase) checkMembership(ctx context.Context, sc model.Scope, taskListID, taskID int64) error {
	if _, err := uc.ownedList(ctx, sc, taskListID); err != nil {
		return err
	}
	t, err := uc.repo.GetOneTask(ctx, repo.GetOneTaskOptions{UserID: sc.UserID, ID: taskID})
	if err != nil {
		uc.l.Errorf(ctx, "uc.checkMembership GetOneTask: %v", err)
		return err
	}
	if t.ID == 0 {
		return todo.ErrTaskNotFound
	}
	return nil
}
