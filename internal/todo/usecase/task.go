package usecase

import (
	"context"
	"errors"

	"todo-assistant/internal/model"
	"todo-assistant/internal/todo"
	repo "todo-assistant/internal/todo/repository"
)

// ListTasks returns the user's tasks ordered by due date.
func (uc *implUseCase) ListTasks(ctx context.Context, sc model.Scope, input todo.ListTasksInput) (todo.ListTasksOutput, error) {
	tasks, err := uc.repo.ListTasks(ctx, repo.ListTasksOptions{UserID: sc.UserID, TaskListID: input.TaskListID})
	if err != nil {
		uc.l.Errorf(ctx, "uc.ListTasks ListTasks: %v", err)
		return todo.ListTasksOutput{}, err
	}
	return todo.ListTasksOutput{Retrieved: uc.now(), Tasks: tasks}, nil
}

// CreateTask creates a task after checking name uniqueness and list ownership.
func (uc *implUseCase) CreateTask(ctx context.Context, sc model.Scope, input todo.CreateTaskInput) (model.Task, error) {
	name, err := cleanName(input.Name)
	if err != nil {
		return model.Task{}, err
	}

	var created model.Task
	err = uc.repo.WithTx(ctx, func(ctx context.Context, tx repo.Repository) error {
		existing, err := tx.GetOneTask(ctx, repo.GetOneTaskOptions{UserID: sc.UserID, Name: name})
		if err != nil {
			return err
		}
		if existing.ID != 0 {
			return todo.ErrDuplicateName
		}

		for _, id := range input.TaskListIDs {
			tl, err := tx.GetOneTaskList(ctx, repo.GetOneTaskListOptions{UserID: sc.UserID, ID: id})
			if err != nil {
				return err
			}
			if tl.ID == 0 {
				return todo.ErrTaskListNotFound
			}
		}

		created, err = tx.CreateTask(ctx, repo.CreateTaskOptions{
			UserID:        sc.UserID,
			Name:          name,
			Starred:       input.Starred,
			Due:           input.Due,
			Priority:      model.ClampPriority(input.Priority),
			ProgressNotes: input.ProgressNotes,
			GeneralNotes:  input.GeneralNotes,
			TaskListIDs:   input.TaskListIDs,
		})
		return err
	})
	if err != nil {
		err = mapRepoErr(err)
		if !errors.Is(err, todo.ErrDuplicateName) && !errors.Is(err, todo.ErrTaskListNotFound) {
			uc.l.Errorf(ctx, "uc.CreateTask: %v", err)
		}
		return model.Task{}, err
	}
	return created, nil
}

// DetailTask returns one task with its subtasks.
func (uc *implUseCase) DetailTask(ctx context.Context, sc model.Scope, id int64) (todo.DetailTaskOutput, error) {
	t, err := uc.repo.GetOneTask(ctx, repo.GetOneTaskOptions{UserID: sc.UserID, ID: id})
	if err != nil {
		uc.l.Errorf(ctx, "uc.DetailTask GetOneTask: %v", err)
		return todo.DetailTaskOutput{}, err
	}
	if t.ID == 0 {
		return todo.DetailTaskOutput{}, todo.ErrTaskNotFound
	}

	subtasks, err := uc.repo.ListSubtasks(ctx, repo.ListSubtasksOptions{UserID: sc.UserID, TaskID: id})
	if err != nil {
		uc.l.Errorf(ctx, "uc.DetailTask ListSubtasks: %v", err)
		return todo.DetailTaskOutput{}, err
	}
	return todo.DetailTaskOutput{Task: t, Subtasks: subtasks}, nil
}

func (uc *implUseCase) SetComplete(ctx context.Context, sc model.Scope, id int64, complete bool) (model.Task, error) {
	return uc.updateFlags(ctx, repo.UpdateTaskFlagsOptions{UserID: sc.UserID, ID: id, Complete: &complete})
}

func (uc *implUseCase) SetStarred(ctx context.Context, sc model.Scope, id int64, starred bool) (model.Task, error) {
	return uc.updateFlags(ctx, repo.UpdateTaskFlagsOptions{UserID: sc.UserID, ID: id, Starred: &starred})
}

func (uc *implUseCase) updateFlags(ctx context.Context, opt repo.UpdateTaskFlagsOptions) (model.Task, error) {
	t, err := uc.repo.UpdateTaskFlags(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "uc.updateFlags UpdateTaskFlags: %v", err)
		return model.Task{}, err
	}
	if t.ID == 0 {
		return model.Task{}, todo.ErrTaskNotFound
	}
	return t, nil
}

// DeleteTask removes a task. Returns ErrTaskNotFound when not found.
func (uc *implUseCase) DeleteTask(ctx context.Context, sc model.Scope, id int64) error {
	existing, err := uc.repo.GetOneTask(ctx, repo.GetOneTaskOptions{UserID: sc.UserID, ID: id})
	if err != nil {
		uc.l.Errorf(ctx, "uc.DeleteTask GetOneTask: %v", err)
		return err
	}
	if existing.ID == 0 {
		return todo.ErrTaskNotFound
	}
	if err := uc.repo.DeleteTask(ctx, sc.UserID, id); err != nil {
		uc.l.Errorf(ctx, "uc.DeleteTask DeleteTask: %v", err)
		return err
	}
	return nil
}
