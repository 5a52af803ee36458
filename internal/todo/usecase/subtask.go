package usecase

import (
	"context"

	"todo-assistant/internal/model"
	"todo-assistant/internal/todo"
	repo "todo-assistant/internal/todo/repository"
)

func (uc *implUseCase) ListSubtasks(ctx context.Context, sc model.Scope, taskID int64) ([]model.Subtask, error) {
	t, err := uc.repo.GetOneTask(ctx, repo.GetOneTaskOptions{UserID: sc.UserID, ID: taskID})
	if err != nil {
		uc.l.Errorf(ctx, "uc.ListSubtasks GetOneTask: %v", err)
		return nil, err
	}
	if t.ID == 0 {
		return nil, todo.ErrTaskNotFound
	}

	subtasks, err := uc.repo.ListSubtasks(ctx, repo.ListSubtasksOptions{UserID: sc.UserID, TaskID: taskID})
	if err != nil {
		uc.l.Errorf(ctx, "uc.ListSubtasks ListSubtasks: %v", err)
		return nil, err
	}
	return subtasks, nil
}

// CreateSubtask adds a step to a task. Names are unique within the task.
func (uc *implUseCase) CreateSubtask(ctx context.Context, sc model.Scope, input todo.CreateSubtaskInput) (model.Subtask, error) {
	name, err := cleanName(input.Name)
	if err != nil {
		return model.Subtask{}, err
	}

	st, err := uc.repo.CreateSubtask(ctx, repo.CreateSubtaskOptions{
		UserID:   sc.UserID,
		TaskID:   input.TaskID,
		Name:     name,
		Priority: model.ClampPriority(input.Priority),
	})
	if err != nil {
		return model.Subtask{}, mapRepoErr(err)
	}
	if st.ID == 0 {
		return model.Subtask{}, todo.ErrTaskNotFound
	}
	return st, nil
}

func (uc *implUseCase) DeleteSubtask(ctx context.Context, sc model.Scope, id int64) error {
	st, err := uc.repo.GetOneSubtask(ctx, repo.GetOneSubtaskOptions{UserID: sc.UserID, ID: id})
	if err != nil {
		uc.l.Errorf(ctx, "uc.DeleteSubtask GetOneSubtask: %v", err)
		return err
	}
	if st.ID == 0 {
		return todo.ErrSubtaskNotFound
	}
	if err := uc.repo.DeleteSubtask(ctx, sc.UserID, id); err != nil {
		uc.l.Errorf(ctx, "uc.DeleteSubtask DeleteSubtask: %v", err)
		return err
	}
	return nil
}
