package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"todo-assistant/internal/model"
	repo "todo-assistant/internal/todo/repository"
)

const taskListColumns = `id, user_id, name`

// CreateTaskList inserts a list owned by opt.UserID.
func (r *implRepository) CreateTaskList(ctx context.Context, opt repo.CreateTaskListOptions) (model.TaskList, error) {
	if opt.UserID <= 0 {
		return model.TaskList{}, repo.ErrMissingScope
	}

	query := r.rebind(`INSERT INTO task_lists (user_id, name) VALUES (?, ?) RETURNING ` + taskListColumns)

	var tl model.TaskList
	err := r.q.QueryRowContext(ctx, query, opt.UserID, strings.TrimSpace(opt.Name)).Scan(&tl.ID, &tl.UserID, &tl.Name)
	if err != nil {
		return model.TaskList{}, r.mapWriteErr(ctx, "CreateTaskList", err, repo.ErrFailedToInsert)
	}
	return tl, nil
}

// GetOneTaskList returns the zero value (ID == 0) when not found.
func (r *implRepository) GetOneTaskList(ctx context.Context, opt repo.GetOneTaskListOptions) (model.TaskList, error) {
	if opt.UserID <= 0 {
		return model.TaskList{}, repo.ErrMissingScope
	}

	conds, args := r.buildGetOneTaskListQuery(opt)
	query := r.rebind(`SELECT ` + taskListColumns + ` FROM task_lists WHERE ` + conds + ` LIMIT 1`)

	var tl model.TaskList
	err := r.q.QueryRowContext(ctx, query, args...).Scan(&tl.ID, &tl.UserID, &tl.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TaskList{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneTaskList"), err)
		return model.TaskList{}, repo.ErrFailedToGet
	}
	return tl, nil
}

// ListTaskLists returns a user's lists ordered by name.
func (r *implRepository) ListTaskLists(ctx context.Context, userID int64) ([]model.TaskList, error) {
	if userID <= 0 {
		return nil, repo.ErrMissingScope
	}

	query := r.rebind(`SELECT ` + taskListColumns + ` FROM task_lists WHERE user_id = ? ORDER BY lower(name), id`)
	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListTaskLists"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var lists []model.TaskList
	for rows.Next() {
		var tl model.TaskList
		if err := rows.Scan(&tl.ID, &tl.UserID, &tl.Name); err != nil {
			return nil, repo.ErrFailedToList
		}
		lists = append(lists, tl)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListTaskLists"), err)
		return nil, repo.ErrFailedToList
	}
	return lists, nil
}

// DeleteTaskList removes a list and its memberships. Tasks stay.
func (r *implRepository) DeleteTaskList(ctx context.Context, userID, id int64) error {
	if userID <= 0 {
		return repo.ErrMissingScope
	}

	query := r.rebind(`DELETE FROM task_lists WHERE id = ? AND user_id = ?`)
	if _, err := r.q.ExecContext(ctx, query, id, userID); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteTaskList"), err)
		return repo.ErrFailedToDelete
	}
	return nil
}

// AttachTask links a task to a list when both belong to the user. Linking
// twice is a no-op.
func (r *implRepository) AttachTask(ctx context.Context, opt repo.MembershipOptions) error {
	if opt.UserID <= 0 {
		return repo.ErrMissingScope
	}

	query := r.rebind(`
		INSERT INTO task_list_tasks (task_list_id, task_id)
		SELECT l.id, t.id FROM task_lists l, tasks t
		WHERE l.id = ? AND l.user_id = ? AND t.id = ? AND t.user_id = ?
		ON CONFLICT DO NOTHING`)
	if _, err := r.q.ExecContext(ctx, query, opt.TaskListID, opt.UserID, opt.TaskID, opt.UserID); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("AttachTask"), err)
		return repo.ErrFailedToInsert
	}
	return nil
}

// DetachTask removes a membership owned by the user.
func (r *implRepository) DetachTask(ctx context.Context, opt repo.MembershipOptions) error {
	if opt.UserID <= 0 {
		return repo.ErrMissingScope
	}

	query := r.rebind(`
		DELETE FROM task_list_tasks
		WHERE task_list_id = ? AND task_id = ?
		AND task_list_id IN (SELECT id FROM task_lists WHERE user_id = ?)`)
	if _, err := r.q.ExecContext(ctx, query, opt.TaskListID, opt.TaskID, opt.UserID); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DetachTask"), err)
		return repo.ErrFailedToDelete
	}
	return nil
}
