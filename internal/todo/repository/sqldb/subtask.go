package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"todo-assistant/internal/model"
	repo "todo-assistant/internal/todo/repository"
)

const subtaskColumns = `id, task_id, user_id, name, complete, priority`

func scanSubtask(row rowScanner) (model.Subtask, error) {
	var (
		st       model.Subtask
		priority sql.NullInt64
	)
	if err := row.Scan(&st.ID, &st.TaskID, &st.UserID, &st.Name, &st.Complete, &priority); err != nil {
		return model.Subtask{}, err
	}
	st.Priority = intPtr(priority)
	return st, nil
}

// CreateSubtask inserts a subtask under a task owned by the same user.
// Returns the zero value when the parent task is not the user's.
func (r *implRepository) CreateSubtask(ctx context.Context, opt repo.CreateSubtaskOptions) (model.Subtask, error) {
	if opt.UserID <= 0 {
		return model.Subtask{}, repo.ErrMissingScope
	}

	query := r.rebind(`
		INSERT INTO subtasks (task_id, user_id, name, priority)
		SELECT t.id, t.user_id, CAST(? AS TEXT), CAST(? AS INTEGER) FROM tasks t WHERE t.id = ? AND t.user_id = ?
		RETURNING ` + subtaskColumns)

	st, err := scanSubtask(r.q.QueryRowContext(ctx, query,
		strings.TrimSpace(opt.Name), nullInt(opt.Priority), opt.TaskID, opt.UserID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Subtask{}, nil
	}
	if err != nil {
		return model.Subtask{}, r.mapWriteErr(ctx, "CreateSubtask", err, repo.ErrFailedToInsert)
	}
	return st, nil
}

// GetOneSubtask returns the zero value (ID == 0) when not found.
func (r *implRepository) GetOneSubtask(ctx context.Context, opt repo.GetOneSubtaskOptions) (model.Subtask, error) {
	if opt.UserID <= 0 {
		return model.Subtask{}, repo.ErrMissingScope
	}

	conds, args := r.buildGetOneSubtaskQuery(opt)
	query := r.rebind(`SELECT ` + subtaskColumns + ` FROM subtasks WHERE ` + conds + ` LIMIT 1`)

	st, err := scanSubtask(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Subtask{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneSubtask"), err)
		return model.Subtask{}, repo.ErrFailedToGet
	}
	return st, nil
}

// ListSubtasks returns the subtasks of one task, or of all the user's tasks
// when TaskID is zero.
func (r *implRepository) ListSubtasks(ctx context.Context, opt repo.ListSubtasksOptions) ([]model.Subtask, error) {
	if opt.UserID <= 0 {
		return nil, repo.ErrMissingScope
	}

	query := `SELECT ` + subtaskColumns + ` FROM subtasks WHERE user_id = ?`
	args := []any{opt.UserID}
	if opt.TaskID > 0 {
		query += ` AND task_id = ?`
		args = append(args, opt.TaskID)
	}
	query += ` ORDER BY task_id, priority IS NULL, priority DESC, id`

	rows, err := r.q.QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListSubtasks"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var subtasks []model.Subtask
	for rows.Next() {
		st, err := scanSubtask(rows)
		if err != nil {
			return nil, repo.ErrFailedToList
		}
		subtasks = append(subtasks, st)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListSubtasks"), err)
		return nil, repo.ErrFailedToList
	}
	return subtasks, nil
}

// DeleteSubtask removes a subtask owned by the user.
func (r *implRepository) DeleteSubtask(ctx context.Context, userID, id int64) error {
	if userID <= 0 {
		return repo.ErrMissingScope
	}

	query := r.rebind(`DELETE FROM subtasks WHERE id = ? AND user_id = ?`)
	if _, err := r.q.ExecContext(ctx, query, id, userID); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteSubtask"), err)
		return repo.ErrFailedToDelete
	}
	return nil
}
