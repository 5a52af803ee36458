package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"todo-assistant/internal/model"
	repo "todo-assistant/internal/todo/repository"
	"todo-assistant/pkg/datemath"
)

const taskColumns = `id, user_id, name, complete, starred, due_date, due_time, priority, progress_notes, general_notes`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (model.Task, error) {
	var (
		t        model.Task
		dueDate  sql.NullString
		dueTime  sql.NullString
		priority sql.NullInt64
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Complete, &t.Starred,
		&dueDate, &dueTime, &priority, &t.ProgressNotes, &t.GeneralNotes); err != nil {
		return model.Task{}, err
	}

	due, err := datemath.ParseStored(dueDate.String, dueTime.String)
	if err != nil {
		return model.Task{}, err
	}
	t.Due = due
	t.Priority = intPtr(priority)
	return t, nil
}

// CreateTask inserts a task and its list memberships.
func (r *implRepository) CreateTask(ctx context.Context, opt repo.CreateTaskOptions) (model.Task, error) {
	if opt.UserID <= 0 {
		return model.Task{}, repo.ErrMissingScope
	}

	query := r.rebind(`
		INSERT INTO tasks (user_id, name, complete, starred, due_date, due_time, priority, progress_notes, general_notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + taskColumns)

	t, err := scanTask(r.q.QueryRowContext(ctx, query,
		opt.UserID,
		strings.TrimSpace(opt.Name),
		opt.Complete,
		opt.Starred,
		nullString(opt.Due.DateString()),
		nullString(opt.Due.ClockString()),
		nullInt(opt.Priority),
		opt.ProgressNotes,
		opt.GeneralNotes,
	))
	if err != nil {
		return model.Task{}, r.mapWriteErr(ctx, "CreateTask", err, repo.ErrFailedToInsert)
	}

	for _, listID := range opt.TaskListIDs {
		if err := r.AttachTask(ctx, repo.MembershipOptions{UserID: opt.UserID, TaskListID: listID, TaskID: t.ID}); err != nil {
			return model.Task{}, err
		}
	}

	t.TaskListIDs, err = r.taskListIDs(ctx, t.ID)
	if err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// GetOneTask returns the zero value (ID == 0) when not found.
func (r *implRepository) GetOneTask(ctx context.Context, opt repo.GetOneTaskOptions) (model.Task, error) {
	if opt.UserID <= 0 {
		return model.Task{}, repo.ErrMissingScope
	}

	conds, args := r.buildGetOneTaskQuery(opt)
	query := r.rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE ` + conds + ` LIMIT 1`)

	t, err := scanTask(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneTask"), err)
		return model.Task{}, repo.ErrFailedToGet
	}

	t.TaskListIDs, err = r.taskListIDs(ctx, t.ID)
	if err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// ListTasks returns a user's tasks ordered by due date, undated last.
func (r *implRepository) ListTasks(ctx context.Context, opt repo.ListTasksOptions) ([]model.Task, error) {
	if opt.UserID <= 0 {
		return nil, repo.ErrMissingScope
	}

	mods, args := r.buildListTasksQuery(opt)
	tasks, err := r.queryTasks(ctx, r.rebind(`SELECT `+taskColumns+` FROM tasks `+mods), args...)
	if err != nil {
		return nil, err
	}

	memberships, err := r.memberships(ctx, opt.UserID)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].TaskListIDs = memberships[tasks[i].ID]
	}
	return tasks, nil
}

// UpdateTaskFlags sets complete and/or starred. Returns the zero value when
// the task does not exist for the user.
func (r *implRepository) UpdateTaskFlags(ctx context.Context, opt repo.UpdateTaskFlagsOptions) (model.Task, error) {
	if opt.UserID <= 0 {
		return model.Task{}, repo.ErrMissingScope
	}

	var (
		sets []string
		args []any
	)
	if opt.Complete != nil {
		sets = append(sets, "complete = ?")
		args = append(args, *opt.Complete)
	}
	if opt.Starred != nil {
		sets = append(sets, "starred = ?")
		args = append(args, *opt.Starred)
	}
	if len(sets) == 0 {
		return r.GetOneTask(ctx, repo.GetOneTaskOptions{UserID: opt.UserID, ID: opt.ID})
	}

	query := r.rebind(`UPDATE tasks SET ` + strings.Join(sets, ", ") +
		` WHERE id = ? AND user_id = ? RETURNING ` + taskColumns)
	args = append(args, opt.ID, opt.UserID)

	t, err := scanTask(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateTaskFlags"), err)
		return model.Task{}, repo.ErrFailedToUpdate
	}

	t.TaskListIDs, err = r.taskListIDs(ctx, t.ID)
	if err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// DeleteTask removes a task; subtasks and memberships cascade.
func (r *implRepository) DeleteTask(ctx context.Context, userID, id int64) error {
	if userID <= 0 {
		return repo.ErrMissingScope
	}

	query := r.rebind(`DELETE FROM tasks WHERE id = ? AND user_id = ?`)
	if _, err := r.q.ExecContext(ctx, query, id, userID); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteTask"), err)
		return repo.ErrFailedToDelete
	}
	return nil
}

// queryTasks runs query and closes the rows before returning.
func (r *implRepository) queryTasks(ctx context.Context, query string, args ...any) ([]model.Task, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListTasks"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListTasks"), err)
			return nil, repo.ErrFailedToList
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListTasks"), err)
		return nil, repo.ErrFailedToList
	}
	return tasks, nil
}

func (r *implRepository) taskListIDs(ctx context.Context, taskID int64) ([]int64, error) {
	query := r.rebind(`SELECT task_list_id FROM task_list_tasks WHERE task_id = ? ORDER BY task_list_id`)
	rows, err := r.q.QueryContext(ctx, query, taskID)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("taskListIDs"), err)
		return nil, repo.ErrFailedToGet
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, repo.ErrFailedToGet
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// memberships maps task id to list ids for all of a user's tasks.
func (r *implRepository) memberships(ctx context.Context, userID int64) (map[int64][]int64, error) {
	query := r.rebind(`
		SELECT m.task_id, m.task_list_id
		FROM task_list_tasks m JOIN tasks t ON t.id = m.task_id
		WHERE t.user_id = ?
		ORDER BY m.task_id, m.task_list_id`)
	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("memberships"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	out := make(map[int64][]int64)
	for rows.Next() {
		var taskID, listID int64
		if err := rows.Scan(&taskID, &listID); err != nil {
			return nil, repo.ErrFailedToList
		}
		out[taskID] = append(out[taskID], listID)
	}
	return out, rows.Err()
}
