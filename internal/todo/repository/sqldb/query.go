package sqldb

import (
	"strings"

	repo "todo-assistant/internal/todo/repository"
)

// buildGetOneTaskListQuery builds WHERE clause + args for GetOneTaskList.
// All set fields are applied as AND conditions.
func (r *implRepository) buildGetOneTaskListQuery(opt repo.GetOneTaskListOptions) (string, []any) {
	conditions := []string{"user_id = ?"}
	args := []any{opt.UserID}

	if opt.ID > 0 {
		conditions = append(conditions, "id = ?")
		args = append(args, opt.ID)
	}
	if name := strings.TrimSpace(opt.Name); name != "" {
		conditions = append(conditions, "lower(name) = lower(CAST(? AS TEXT))")
		args = append(args, name)
	}
	return strings.Join(conditions, " AND "), args
}

// buildGetOneTaskQuery builds WHERE clause + args for GetOneTask.
func (r *implRepository) buildGetOneTaskQuery(opt repo.GetOneTaskOptions) (string, []any) {
	conditions := []string{"user_id = ?"}
	args := []any{opt.UserID}

	if opt.ID > 0 {
		conditions = append(conditions, "id = ?")
		args = append(args, opt.ID)
	}
	if name := strings.TrimSpace(opt.Name); name != "" {
		conditions = append(conditions, "lower(name) = lower(CAST(? AS TEXT))")
		args = append(args, name)
	}
	return strings.Join(conditions, " AND "), args
}

// buildListTasksQuery builds the WHERE + ORDER clause for ListTasks.
func (r *implRepository) buildListTasksQuery(opt repo.ListTasksOptions) (string, []any) {
	conditions := []string{"user_id = ?"}
	args := []any{opt.UserID}

	if opt.TaskListID > 0 {
		conditions = append(conditions, "id IN (SELECT task_id FROM task_list_tasks WHERE task_list_id = ?)")
		args = append(args, opt.TaskListID)
	}

	return "WHERE " + strings.Join(conditions, " AND ") +
		" ORDER BY due_date IS NULL, due_date, due_time IS NULL, due_time, id", args
}

// buildGetOneSubtaskQuery builds WHERE clause + args for GetOneSubtask.
func (r *implRepository) buildGetOneSubtaskQuery(opt repo.GetOneSubtaskOptions) (string, []any) {
	conditions := []string{"user_id = ?"}
	args := []any{opt.UserID}

	if opt.ID > 0 {
		conditions = append(conditions, "id = ?")
		args = append(args, opt.ID)
	}
	if opt.TaskID > 0 {
		conditions = append(conditions, "task_id = ?")
		args = append(args, opt.TaskID)
	}
	if name := strings.TrimSpace(opt.Name); name != "" {
		conditions = append(conditions, "lower(name) = lower(CAST(? AS TEXT))")
		args = append(args, name)
	}
	return strings.Join(conditions, " AND "), args
}
