package sqldb

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"todo-assistant/internal/todo/repository"
	"todo-assistant/pkg/database"
	"todo-assistant/pkg/datemath"
	"todo-assistant/pkg/log"
)

func newTestRepo(t *testing.T) (repository.Repository, func(name string) int64) {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, database.Config{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "todo.db"),
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(ctx, db, database.DriverSQLite); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	addUser := func(name string) int64 {
		var id int64
		err := db.QueryRowContext(ctx,
			`INSERT INTO users (username, password_hash) VALUES (?, 'x') RETURNING id`, name).Scan(&id)
		if err != nil {
			t.Fatalf("insert user: %v", err)
		}
		return id
	}
	return New(db, database.DriverSQLite, log.NewNop()), addUser
}

func intp(v int) *int { return &v }

func TestTaskListLifecycle(t *testing.T) {
	ctx := context.Background()
	r, addUser := newTestRepo(t)
	uid := addUser("david")

	tl, err := r.CreateTaskList(ctx, repository.CreateTaskListOptions{UserID: uid, Name: "  Family "})
	if err != nil {
		t.Fatalf("CreateTaskList: %v", err)
	}
	if tl.ID == 0 || tl.Name != "Family" {
		t.Fatalf("unexpected list %+v", tl)
	}

	_, err = r.CreateTaskList(ctx, repository.CreateTaskListOptions{UserID: uid, Name: "family"})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	got, err := r.GetOneTaskList(ctx, repository.GetOneTaskListOptions{UserID: uid, Name: "FAMILY"})
	if err != nil || got.ID != tl.ID {
		t.Fatalf("GetOneTaskList by name = %+v, %v", got, err)
	}

	if err := r.DeleteTaskList(ctx, uid, tl.ID); err != nil {
		t.Fatalf("DeleteTaskList: %v", err)
	}
	lists, err := r.ListTaskLists(ctx, uid)
	if err != nil || len(lists) != 0 {
		t.Fatalf("ListTaskLists after delete = %v, %v", lists, err)
	}
}

func TestTaskCreateAndList(t *testing.T) {
	ctx := context.Background()
	r, addUser := newTestRepo(t)
	uid := addUser("david")

	family, _ := r.CreateTaskList(ctx, repository.CreateTaskListOptions{UserID: uid, Name: "Family"})

	later := datemath.NewDueDate(2024, 12, 25).WithTime(14, 0)
	sooner := datemath.NewDueDate(2024, 12, 20)

	t1, err := r.CreateTask(ctx, repository.CreateTaskOptions{
		UserID: uid, Name: "Buy gifts", Due: later, Priority: intp(7), TaskListIDs: []int64{family.ID},
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if len(t1.TaskListIDs) != 1 || t1.TaskListIDs[0] != family.ID {
		t.Errorf("memberships = %v", t1.TaskListIDs)
	}
	if t1.Due.String() != "2024-12-25,14:00" {
		t.Errorf("due = %s", t1.Due)
	}

	if _, err := r.CreateTask(ctx, repository.CreateTaskOptions{UserID: uid, Name: "Call mom", Due: sooner}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := r.CreateTask(ctx, repository.CreateTaskOptions{UserID: uid, Name: "Someday"}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	tasks, err := r.ListTasks(ctx, repository.ListTasksOptions{UserID: uid})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	var names []string
	for _, tk := range tasks {
		names = append(names, tk.Name)
	}
	want := []string{"Call mom", "Buy gifts", "Someday"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
	if tasks[1].Priority == nil || *tasks[1].Priority != 7 {
		t.Errorf("priority not persisted: %v", tasks[1].Priority)
	}

	inList, err := r.ListTasks(ctx, repository.ListTasksOptions{UserID: uid, TaskListID: family.ID})
	if err != nil || len(inList) != 1 || inList[0].ID != t1.ID {
		t.Fatalf("ListTasks by list = %v, %v", inList, err)
	}
}

func TestUserScoping(t *testing.T) {
	ctx := context.Background()
	r, addUser := newTestRepo(t)
	u1 := addUser("alice")
	u2 := addUser("bob")

	task, err := r.CreateTask(ctx, repository.CreateTaskOptions{UserID: u1, Name: "Private"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	got, err := r.GetOneTask(ctx, repository.GetOneTaskOptions{UserID: u2, ID: task.ID})
	if err != nil || got.ID != 0 {
		t.Fatalf("other user should not see task: %+v, %v", got, err)
	}

	list, _ := r.CreateTaskList(ctx, repository.CreateTaskListOptions{UserID: u2, Name: "Mine"})
	if err := r.AttachTask(ctx, repository.MembershipOptions{UserID: u2, TaskListID: list.ID, TaskID: task.ID}); err != nil {
		t.Fatalf("AttachTask: %v", err)
	}
	got, _ = r.GetOneTask(ctx, repository.GetOneTaskOptions{UserID: u1, ID: task.ID})
	if len(got.TaskListIDs) != 0 {
		t.Errorf("cross-user membership created: %v", got.TaskListIDs)
	}

	st, err := r.CreateSubtask(ctx, repository.CreateSubtaskOptions{UserID: u2, TaskID: task.ID, Name: "sneaky"})
	if err != nil || st.ID != 0 {
		t.Errorf("cross-user subtask = %+v, %v", st, err)
	}

	if err := r.DeleteTask(ctx, u2, task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	got, _ = r.GetOneTask(ctx, repository.GetOneTaskOptions{UserID: u1, ID: task.ID})
	if got.ID != task.ID {
		t.Error("task deleted by another user")
	}

	if _, err := r.ListTasks(ctx, repository.ListTasksOptions{}); !errors.Is(err, repository.ErrMissingScope) {
		t.Errorf("expected ErrMissingScope, got %v", err)
	}
}

func TestUpdateTaskFlags(t *testing.T) {
	ctx := context.Background()
	r, addUser := newTestRepo(t)
	uid := addUser("david")

	task, _ := r.CreateTask(ctx, repository.CreateTaskOptions{UserID: uid, Name: "Laundry"})
	yes := true

	got, err := r.UpdateTaskFlags(ctx, repository.UpdateTaskFlagsOptions{UserID: uid, ID: task.ID, Complete: &yes})
	if err != nil {
		t.Fatalf("UpdateTaskFlags: %v", err)
	}
	if !got.Complete || got.Starred {
		t.Errorf("flags = complete:%v starred:%v", got.Complete, got.Starred)
	}

	got, err = r.UpdateTaskFlags(ctx, repository.UpdateTaskFlagsOptions{UserID: uid, ID: 9999, Starred: &yes})
	if err != nil || got.ID != 0 {
		t.Errorf("missing task update = %+v, %v", got, err)
	}
}

func TestSubtasks(t *testing.T) {
	ctx := context.Background()
	r, addUser := newTestRepo(t)
	uid := addUser("david")

	task, _ := r.CreateTask(ctx, repository.CreateTaskOptions{UserID: uid, Name: "Trip"})

	st, err := r.CreateSubtask(ctx, repository.CreateSubtaskOptions{UserID: uid, TaskID: task.ID, Name: "Pack", Priority: intp(3)})
	if err != nil || st.ID == 0 {
		t.Fatalf("CreateSubtask = %+v, %v", st, err)
	}
	if _, err := r.CreateSubtask(ctx, repository.CreateSubtaskOptions{UserID: uid, TaskID: task.ID, Name: "pack"}); !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	found, err := r.GetOneSubtask(ctx, repository.GetOneSubtaskOptions{UserID: uid, TaskID: task.ID, Name: "PACK"})
	if err != nil || found.ID != st.ID {
		t.Fatalf("GetOneSubtask = %+v, %v", found, err)
	}

	if err := r.DeleteTask(ctx, uid, task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	subs, err := r.ListSubtasks(ctx, repository.ListSubtasksOptions{UserID: uid})
	if err != nil || len(subs) != 0 {
		t.Errorf("subtasks should cascade: %v, %v", subs, err)
	}
}

func TestWithTxRollback(t *testing.T) {
	ctx := context.Background()
	r, addUser := newTestRepo(t)
	uid := addUser("david")
	boom := errors.New("boom")

	err := r.WithTx(ctx, func(ctx context.Context, tx repository.Repository) error {
		if _, err := tx.CreateTaskList(ctx, repository.CreateTaskListOptions{UserID: uid, Name: "Work"}); err != nil {
			return err
		}
		if _, err := tx.CreateTask(ctx, repository.CreateTaskOptions{UserID: uid, Name: "Report"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx err = %v", err)
	}

	lists, _ := r.ListTaskLists(ctx, uid)
	tasks, _ := r.ListTasks(ctx, repository.ListTasksOptions{UserID: uid})
	if len(lists) != 0 || len(tasks) != 0 {
		t.Errorf("rollback left rows: lists=%d tasks=%d", len(lists), len(tasks))
	}

	err = r.WithTx(ctx, func(ctx context.Context, tx repository.Repository) error {
		_, err := tx.CreateTaskList(ctx, repository.CreateTaskListOptions{UserID: uid, Name: "Work"})
		return err
	})
	if err != nil {
		t.Fatalf("WithTx commit: %v", err)
	}
	lists, _ = r.ListTaskLists(ctx, uid)
	if len(lists) != 1 {
		t.Errorf("commit lost rows: %v", lists)
	}
}
