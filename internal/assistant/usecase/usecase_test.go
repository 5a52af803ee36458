package usecase

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"todo-assistant/internal/assistant"
	"todo-assistant/internal/model"
	"todo-assistant/internal/todo/repository"
	todosqldb "todo-assistant/internal/todo/repository/sqldb"
	"todo-assistant/pkg/database"
	"todo-assistant/pkg/datemath"
	"todo-assistant/pkg/gcalendar"
	"todo-assistant/pkg/llmprovider"
	"todo-assistant/pkg/log"
)

type fakeLLM struct {
	reply    string
	err      error
	requests []*llmprovider.Request
}

func (f *fakeLLM) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &llmprovider.Response{Content: llmprovider.NewTextMessage(llmprovider.RoleAssistant, f.reply)}, nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	return f.text, f.err
}

type fakeCalendar struct {
	existing []gcalendar.Event
	created  []gcalendar.CreateEventRequest
	// block makes ListEvents wait for the context to end.
	block     bool
	deadlines []time.Time
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
	f.created = append(f.created, req)
	return &gcalendar.Event{ID: "ev", Summary: req.Summary}, nil
}

func (f *fakeCalendar) ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error) {
	if d, ok := ctx.Deadline(); ok {
		f.deadlines = append(f.deadlines, d)
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.existing, nil
}

type testEnv struct {
	uc   *implUseCase
	llm  *fakeLLM
	repo repository.Repository
	user func(name string) model.Scope
}

var fixedNow = time.Date(2024, 12, 20, 9, 30, 0, 0, time.UTC)

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, database.Config{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "assistant.db"),
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(ctx, db, database.DriverSQLite); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	dates, err := datemath.NewParser("UTC")
	if err != nil {
		t.Fatal(err)
	}

	r := todosqldb.New(db, database.DriverSQLite, log.NewNop())
	llm := &fakeLLM{}
	uc := New(log.NewNop(), r, llm, dates, opts)
	uc.now = func() time.Time { return fixedNow }

	user := func(name string) model.Scope {
		var id int64
		err := db.QueryRowContext(ctx,
			`INSERT INTO users (username, password_hash) VALUES (?, 'x') RETURNING id`, name).Scan(&id)
		if err != nil {
			t.Fatalf("insert user: %v", err)
		}
		return model.Scope{UserID: id, Username: name}
	}
	return &testEnv{uc: uc, llm: llm, repo: r, user: user}
}

func (e *testEnv) mustList(t *testing.T, sc model.Scope, name string) model.TaskList {
	t.Helper()
	tl, err := e.repo.CreateTaskList(context.Background(), repository.CreateTaskListOptions{UserID: sc.UserID, Name: name})
	if err != nil {
		t.Fatalf("CreateTaskList: %v", err)
	}
	return tl
}

func (e *testEnv) lists(t *testing.T, sc model.Scope) []model.TaskList {
	t.Helper()
	lists, err := e.repo.ListTaskLists(context.Background(), sc.UserID)
	if err != nil {
		t.Fatalf("ListTaskLists: %v", err)
	}
	return lists
}

func (e *testEnv) tasks(t *testing.T, sc model.Scope) []model.Task {
	t.Helper()
	tasks, err := e.repo.ListTasks(context.Background(), repository.ListTasksOptions{UserID: sc.UserID})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	return tasks
}

func TestAskFamilyScenario(t *testing.T) {
	env := newTestEnv(t, Options{})
	sc := env.user("david")
	family := env.mustList(t, sc, "Family")

	env.llm.reply = "Sure! ```json\n" + `{
		"tasklists": [{"name": "family"}], "numtasklists": 1,
		"tasks": [{"name": "Dentist", "starred": false, "duedate": "12/27/2024,10:15", "priority": 5, "tasklistnames": ["Family"]}],
		"numtasks": 1, "subtasks": [], "numsubtasks": 0
	}` + "\n```"

	out, err := env.uc.Ask(context.Background(), sc, assistant.AskInput{Question: "dentist next friday at 10:15 for the family"})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if out.Status != assistant.StatusSuccess {
		t.Fatalf("status = %q", out.Status)
	}

	lists := env.lists(t, sc)
	if len(lists) != 1 || lists[0].ID != family.ID {
		t.Fatalf("expected the existing Family list only, got %+v", lists)
	}

	tasks := env.tasks(t, sc)
	if len(tasks) != 1 || tasks[0].Name != "Dentist" {
		t.Fatalf("unexpected tasks %+v", tasks)
	}
	if len(tasks[0].TaskListIDs) != 1 || tasks[0].TaskListIDs[0] != family.ID {
		t.Errorf("Dentist lists = %v, want [%d]", tasks[0].TaskListIDs, family.ID)
	}
	if got := tasks[0].Due.String(); got != "2024-12-27,10:15" {
		t.Errorf("due = %q", got)
	}

	if out.Proposal.TaskLists[0].ID != family.ID || out.Proposal.Tasks[0].ID != tasks[0].ID {
		t.Errorf("proposal not re-identified: %+v", out.Proposal)
	}
}

func TestAskDependencyOrdering(t *testing.T) {
	env := newTestEnv(t, Options{})
	sc := env.user("david")

	env.llm.reply = `{
		"tasklists": [{"name": "School"}], "numtasklists": 1,
		"tasks": [{"name": "Homework", "starred": true, "duedate": "12/21/2024,14:00", "priority": 7, "tasklistnames": ["School"]}],
		"numtasks": 1,
		"subtasks": [
			{"name": "Read book", "priority": null, "parenttaskname": "Homework"},
			{"name": "Write review", "priority": 3, "parenttaskname": "homework"}
		],
		"numsubtasks": 2
	}`

	out, err := env.uc.Ask(context.Background(), sc, assistant.AskInput{Question: "homework tomorrow at 2pm"})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	for _, st := range out.Proposal.Subtasks {
		if st.ID == 0 {
			t.Errorf("subtask %q has no id", st.Name)
		}
	}
	subs, err := env.repo.ListSubtasks(context.Background(), repository.ListSubtasksOptions{UserID: sc.UserID, TaskID: out.Proposal.Tasks[0].ID})
	if err != nil {
		t.Fatalf("ListSubtasks: %v", err)
	}
	if len(subs) != 2 {
		t.Errorf("expected 2 subtasks, got %d", len(subs))
	}
}

func TestAskUnresolvedParentRollsBack(t *testing.T) {
	env := newTestEnv(t, Options{})
	sc := env.user("david")

	env.llm.reply = `{
		"tasklists": [{"name": "Work"}], "numtasklists": 1,
		"tasks": [{"name": "Report", "starred": false, "duedate": null, "priority": null, "tasklistnames": ["Work"]}],
		"numtasks": 1,
		"subtasks": [{"name": "Outline", "priority": 2, "parenttaskname": "Presentation"}],
		"numsubtasks": 1
	}`

	_, err := env.uc.Ask(context.Background(), sc, assistant.AskInput{Question: "report with an outline"})
	if !errors.Is(err, assistant.ErrUnresolvedReference) {
		t.Fatalf("expected ErrUnresolvedReference, got %v", err)
	}
	if n := len(env.lists(t, sc)); n != 0 {
		t.Errorf("expected rollback of task lists, found %d", n)
	}
	if n := len(env.tasks(t, sc)); n != 0 {
		t.Errorf("expected rollback of tasks, found %d", n)
	}
}

func TestAskUnknownTaskList(t *testing.T) {
	env := newTestEnv(t, Options{})
	sc := env.user("david")

	env.llm.reply = `{"tasklists": [], "tasks": [{"name": "Gym", "tasklistnames": "Health"}], "subtasks": []}`

	_, err := env.uc.Ask(context.Background(), sc, assistant.AskInput{Question: "gym"})
	if !errors.Is(err, assistant.ErrUnresolvedReference) {
		t.Fatalf("expected ErrUnresolvedReference, got %v", err)
	}
}

func TestAskReusesExistingTask(t *testing.T) {
	env := newTestEnv(t, Options{})
	sc := env.user("david")
	home := env.mustList(t, sc, "Home")
	existing, err := env.repo.CreateTask(context.Background(), repository.CreateTaskOptions{UserID: sc.UserID, Name: "Laundry"})
	if err != nil {
		t.Fatal(err)
	}

	env.llm.reply = `{"tasklists": [], "tasks": [{"name": "laundry", "tasklistnames": ["Home"]}], "subtasks": []}`

	out, err := env.uc.Ask(context.Background(), sc, assistant.AskInput{Question: "put laundry on the home list"})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	tasks := env.tasks(t, sc)
	if len(tasks) != 1 {
		t.Fatalf("expected the existing task to be reused, got %d tasks", len(tasks))
	}
	if out.Proposal.Tasks[0].ID != existing.ID {
		t.Errorf("id = %d, want %d", out.Proposal.Tasks[0].ID, existing.ID)
	}
	if len(tasks[0].TaskListIDs) != 1 || tasks[0].TaskListIDs[0] != home.ID {
		t.Errorf("expected Laundry to be attached to Home, got %v", tasks[0].TaskListIDs)
	}
}

func TestAskReusedTaskReportsStoredFields(t *testing.T) {
	cal := &fakeCalendar{}
	env := newTestEnv(t, Options{Calendar: cal})
	sc := env.user("erin")
	existing, err := env.repo.CreateTask(context.Background(), repository.CreateTaskOptions{UserID: sc.UserID, Name: "Dentist"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.repo.CreateSubtask(context.Background(), repository.CreateSubtaskOptions{
		UserID: sc.UserID, TaskID: existing.ID, Name: "Bring card",
	}); err != nil {
		t.Fatal(err)
	}

	env.llm.reply = `{"tasklists": [], "tasks": [
		{"name": "Dentist", "duedate": "12/25/2024,18:30", "starred": true, "priority": 9}
	], "subtasks": [
		{"name": "Bring card", "priority": 4, "parenttaskname": "Dentist"}
	]}`

	out, err := env.uc.Ask(context.Background(), sc, assistant.AskInput{Question: "dentist on christmas evening"})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	stored := env.tasks(t, sc)
	if len(stored) != 1 {
		t.Fatalf("expected the existing task to be reused, got %d tasks", len(stored))
	}
	got := out.Proposal.Tasks[0]
	if got.ID != stored[0].ID {
		t.Fatalf("id = %d, want %d", got.ID, stored[0].ID)
	}
	if got.Due.String() != stored[0].Due.String() || !got.Due.IsZero() {
		t.Errorf("due = %q, stored %q", got.Due.String(), stored[0].Due.String())
	}
	if got.Starred != stored[0].Starred || got.Starred {
		t.Errorf("starred = %t, stored %t", got.Starred, stored[0].Starred)
	}
	if got.Priority != nil || stored[0].Priority != nil {
		t.Errorf("priority = %v, stored %v", got.Priority, stored[0].Priority)
	}
	if sub := out.Proposal.Subtasks[0]; sub.ID == 0 || sub.Priority != nil {
		t.Errorf("subtask should report the stored row, got %+v", sub)
	}

	if len(cal.created) != 0 {
		t.Errorf("expected no event for a due time that was never stored, got %d", len(cal.created))
	}
}

func TestAskScoping(t *testing.T) {
	env := newTestEnv(t, Options{})
	alice := env.user("alice")
	bob := env.user("bob")
	bobFamily := env.mustList(t, bob, "Family")
	bobTask, err := env.repo.CreateTask(context.Background(), repository.CreateTaskOptions{
		UserID: bob.UserID, Name: "Dentist", TaskListIDs: []int64{bobFamily.ID},
	})
	if err != nil {
		t.Fatal(err)
	}

	env.llm.reply = `{
		"tasklists": [{"name": "Family"}],
		"tasks": [{"name": "Dentist", "tasklistnames": ["Family"]}],
		"subtasks": [{"name": "Bring card", "parenttaskname": "Dentist"}]
	}`

	out, err := env.uc.Ask(context.Background(), alice, assistant.AskInput{Question: "dentist"})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if out.Proposal.Tasks[0].ID == bobTask.ID || out.Proposal.TaskLists[0].ID == bobFamily.ID {
		t.Fatalf("alice's proposal resolved to bob's entities: %+v", out.Proposal)
	}

	bobTasks := env.tasks(t, bob)
	if len(bobTasks) != 1 || len(bobTasks[0].TaskListIDs) != 1 {
		t.Errorf("bob's tasks changed: %+v", bobTasks)
	}
	subs, err := env.repo.ListSubtasks(context.Background(), repository.ListSubtasksOptions{UserID: bob.UserID})
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 0 {
		t.Errorf("bob got subtasks: %+v", subs)
	}

	// The prompt for alice must not leak bob's names.
	sys := env.llm.requests[0].SystemInstruction.Text()
	if strings.Contains(sys, "- Dentist") || strings.Contains(sys, "- Family") {
		t.Errorf("prompt leaked another user's names:\n%s", sys)
	}
}

func TestReidentifyIdempotent(t *testing.T) {
	env := newTestEnv(t, Options{})
	sc := env.user("david")

	env.llm.reply = `{
		"tasklists": [{"name": "Garden"}],
		"tasks": [{"name": "Mow lawn", "tasklistnames": ["Garden"]}],
		"subtasks": [{"name": "Fuel mower", "parenttaskname": "Mow lawn"}]
	}`
	out, err := env.uc.Ask(context.Background(), sc, assistant.AskInput{Question: "mow"})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	first := out.Proposal
	second := assistant.Proposal{
		TaskLists: append([]assistant.ProposedTaskList(nil), first.TaskLists...),
		Tasks:     append([]assistant.ProposedTask(nil), first.Tasks...),
		Subtasks:  append([]assistant.ProposedSubtask(nil), first.Subtasks...),
	}
	if err := env.uc.reidentify(context.Background(), sc, &second); err != nil {
		t.Fatalf("reidentify: %v", err)
	}

	if second.TaskLists[0].ID != first.TaskLists[0].ID ||
		second.Tasks[0].ID != first.Tasks[0].ID ||
		second.Subtasks[0].ID != first.Subtasks[0].ID {
		t.Errorf("ids changed: first=%+v second=%+v", first, second)
	}
}

func TestAskModelDeclined(t *testing.T) {
	env := newTestEnv(t, Options{})
	sc := env.user("david")
	env.llm.reply = `{"tasklists": [], "tasks": [], "subtasks": [], "error": "I could not understand the request"}`

	out, err := env.uc.Ask(context.Background(), sc, assistant.AskInput{Question: "blorp"})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if out.Status != assistant.StatusError || out.ErrorMessage != "I could not understand the request" {
		t.Errorf("unexpected output %+v", out)
	}
}

func TestAskMalformedOutput(t *testing.T) {
	env := newTestEnv(t, Options{})
	sc := env.user("david")
	env.llm.reply = "I'm sorry, I can only talk about tasks."

	_, err := env.uc.Ask(context.Background(), sc, assistant.AskInput{Question: "hello"})
	if !errors.Is(err, assistant.ErrMalformedModelOutput) {
		t.Fatalf("expected ErrMalformedModelOutput, got %v", err)
	}
	if n := len(env.tasks(t, sc)); n != 0 {
		t.Errorf("expected nothing persisted, got %d tasks", n)
	}
}

func TestAskGatewayErrors(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
		want  error
	}{
		{name: "unavailable", err: errors.New("connection refused"), want: assistant.ErrGatewayUnavailable},
		{name: "timeout", err: context.DeadlineExceeded, want: assistant.ErrGatewayTimeout},
		{name: "all providers timed out", err: errors.Join(llmprovider.ErrAllProvidersFailed, context.DeadlineExceeded), want: assistant.ErrGatewayTimeout},
		{name: "empty reply", reply: "   ", want: assistant.ErrGatewayUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, Options{})
			sc := env.user("david")
			env.llm.reply, env.llm.err = tt.reply, tt.err

			_, err := env.uc.Ask(context.Background(), sc, assistant.AskInput{Question: "anything"})
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAskValidatesQuestion(t *testing.T) {
	env := newTestEnv(t, Options{MaxQuestionLength: 10})
	sc := env.user("david")

	if _, err := env.uc.Ask(context.Background(), sc, assistant.AskInput{Question: "   "}); !errors.Is(err, assistant.ErrEmptyQuestion) {
		t.Errorf("expected ErrEmptyQuestion, got %v", err)
	}
	if _, err := env.uc.Ask(context.Background(), sc, assistant.AskInput{Question: "this is far too long"}); !errors.Is(err, assistant.ErrQuestionTooLong) {
		t.Errorf("expected ErrQuestionTooLong, got %v", err)
	}
	if len(env.llm.requests) != 0 {
		t.Errorf("model must not be called for invalid questions")
	}
}

func TestAskSpeech(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		env := newTestEnv(t, Options{})
		sc := env.user("david")
		_, err := env.uc.AskSpeech(context.Background(), sc, assistant.SpeechInput{Audio: strings.NewReader("x")})
		if !errors.Is(err, assistant.ErrTranscriptionDisabled) {
			t.Errorf("expected ErrTranscriptionDisabled, got %v", err)
		}
	})

	t.Run("empty transcript", func(t *testing.T) {
		env := newTestEnv(t, Options{Transcriber: &fakeTranscriber{text: "  "}})
		sc := env.user("david")
		_, err := env.uc.AskSpeech(context.Background(), sc, assistant.SpeechInput{Audio: strings.NewReader("x")})
		if !errors.Is(err, assistant.ErrEmptyTranscript) {
			t.Errorf("expected ErrEmptyTranscript, got %v", err)
		}
	})

	t.Run("transcription failure", func(t *testing.T) {
		env := newTestEnv(t, Options{Transcriber: &fakeTranscriber{err: errors.New("503")}})
		sc := env.user("david")
		_, err := env.uc.AskSpeech(context.Background(), sc, assistant.SpeechInput{Audio: strings.NewReader("x")})
		if !errors.Is(err, assistant.ErrGatewayUnavailable) {
			t.Errorf("expected ErrGatewayUnavailable, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		env := newTestEnv(t, Options{Transcriber: &fakeTranscriber{text: " buy milk tomorrow "}})
		sc := env.user("david")
		env.llm.reply = `{"tasklists": [], "tasks": [{"name": "Buy milk", "duedate": "12/21/2024,"}], "subtasks": []}`

		out, err := env.uc.AskSpeech(context.Background(), sc, assistant.SpeechInput{Audio: strings.NewReader("x"), Filename: "clip.webm"})
		if err != nil {
			t.Fatalf("AskSpeech: %v", err)
		}
		if out.Transcript != "buy milk tomorrow" {
			t.Errorf("transcript = %q", out.Transcript)
		}
		if got := env.llm.requests[0].Messages[0].Text(); got != "buy milk tomorrow" {
			t.Errorf("model got %q", got)
		}
		if got := out.Proposal.Tasks[0].Due.String(); got != "2024-12-21" {
			t.Errorf("due = %q", got)
		}
	})
}

func TestAskMirrorsTimedTasks(t *testing.T) {
	cal := &fakeCalendar{}
	env := newTestEnv(t, Options{Calendar: cal, CalendarID: "primary"})
	sc := env.user("david")

	env.llm.reply = `{"tasklists": [], "tasks": [
		{"name": "Hockey game", "duedate": "12/21/2024,16:00"},
		{"name": "Buy gifts", "duedate": "12/22/2024,"},
		{"name": "Someday"}
	], "subtasks": []}`

	if _, err := env.uc.Ask(context.Background(), sc, assistant.AskInput{Question: "hockey"}); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if len(cal.created) != 1 {
		t.Fatalf("expected one mirrored event, got %d", len(cal.created))
	}
	ev := cal.created[0]
	if ev.Summary != "Hockey game" || !ev.StartTime.Equal(time.Date(2024, 12, 21, 16, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected event %+v", ev)
	}
	if ev.EndTime.Sub(ev.StartTime) != time.Hour {
		t.Errorf("expected a one hour event")
	}

	cal.existing = []gcalendar.Event{{Summary: "hockey game"}}
	cal.created = nil
	if _, err := env.uc.Ask(context.Background(), sc, assistant.AskInput{Question: "hockey again"}); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if len(cal.created) != 0 {
		t.Errorf("expected existing event to be reused, got %d new", len(cal.created))
	}
}

func TestAskCalendarMirrorIsBounded(t *testing.T) {
	cal := &fakeCalendar{block: true}
	env := newTestEnv(t, Options{Calendar: cal, CalendarTimeout: 50 * time.Millisecond})
	sc := env.user("frank")

	env.llm.reply = `{"tasklists": [], "tasks": [
		{"name": "Hockey game", "duedate": "12/21/2024,16:00"},
		{"name": "Piano lesson", "duedate": "12/22/2024,10:00"}
	], "subtasks": []}`

	start := time.Now()
	out, err := env.uc.Ask(context.Background(), sc, assistant.AskInput{Question: "hockey and piano"})
	if err != nil {
		t.Fatalf("Ask should not fail on a stalled calendar: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("Ask took %v with a stalled calendar", elapsed)
	}
	if out.Status != assistant.StatusSuccess || len(env.tasks(t, sc)) != 2 {
		t.Errorf("tasks should be stored regardless of the calendar, got %+v", out)
	}
	if len(cal.deadlines) == 0 {
		t.Fatal("calendar calls ran without a deadline")
	}
	if len(cal.created) != 0 {
		t.Errorf("expected no events after the timeout, got %d", len(cal.created))
	}
}
