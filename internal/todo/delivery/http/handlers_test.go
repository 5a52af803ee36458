package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"todo-assistant/config"
	"todo-assistant/internal/middleware"
	"todo-assistant/internal/todo/repository/sqldb"
	"todo-assistant/internal/todo/usecase"
	"todo-assistant/pkg/database"
	"todo-assistant/pkg/log"
	"todo-assistant/pkg/scope"
)

type testServer struct {
	router *gin.Engine
	tokens map[string]string
}

func newTestServer(t *testing.T, users ...string) *testServer {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, database.Config{Driver: database.DriverSQLite, DSN: filepath.Join(t.TempDir(), "api.db")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(ctx, db, database.DriverSQLite); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	jm, err := scope.New("secret", time.Hour, "test")
	if err != nil {
		t.Fatalf("scope.New: %v", err)
	}

	tokens := map[string]string{}
	for _, name := range users {
		var id int64
		if err := db.QueryRowContext(ctx, `INSERT INTO users (username, password_hash) VALUES (?, 'x') RETURNING id`, name).Scan(&id); err != nil {
			t.Fatalf("insert user: %v", err)
		}
		tok, _, err := jm.CreateToken(id, name)
		if err != nil {
			t.Fatalf("CreateToken: %v", err)
		}
		tokens[name] = tok
	}

	l := log.NewNop()
	uc := usecase.New(sqldb.New(db, database.DriverSQLite, l), l)
	mw := middleware.New(l, jm, config.CookieConfig{Name: "sess"}, config.CORSConfig{}, 0)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), New(l, uc), mw)
	return &testServer{router: r, tokens: tokens}
}

type envelope struct {
	ErrorCode int             `json:"error_code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, user, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if tok, ok := s.tokens[user]; ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
	}
	return w.Code, env
}

func TestTaskEndpoints(t *testing.T) {
	s := newTestServer(t, "alice", "bob")

	code, env := s.do(t, "alice", http.MethodPost, "/api/v1/tasklists", `{"name":"Family"}`)
	if code != http.StatusCreated {
		t.Fatalf("create list: %d %s", code, env.Message)
	}
	var list taskListResp
	_ = json.Unmarshal(env.Data, &list)

	body := `{"name":"Buy gifts","duedate":"12/25/2024,14:00","priority":7,"task_list_ids":[` + itoa(list.ID) + `]}`
	code, env = s.do(t, "alice", http.MethodPost, "/api/v1/tasks", body)
	if code != http.StatusCreated {
		t.Fatalf("create task: %d %s", code, env.Message)
	}
	var created struct {
		ID          int64   `json:"id"`
		DueDate     string  `json:"duedate"`
		TaskListIDs []int64 `json:"task_list_ids"`
	}
	_ = json.Unmarshal(env.Data, &created)
	if created.DueDate != "2024-12-25,14:00" {
		t.Errorf("duedate = %q", created.DueDate)
	}
	if len(created.TaskListIDs) != 1 || created.TaskListIDs[0] != list.ID {
		t.Errorf("task_list_ids = %v", created.TaskListIDs)
	}

	code, _ = s.do(t, "alice", http.MethodPost, "/api/v1/tasks", `{"name":"buy GIFTS"}`)
	if code != http.StatusConflict {
		t.Errorf("duplicate task status = %d", code)
	}
	code, _ = s.do(t, "alice", http.MethodPost, "/api/v1/tasks", `{"name":"x","duedate":"someday"}`)
	if code != http.StatusBadRequest {
		t.Errorf("bad duedate status = %d", code)
	}

	code, env = s.do(t, "alice", http.MethodGet, "/api/v1/tasks", "")
	if code != http.StatusOK {
		t.Fatalf("list: %d", code)
	}
	var listed listTasksResp
	_ = json.Unmarshal(env.Data, &listed)
	if listed.Count != 1 {
		t.Errorf("count = %d", listed.Count)
	}

	path := "/api/v1/tasks/" + itoa(created.ID)
	if code, _ := s.do(t, "bob", http.MethodGet, path, ""); code != http.StatusNotFound {
		t.Errorf("bob reading alice's task: %d", code)
	}
	if code, _ := s.do(t, "", http.MethodGet, path, ""); code != http.StatusUnauthorized {
		t.Errorf("anonymous: %d", code)
	}

	code, env = s.do(t, "alice", http.MethodPatch, path+"/complete", `{"complete":true}`)
	if code != http.StatusOK {
		t.Fatalf("complete: %d %s", code, env.Message)
	}
	var flagged taskResp
	_ = json.Unmarshal(env.Data, &flagged)
	if !flagged.Complete {
		t.Error("task not marked complete")
	}

	if code, _ := s.do(t, "alice", http.MethodPost, path+"/subtasks", `{"name":"Wrap"}`); code != http.StatusCreated {
		t.Errorf("create subtask: %d", code)
	}
	code, env = s.do(t, "alice", http.MethodGet, path, "")
	var detail taskResp
	_ = json.Unmarshal(env.Data, &detail)
	if code != http.StatusOK || len(detail.Subtasks) != 1 {
		t.Errorf("detail = %d %+v", code, detail)
	}

	if code, _ := s.do(t, "alice", http.MethodDelete, path, ""); code != http.StatusOK {
		t.Errorf("delete: %d", code)
	}
	if code, _ := s.do(t, "alice", http.MethodGet, path, ""); code != http.StatusNotFound {
		t.Errorf("after delete: %d", code)
	}
}

func TestInvalidID(t *testing.T) {
	s := newTestServer(t, "alice")
	if code, _ := s.do(t, "alice", http.MethodGet, "/api/v1/tasks/abc", ""); code != http.StatusBadRequest {
		t.Errorf("status = %d", code)
	}
}

func itoa(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
