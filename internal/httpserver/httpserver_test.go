package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/gin-gonic/gin"

	"todo-assistant/config"
	"todo-assistant/pkg/database"
	"todo-assistant/pkg/datemath"
	"todo-assistant/pkg/encrypter"
	"todo-assistant/pkg/llmprovider"
	"todo-assistant/pkg/log"
	"todo-assistant/pkg/scope"
)

type staticLLM struct {
	reply string
}

func (s staticLLM) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	return &llmprovider.Response{Content: llmprovider.NewTextMessage(llmprovider.RoleAssistant, s.reply)}, nil
}

func newTestServer(t *testing.T, llm *staticLLM) *HTTPServer {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, database.Config{Driver: database.DriverSQLite, DSN: filepath.Join(t.TempDir(), "srv.db")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(ctx, db, database.DriverSQLite); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	jm, err := scope.New("secret", time.Hour, "test")
	if err != nil {
		t.Fatal(err)
	}
	dates, err := datemath.NewParser("UTC")
	if err != nil {
		t.Fatal(err)
	}

	cfg := Config{
		Logger:     log.NewNop(),
		Port:       8080,
		Mode:       gin.TestMode,
		DB:         db,
		Driver:     database.DriverSQLite,
		JWTManager: jm,
		Encrypter:  encrypter.New(&argon2id.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16}),
		Cookie:     config.CookieConfig{Name: "todo_session"},
		Dates:      dates,
	}
	if llm != nil {
		cfg.LLM = llm
	}

	srv, err := New(log.NewNop(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func call(t *testing.T, h http.Handler, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env struct {
		Data map[string]any `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w.Code, env.Data
}

func TestNewValidation(t *testing.T) {
	if _, err := New(log.NewNop(), Config{Logger: log.NewNop(), Mode: gin.TestMode, Port: 8080}); err == nil {
		t.Errorf("expected error without database")
	}
}

func TestSystemRoutes(t *testing.T) {
	srv := newTestServer(t, nil)
	for _, path := range []string{"/health", "/ready", "/live"} {
		if code, _ := call(t, srv.Handler(), http.MethodGet, path, "", ""); code != http.StatusOK {
			t.Errorf("%s: status = %d", path, code)
		}
	}

	// Without a model the assistant routes are not mounted.
	if code, _ := call(t, srv.Handler(), http.MethodPost, "/api/v1/assistant/ask", "", `{}`); code != http.StatusNotFound {
		t.Errorf("assistant without llm: status = %d", code)
	}
}

func TestRegisterLoginAsk(t *testing.T) {
	llm := &staticLLM{reply: `{
		"tasklists": [{"name": "Family"}], "numtasklists": 1,
		"tasks": [{"name": "Dentist", "starred": true, "duedate": "12/27/2024,10:15", "priority": 4, "tasklistnames": ["Family"]}],
		"numtasks": 1,
		"subtasks": [{"name": "Bring insurance card", "priority": null, "parenttaskname": "Dentist"}],
		"numsubtasks": 1
	}`}
	h := newTestServer(t, llm).Handler()

	if code, _ := call(t, h, http.MethodPost, "/api/v1/auth/register", "", `{"username": "david", "password": "correct-horse"}`); code != http.StatusCreated {
		t.Fatalf("register: status = %d", code)
	}
	code, data := call(t, h, http.MethodPost, "/api/v1/auth/login", "", `{"username": "david", "password": "correct-horse"}`)
	if code != http.StatusOK {
		t.Fatalf("login: status = %d", code)
	}
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatalf("login returned no token: %v", data)
	}

	code, data = call(t, h, http.MethodPost, "/api/v1/assistant/ask", token, `{"question": "Dentist next friday at 10:15, family stuff"}`)
	if code != http.StatusOK {
		t.Fatalf("ask: status = %d, data %v", code, data)
	}
	if data["status"] != "success" || data["numtasks"] != float64(1) {
		t.Fatalf("unexpected ask data %v", data)
	}
	task := data["tasks"].([]any)[0].(map[string]any)
	if task["duedate"] != "2024-12-27,10:15" || task["id"] == float64(0) {
		t.Errorf("task = %v", task)
	}

	code, data = call(t, h, http.MethodGet, "/api/v1/tasks", token, "")
	if code != http.StatusOK || data["count"] != float64(1) {
		t.Errorf("list tasks: status = %d, data %v", code, data)
	}

	// A second identical request reuses everything.
	if code, _ = call(t, h, http.MethodPost, "/api/v1/assistant/ask", token, `{"question": "again"}`); code != http.StatusOK {
		t.Fatalf("second ask: status = %d", code)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasklists", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	var lists struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &lists); err != nil {
		t.Fatalf("decode task lists: %v", err)
	}
	if len(lists.Data) != 1 || lists.Data[0]["name"] != "Family" {
		t.Errorf("expected exactly one Family list, got %v", lists.Data)
	}
}
