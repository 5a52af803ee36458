package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"todo-assistant/config"
	"todo-assistant/pkg/log"
	"todo-assistant/pkg/scope"
)

func newTestMiddleware(t *testing.T, perMin int) (Middleware, scope.Manager) {
	t.Helper()
	jwtManager, err := scope.New("test-secret", time.Hour, "test")
	if err != nil {
		t.Fatalf("scope.New: %v", err)
	}
	mw := New(log.NewNop(), jwtManager, config.CookieConfig{Name: "sess"}, config.CORSConfig{}, perMin)
	return mw, jwtManager
}

func newRouter(mw Middleware, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw.RequestID())
	r.GET("/x", append(handlers, func(c *gin.Context) {
		p, _ := scope.GetPayloadFromContext(c.Request.Context())
		c.String(http.StatusOK, p.Username)
	})...)
	return r
}

func TestAuth(t *testing.T) {
	mw, jm := newTestMiddleware(t, 0)
	r := newRouter(mw, mw.Auth())
	token, _, err := jm.CreateToken(7, "david")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	tests := []struct {
		name       string
		setup      func(*http.Request)
		wantStatus int
		wantBody   string
	}{
		{name: "no token", setup: func(*http.Request) {}, wantStatus: http.StatusUnauthorized},
		{name: "bad token", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, wantStatus: http.StatusUnauthorized},
		{name: "bearer", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, wantStatus: http.StatusOK, wantBody: "david"},
		{name: "cookie", setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "sess", Value: token}) }, wantStatus: http.StatusOK, wantBody: "david"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Errorf("body = %q", w.Body.String())
			}
			if w.Header().Get(HeaderRequestID) == "" {
				t.Error("missing request id header")
			}
		})
	}
}

func TestRequestIDEchoed(t *testing.T) {
	mw, _ := newTestMiddleware(t, 0)
	r := newRouter(mw)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(HeaderRequestID); got != "abc-123" {
		t.Errorf("request id = %q", got)
	}
}

func TestRateLimit(t *testing.T) {
	mw, _ := newTestMiddleware(t, 6)
	r := newRouter(mw, mw.RateLimit())

	var limited bool
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("expected a 429 after the burst was spent")
	}
}

func TestRateLimitDisabled(t *testing.T) {
	if newRateLimiter(0) != nil {
		t.Error("zero limit should disable the limiter")
	}
}
