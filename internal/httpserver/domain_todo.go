package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"todo-assistant/internal/middleware"
	todoHTTP "todo-assistant/internal/todo/delivery/http"
	todoRepo "todo-assistant/internal/todo/repository/sqldb"
	todoUC "todo-assistant/internal/todo/usecase"
)

// setupTodoDomain registers /api/v1/tasks, /api/v1/tasklists and /api/v1/subtasks.
func (srv *HTTPServer) setupTodoDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	repo := todoRepo.New(srv.db, srv.driver, srv.l)
	uc := todoUC.New(repo, srv.l)
	h := todoHTTP.New(srv.l, uc)
	todoHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Todo domain registered")
	return nil
}
