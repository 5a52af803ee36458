package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	assistantHTTP "todo-assistant/internal/assistant/delivery/http"
	assistantUC "todo-assistant/internal/assistant/usecase"
	"todo-assistant/internal/middleware"
	todoRepo "todo-assistant/internal/todo/repository/sqldb"
)

// setupAssistantDomain registers /api/v1/assistant. Without a language model
// the routes are skipped.
func (srv *HTTPServer) setupAssistantDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	if srv.llm == nil {
		srv.l.Warnf(ctx, "No LLM provider configured, skipping assistant routes")
		return nil
	}

	repo := todoRepo.New(srv.db, srv.driver, srv.l)
	uc := assistantUC.New(srv.l, repo, srv.llm, srv.dates, srv.assistantOpt)
	h := assistantHTTP.New(srv.l, uc, srv.maxUploadMB)
	assistantHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Assistant domain registered (speech=%t, calendar=%t)",
		srv.assistantOpt.Transcriber != nil, srv.assistantOpt.Calendar != nil)
	return nil
}
