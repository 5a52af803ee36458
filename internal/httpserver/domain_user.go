package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"todo-assistant/internal/middleware"
	userHTTP "todo-assistant/internal/user/delivery/http"
	userRepo "todo-assistant/internal/user/repository/sqldb"
	userUC "todo-assistant/internal/user/usecase"
)

// setupUserDomain registers /api/v1/auth and /api/v1/users.
func (srv *HTTPServer) setupUserDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	repo := userRepo.New(srv.db, srv.driver, srv.l)
	uc := userUC.New(repo, srv.encrypter, srv.jwtManager, srv.l)
	h := userHTTP.New(srv.l, uc, srv.cookie)
	userHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "User domain registered")
	return nil
}
