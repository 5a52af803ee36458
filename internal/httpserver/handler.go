package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"todo-assistant/internal/middleware"
	"todo-assistant/internal/model"
)

func (srv *HTTPServer) mapHandlers() error {
	mw := middleware.New(srv.l, srv.jwtManager, srv.cookie, srv.cors, srv.rateLimitPerMin)

	srv.registerMiddlewares(mw)
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(mw); err != nil {
		return err
	}

	return nil
}

func (srv *HTTPServer) registerMiddlewares(mw middleware.Middleware) {
	srv.gin.Use(gin.Recovery(), mw.RequestID(), mw.CORS())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "CORS mode: production, origins=%v", srv.cors.AllowedOrigins)
	} else {
		srv.l.Infof(ctx, "CORS mode: %s, origins=%v", srv.environment, srv.cors.AllowedOrigins)
	}
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes under /api/v1.
func (srv *HTTPServer) registerDomainRoutes(mw middleware.Middleware) error {
	ctx := context.Background()
	api := srv.gin.Group("/api/v1")

	if err := srv.setupUserDomain(ctx, api, mw); err != nil {
		return err
	}
	if err := srv.setupTodoDomain(ctx, api, mw); err != nil {
		return err
	}
	if err := srv.setupAssistantDomain(ctx, api, mw); err != nil {
		return err
	}

	return nil
}
