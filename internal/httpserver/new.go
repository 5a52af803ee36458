package httpserver

import (
	"database/sql"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"todo-assistant/config"
	"todo-assistant/internal/assistant"
	assistantUC "todo-assistant/internal/assistant/usecase"
	"todo-assistant/pkg/database"
	"todo-assistant/pkg/datemath"
	"todo-assistant/pkg/encrypter"
	"todo-assistant/pkg/log"
	"todo-assistant/pkg/scope"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration

	// Storage
	db     *sql.DB
	driver database.Driver

	// Sessions
	jwtManager      scope.Manager
	encrypter       encrypter.Encrypter
	cookie          config.CookieConfig
	cors            config.CORSConfig
	rateLimitPerMin int

	// Assistant
	llm          assistant.LLM
	dates        *datemath.Parser
	assistantOpt assistantUC.Options
	maxUploadMB  int
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	DB     *sql.DB
	Driver database.Driver

	JWTManager      scope.Manager
	Encrypter       encrypter.Encrypter
	Cookie          config.CookieConfig
	CORS            config.CORSConfig
	RateLimitPerMin int

	LLM              assistant.LLM
	Dates            *datemath.Parser
	AssistantOptions assistantUC.Options
	MaxUploadMB      int
}

// New creates a new HTTPServer instance with all routes mapped.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		readTimeout:     cfg.ReadTimeout,
		writeTimeout:    cfg.WriteTimeout,
		shutdownTimeout: cfg.ShutdownTimeout,
		db:              cfg.DB,
		driver:          cfg.Driver,
		jwtManager:      cfg.JWTManager,
		encrypter:       cfg.Encrypter,
		cookie:          cfg.Cookie,
		cors:            cfg.CORS,
		rateLimitPerMin: cfg.RateLimitPerMin,
		llm:             cfg.LLM,
		dates:           cfg.Dates,
		assistantOpt:    cfg.AssistantOptions,
		maxUploadMB:     cfg.MaxUploadMB,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.db == nil {
		return errors.New("database is required")
	}
	if srv.jwtManager == nil {
		return errors.New("jwt manager is required")
	}
	if srv.encrypter == nil {
		return errors.New("encrypter is required")
	}
	if srv.dates == nil {
		return errors.New("date parser is required")
	}
	return nil
}
