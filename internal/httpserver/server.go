package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/cratestats/cratestats/internal/executor"
	"github.com/cratestats/cratestats/internal/model"
	"github.com/gin-gonic/gin"
)

// DefaultBodyLimit caps the size of API request bodies in bytes.
const DefaultBodyLimit = 1024

// Config holds the server's listening and serving parameters.
type Config struct {
	// Addr is the TCP address to bind. Ignored when Listener is set.
	Addr string
	// Listener, when non-nil, is a pre-bound socket handed to the process
	// (live-reload handoff). The server serves on it instead of binding.
	Listener net.Listener
	// BodyLimit caps API request bodies in bytes; 0 means DefaultBodyLimit.
	BodyLimit int64
	// StaticDir serves files under /static when non-empty.
	StaticDir string
}

// Server provides the crate download statistics HTTP API alongside the
// landing page and static assets.
type Server struct {
	cfg       Config
	store     model.DownloadQuerier
	exec      *executor.Pool
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a new HTTP server. The store runs blocking queries;
// the handler always routes them through exec so request-serving
// goroutines are never stalled on database I/O.
func NewServer(cfg Config, store model.DownloadQuerier, exec *executor.Pool) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8080"
	}
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = DefaultBodyLimit
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		cfg:    cfg,
		store:  store,
		exec:   exec,
		ctx:    ctx,
		cancel: cancel,
	}
}

// buildRouter wires all routes. Split from Start so tests can drive the
// router without a live socket.
func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", s.handleIndex)
	if s.cfg.StaticDir != "" {
		r.Static("/static", s.cfg.StaticDir)
	}

	r.GET("/api/health", s.handleHealth)

	api := r.Group("/api/v1")
	api.POST("/downloads", s.handleDownloadTimeseries)
	api.GET("/categories", s.handleCategories)

	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	r := s.buildRouter()

	s.server = &http.Server{
		Handler:           r,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener := s.cfg.Listener
	if listener == nil {
		var err error
		listener, err = net.Listen("tcp", s.cfg.Addr)
		if err != nil {
			return err
		}
	}

	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}
