package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lineoa/keywordconsole/config"
	"github.com/lineoa/keywordconsole/internal/domain"
	httpHandler "github.com/lineoa/keywordconsole/internal/http"
	"github.com/lineoa/keywordconsole/internal/http/middleware"
	"github.com/lineoa/keywordconsole/internal/repository"
	"github.com/lineoa/keywordconsole/internal/service"
	"github.com/lineoa/keywordconsole/pkg/liquid"
	"github.com/lineoa/keywordconsole/pkg/logger"
	"github.com/lineoa/keywordconsole/pkg/ratelimiter"
	"github.com/lineoa/keywordconsole/pkg/tracing"
)

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetKeywordRepository() domain.KeywordRepository

	// Server status methods
	IsServerCreated() bool
	WaitForServerStart(ctx context.Context) bool

	// Methods for initialization steps
	InitTracing() error
	InitRepositories() error
	InitServices() error
	InitHandlers() error

	// Graceful shutdown methods
	SetShutdownTimeout(timeout time.Duration)
	GetActiveRequestCount() int64
}

// App encapsulates the application dependencies and configuration
type App struct {
	config *config.Config
	logger logger.Logger

	keywordRepo domain.KeywordRepository

	sessions          *service.EditorSessions
	limiter           *ratelimiter.RateLimiter
	keywordService    *service.KeywordService
	flexEditorService *service.FlexEditorService
	imageService      *service.ImageUploadService
	templateService   *service.TemplateService

	mux    *http.ServeMux
	server *http.Server

	serverMu      sync.RWMutex
	serverStarted chan struct{}

	shutdownCtx     context.Context
	shutdownCancel  context.CancelFunc
	activeRequests  int64
	requestWg       sync.WaitGroup
	shutdownTimeout time.Duration
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// WithKeywordRepository replaces the in-process keyword store
func WithKeywordRepository(repo domain.KeywordRepository) AppOption {
	return func(a *App) {
		a.keywordRepo = repo
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) AppInterface {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	app := &App{
		config:          cfg,
		logger:          logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:             http.NewServeMux(),
		serverStarted:   make(chan struct{}),
		shutdownCtx:     shutdownCtx,
		shutdownCancel:  shutdownCancel,
		shutdownTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// InitTracing initializes OpenCensus tracing and metrics
func (a *App) InitTracing() error {
	if err := tracing.Init(&a.config.Tracing, a.logger); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	return nil
}

// InitRepositories sets up the keyword store
func (a *App) InitRepositories() error {
	if a.keywordRepo == nil {
		a.keywordRepo = repository.NewKeywordMemoryRepository()
	}
	return nil
}

// InitServices wires the editor sessions and the services built on them
func (a *App) InitServices() error {
	editorCfg := a.config.Editor

	a.sessions = service.NewEditorSessions(editorCfg.SessionTTL, editorCfg.CleanupInterval, a.logger)
	a.limiter = ratelimiter.NewRateLimiter()

	engine := liquid.NewEngine(editorCfg.PreviewTimeout, editorCfg.PreviewMaxBytes)
	a.flexEditorService = service.NewFlexEditorService(a.sessions, a.keywordRepo, service.NewPreviewPersonalizer(engine), a.logger)
	a.imageService = service.NewImageUploadService(
		a.sessions,
		a.limiter,
		editorCfg.MaxImageBytes,
		editorCfg.MaxConcurrentReads,
		editorCfg.UploadsPerMinute,
		a.logger,
	)
	a.templateService = service.NewTemplateService(a.sessions, a.logger)
	a.keywordService = service.NewKeywordService(a.keywordRepo, a.flexEditorService, a.logger)

	if a.config.SeedDemoData {
		if err := a.keywordService.SeedDemoKeywords(context.Background()); err != nil {
			return fmt.Errorf("failed to seed demo keywords: %w", err)
		}
	}
	return nil
}

// InitHandlers registers the RPC endpoints
func (a *App) InitHandlers() error {
	httpHandler.NewKeywordHandler(a.keywordService, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewFlexEditorHandler(
		a.flexEditorService,
		a.imageService,
		a.templateService,
		a.config.Editor.MaxImageBytes,
		a.logger,
	).RegisterRoutes(a.mux)
	httpHandler.NewTemplateHandler(a.templateService, a.logger).RegisterRoutes(a.mux)

	a.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	return nil
}

// Initialize sets up all components of the application
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting keyword console")

	if err := a.InitTracing(); err != nil {
		return err
	}
	if err := a.InitRepositories(); err != nil {
		return err
	}
	if err := a.InitServices(); err != nil {
		return err
	}
	if err := a.InitHandlers(); err != nil {
		return err
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

// Handler returns the mux wrapped in the request middlewares
func (a *App) Handler() http.Handler {
	var handler http.Handler = a.mux

	handler = a.gracefulShutdownMiddleware(handler)

	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
		a.logger.Info("OpenCensus tracing middleware enabled")
	}

	return middleware.CORSMiddleware(a.config.CORSAllowOrigin)(handler)
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).Info(fmt.Sprintf("Server starting on %s", addr))

	server := &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.serverMu.Lock()
	a.server = server
	started := a.serverStarted
	a.serverMu.Unlock()

	close(started)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight requests and image
// reads, then stops the background sweepers
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")
	a.shutdownCancel()

	a.serverMu.RLock()
	server := a.server
	a.serverMu.RUnlock()

	timeout := a.shutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var shutdownErr error
	if server != nil {
		a.logger.WithField("active_requests", a.GetActiveRequestCount()).Info("Stopping HTTP server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			shutdownErr = fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	requestsDone := make(chan struct{})
	go func() {
		a.requestWg.Wait()
		if a.imageService != nil {
			a.imageService.Wait()
		}
		close(requestsDone)
	}()

	select {
	case <-requestsDone:
		a.logger.Info("All requests and image reads completed")
	case <-shutdownCtx.Done():
		a.logger.WithField("active_requests", a.GetActiveRequestCount()).Warn("Shutdown timeout reached, forcing shutdown")
		if shutdownErr == nil {
			shutdownErr = fmt.Errorf("shutdown timeout exceeded")
		}
	}

	a.cleanupResources()

	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr.Error()).Error("Graceful shutdown completed with errors")
		return shutdownErr
	}
	a.logger.Info("Graceful shutdown completed successfully")
	return nil
}

func (a *App) cleanupResources() {
	if a.sessions != nil {
		a.sessions.Stop()
		a.logger.WithField("sessions", a.sessions.CloseAll()).Info("Editor sessions closed")
	}
	if a.limiter != nil {
		a.limiter.Stop()
	}
}

// IsServerCreated safely checks if the server has been created
func (a *App) IsServerCreated() bool {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	return a.server != nil
}

// WaitForServerStart waits for the server to be created or ctx to end
func (a *App) WaitForServerStart(ctx context.Context) bool {
	a.serverMu.RLock()
	started := a.serverStarted
	a.serverMu.RUnlock()

	select {
	case <-started:
		return a.IsServerCreated()
	case <-ctx.Done():
		return false
	}
}

func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.shutdownTimeout = timeout
}

func (a *App) GetActiveRequestCount() int64 {
	return atomic.LoadInt64(&a.activeRequests)
}

func (a *App) GetConfig() *config.Config {
	return a.config
}

func (a *App) GetLogger() logger.Logger {
	return a.logger
}

func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

func (a *App) GetKeywordRepository() domain.KeywordRepository {
	return a.keywordRepo
}

func (a *App) isShuttingDown() bool {
	select {
	case <-a.shutdownCtx.Done():
		return true
	default:
		return false
	}
}

// gracefulShutdownMiddleware rejects new requests once shutdown started and
// tracks the ones in flight
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.isShuttingDown() {
			httpHandler.WriteJSONError(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		atomic.AddInt64(&a.activeRequests, 1)
		a.requestWg.Add(1)
		defer func() {
			atomic.AddInt64(&a.activeRequests, -1)
			a.requestWg.Done()
		}()

		next.ServeHTTP(w, r)
	})
}

// Ensure App implements AppInterface
var _ AppInterface = (*App)(nil)
