package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"

	bridgehttp "github.com/GriffinCanCode/flatbridge/internal/api/http"
	"github.com/GriffinCanCode/flatbridge/internal/api/middleware"
	"github.com/GriffinCanCode/flatbridge/internal/auth"
	"github.com/GriffinCanCode/flatbridge/internal/command"
	"github.com/GriffinCanCode/flatbridge/internal/confirm"
	"github.com/GriffinCanCode/flatbridge/internal/domain/bridge"
	"github.com/GriffinCanCode/flatbridge/internal/flatpak"
	"github.com/GriffinCanCode/flatbridge/internal/infrastructure/config"
	"github.com/GriffinCanCode/flatbridge/internal/infrastructure/logging"
	"github.com/GriffinCanCode/flatbridge/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/flatbridge/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/flatbridge/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/flatbridge/internal/ui"
)

// Deps are the host facing collaborators. Zero values select the real
// implementations; tests replace them.
type Deps struct {
	Token    auth.Token
	Version  string
	Logger   *logging.Logger
	Runner   command.Runner
	Launcher command.Launcher
	LookPath command.PathResolver
	// Confirm overrides provider selection entirely
	Confirm confirm.Provider
	Console *confirm.Console
	Env     *confirm.Env
}

// Server is one running bridge instance.
type Server struct {
	router   *gin.Engine
	http     *http.Server
	listener net.Listener
	service  *bridge.Service
	provider confirm.Provider
	tool     *flatpak.Client
	tracer   *tracing.Tracer
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
	token    auth.Token
	base     string
}

// NewServer binds the listener and wires every component. The bootstrap
// page and the CORS policy need the final port, so binding happens first.
func NewServer(cfg *config.Config, deps Deps) (*Server, error) {
	logger := deps.Logger
	if logger == nil {
		if cfg.Logging.Development {
			logger = logging.NewDevelopment()
		} else {
			var err error
			logger, err = logging.New(logging.Config{Level: cfg.Logging.Level})
			if err != nil {
				return nil, err
			}
		}
	}

	if deps.Token == "" {
		token, err := auth.NewToken()
		if err != nil {
			return nil, err
		}
		deps.Token = token
	}
	if deps.Runner == nil {
		deps.Runner = command.NewExecRunner(cfg.Timeouts.Command)
	}
	if deps.Launcher == nil {
		deps.Launcher = command.NewDetachedLauncher()
	}
	if deps.LookPath == nil {
		deps.LookPath = command.LookPath
	}

	listener, err := listen(cfg, logger)
	if err != nil {
		return nil, err
	}
	port := listener.Addr().(*net.TCPAddr).Port
	base := fmt.Sprintf("http://%s:%d", config.Host, port)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New(logger.Logger)

	tool := flatpak.New(flatpak.Config{
		Binary:       cfg.Flatpak.Binary,
		Remote:       cfg.Flatpak.Remote,
		RemoteURL:    cfg.Flatpak.RemoteURL,
		ProbeTimeout: cfg.Timeouts.Probe,
	}, deps.Runner, deps.Launcher, deps.LookPath)

	provider := deps.Confirm
	if provider == nil {
		provider, err = selectProvider(cfg, deps)
		if err != nil {
			listener.Close()
			tracer.Close()
			return nil, err
		}
	}
	provider = confirm.WithTimeout(provider, cfg.Confirm.Timeout)
	logger.Info("Confirmation provider selected", zap.String("provider", provider.Name()))

	breaker := resilience.New("channel", resilience.Settings{
		Threshold: cfg.Breaker.Threshold,
		Cooldown:  cfg.Breaker.Cooldown,
		OnStateChange: func(name string, from, to resilience.State) {
			metrics.SetBreakerState(name, int(to))
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	service := bridge.NewService(tool, provider, bridge.Settings{
		Title:   cfg.Confirm.Title,
		Version: deps.Version,
	}).WithMetrics(metrics).WithLogger(logger).WithChannelBreaker(breaker)

	page, err := ui.Render(ui.PageData{
		Title:   cfg.Confirm.Title,
		Version: deps.Version,
		Token:   deps.Token.String(),
		Base:    base,
		Remote:  tool.Remote(),
	})
	if err != nil {
		listener.Close()
		tracer.Close()
		return nil, err
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(middleware.Recovery(logger))
	router.Use(middleware.NoStore())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.RequestLog(logger))
	router.Use(middleware.CORS(middleware.BridgeCORSConfig(port)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := bridgehttp.NewHandlers(service)
	index := func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	}

	router.GET("/", index)
	router.GET("/index.html", index)
	router.GET("/status", handlers.Status)

	protected := router.Group("/", middleware.RequireToken(deps.Token))
	protected.GET("/flatpak/list", handlers.List)
	protected.POST("/install", handlers.Install)
	protected.POST("/update", handlers.Update)
	protected.POST("/flatpak/run", handlers.Run)
	protected.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.NoRoute(bridgehttp.NotFound)
	router.NoMethod(bridgehttp.NotFound)

	if cfg.Server.MaxConnections > 0 {
		listener = netutil.LimitListener(listener, cfg.Server.MaxConnections)
	}

	logger.Info("Server initialized successfully", zap.String("url", base))

	return &Server{
		router:   router,
		listener: listener,
		service:  service,
		provider: provider,
		tool:     tool,
		tracer:   tracer,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
		token:    deps.Token,
		base:     base,
		http: &http.Server{
			Handler:           gzhttp.GzipHandler(router),
			ReadHeaderTimeout: 10 * time.Second,
			ErrorLog:          zap.NewStdLog(logger.Logger),
		},
	}, nil
}

// listen binds the preferred port on loopback and falls back to an
// ephemeral one when it is taken.
func listen(cfg *config.Config, logger *logging.Logger) (net.Listener, error) {
	ln, err := net.Listen("tcp", cfg.Addr())
	if err == nil {
		return ln, nil
	}
	if cfg.Server.Port == 0 {
		return nil, fmt.Errorf("failed to listen on %s: %w", cfg.Addr(), err)
	}

	logger.Warn("Preferred port unavailable, using an ephemeral port",
		zap.Int("port", cfg.Server.Port),
		zap.Error(err),
	)
	ln, err = net.Listen("tcp", net.JoinHostPort(config.Host, "0"))
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", config.Host, err)
	}
	return ln, nil
}

func selectProvider(cfg *config.Config, deps Deps) (confirm.Provider, error) {
	mode, err := confirm.ParseMode(cfg.Confirm.Mode)
	if err != nil {
		return nil, err
	}
	env := confirm.DetectEnv()
	env.LookPath = deps.LookPath
	if deps.Env != nil {
		env = *deps.Env
	}
	console := deps.Console
	if console == nil {
		console = confirm.NewConsole(nil, nil)
	}
	return confirm.Select(mode, env, deps.Runner, console)
}

// URL is the base address clients use, e.g. http://127.0.0.1:8765.
func (s *Server) URL() string {
	return s.base
}

// Token is this instance's session token.
func (s *Server) Token() auth.Token {
	return s.token
}

// Handler is the full HTTP stack including compression.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Provider is the confirmation provider in use.
func (s *Server) Provider() confirm.Provider {
	return s.provider
}

// ToolAvailable reports whether flatpak was found at startup.
func (s *Server) ToolAvailable() bool {
	return s.tool.ToolAvailable()
}

// WarmUp configures the software channel when flatpak is present.
func (s *Server) WarmUp(ctx context.Context) {
	s.service.WarmUp(ctx)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.listener.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.Serve(s.listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx := context.Background()
	if s.config.Timeouts.Shutdown > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, s.config.Timeouts.Shutdown)
		defer cancel()
	}
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("Graceful shutdown incomplete", zap.Error(err))
		return s.http.Close()
	}
	return nil
}

// Close releases the listener and flushes the logger.
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	// Shutdown already closed it when Run returned.
	if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		s.logger.Warn("Failed to close listener", zap.Error(err))
	}
	s.tracer.Close()
	s.logger.Sync()

	return nil
}
