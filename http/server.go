// Package http provides the web adapter for browsing, searching and
// reading documents under a single root directory.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/docview"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultName is the title shown on every page.
	DefaultName = "AsciiDoc Viewer"

	// DefaultHomePage is the document linked from the index page.
	DefaultHomePage = "home.adoc"

	// DefaultSearchRate is the number of searches allowed per second.
	DefaultSearchRate = 5

	// ShutdownTimeout bounds graceful shutdown of the listener.
	ShutdownTimeout = 10 * time.Second
)

// Server serves the document viewer over HTTP.
type Server struct {
	echo *echo.Echo

	root     string
	name     string
	homePage string
	search   docview.SearchService
	renderer docview.Renderer
	notices  *docview.Notices
	limiter  *ClientLimiter
	clientIP echo.IPExtractor
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithName sets the title shown on every page.
func WithName(name string) Option {
	return func(s *Server) {
		s.name = name
	}
}

// WithHomePage sets the document linked from the index page.
func WithHomePage(name string) Option {
	return func(s *Server) {
		s.homePage = name
	}
}

// WithNotices sets the buffer that collects render warnings and failures.
func WithNotices(n *docview.Notices) Option {
	return func(s *Server) {
		s.notices = n
	}
}

// WithSearchLimit sets the per-client search rate limit. A non-positive
// rate disables it.
func WithSearchLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = NewClientLimiter(rps, burst)
	}
}

// WithIPExtractor sets how the client address used for rate limiting is
// derived. Defaults to echo.ExtractIPDirect, which ignores forwarding
// headers. Deployments behind a reverse proxy can pass
// echo.ExtractIPFromXFFHeader or echo.ExtractIPFromRealIPHeader.
func WithIPExtractor(extract echo.IPExtractor) Option {
	return func(s *Server) {
		s.clientIP = extract
	}
}

// WithGatherer exposes the given registry on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a Server for documents under root.
func NewServer(root string, search docview.SearchService, renderer docview.Renderer, opts ...Option) *Server {
	s := &Server{
		echo:     echo.New(),
		root:     root,
		name:     DefaultName,
		homePage: DefaultHomePage,
		search:   search,
		renderer: renderer,
		limiter:  NewClientLimiter(DefaultSearchRate, DefaultSearchRate),
		clientIP: echo.ExtractIPDirect(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notices == nil {
		s.notices = docview.NewNotices(docview.DefaultNoticeCapacity)
	}
	if s.clientIP == nil {
		s.clientIP = echo.ExtractIPDirect()
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.IPExtractor = s.clientIP
	s.echo.Renderer = newTemplates()

	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogError:     true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				s.logger.Info("request completed",
					"request_id", v.RequestID,
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency", v.Latency,
				)
				return nil
			}
			s.logger.Error("request failed",
				"request_id", v.RequestID,
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"err", v.Error,
			)
			return nil
		},
	}))
	s.echo.Use(middleware.Recover())

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/", s.handleIndex)
	s.echo.GET("/tree", s.handleTree)
	s.echo.GET("/search", s.handleSearchRedirect)
	s.echo.POST("/search", s.handleSearch, s.limit())
	s.echo.GET("/page", s.handlePage)
	s.echo.POST("/options", s.handleOptions)
	if s.gatherer != nil {
		s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}
}

// ServeHTTP dispatches the request to the matching handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("listening", "addr", addr, "root", s.root)
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if s.limiter != nil {
		g.Go(func() error {
			s.limiter.Run(gctx, LimiterCleanupInterval, LimiterIdleTimeout)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// limit rejects searches over the client's configured rate.
func (s *Server) limit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if s.limiter != nil && !s.limiter.Allow(c.RealIP()) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many searches")
			}
			return next(c)
		}
	}
}
