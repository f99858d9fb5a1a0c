// Package server exposes the dashboard over HTTP and pushes state changes to
// websocket sessions.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/kapu/terrascope/internal/dashboard"
	"github.com/kapu/terrascope/internal/util"
)

// Navigator replaces the dashboard location, as loading a shared link does.
type Navigator interface {
	Navigate(raw string) error
}

type Options struct {
	Port      int
	Navigator Navigator
}

type Server struct {
	echo        *echo.Echo
	coord       *dashboard.Coordinator
	hub         *Hub
	nav         Navigator
	port        int
	logger      *zap.Logger
	unsubscribe func()

	background conc.WaitGroup
	bgCtx      context.Context
	bgCancel   context.CancelFunc
}

func New(coord *dashboard.Coordinator, hub *Hub, opts Options, logger *zap.Logger) *Server {
	logger = util.OrNop(logger)
	bgCtx, bgCancel := context.WithCancel(context.Background())

	s := &Server{
		echo:     echo.New(),
		coord:    coord,
		hub:      hub,
		nav:      opts.Navigator,
		port:     opts.Port,
		logger:   logger,
		bgCtx:    bgCtx,
		bgCancel: bgCancel,
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Validator = newRequestValidator()
	s.echo.HTTPErrorHandler = s.handleError
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debug("HTTP request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	s.registerRoutes()
	s.unsubscribe = coord.Subscribe(hub.BroadcastState)
	return s
}

func (s *Server) registerRoutes() {
	api := s.echo.Group("/api")
	api.GET("/state", s.getState)
	api.POST("/open", s.open)
	api.POST("/search", s.search)
	api.POST("/reset", s.reset)
	api.PUT("/language", s.setLanguage)
	api.POST("/translate", s.translate)
	api.POST("/comparison", s.addComparison)
	api.DELETE("/comparison", s.clearComparison)
	api.DELETE("/comparison/:iso", s.removeComparison)
	api.POST("/comparison/toggle", s.toggleCompareMode)
	api.GET("/comparison/distances", s.distances)
	api.GET("/theme", s.getTheme)
	api.PUT("/theme", s.setTheme)
	api.GET("/share", s.share)

	s.echo.GET("/ws", s.websocket)
}

// Handler returns the HTTP handler, for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until ctx is cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.port))
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
		return nil
	}
}

// Shutdown stops accepting requests, closes websocket sessions and waits for
// background panel refreshes.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")

	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.bgCancel()
	s.hub.Close()
	err := s.echo.Shutdown(ctx)
	s.background.Wait()
	return err
}

// refreshPanels loads the panel slots for the active profile without holding
// up the response.
func (s *Server) refreshPanels() {
	s.background.Go(func() {
		s.coord.RefreshPanels(s.bgCtx)
	})
}

func (s *Server) waitBackground() {
	s.background.Wait()
}
