package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"outings-api/core/config"
	"outings-api/core/constants"
	"outings-api/core/controller"
	"outings-api/core/logger"
	"outings-api/core/middleware"
	"outings-api/modules/activity"
	activityService "outings-api/modules/activity/service"
	"outings-api/modules/auth"
	"outings-api/modules/generation"
	generationService "outings-api/modules/generation/service"
	"outings-api/modules/notification"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	echo   *echo.Echo
	cfg    *config.Config
	drafts *generationService.DraftService
}

// New builds the store and every module, and mounts their routes under /api/v1.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = controller.HTTPErrorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			if v.Error != nil {
				logger.Warn("HTTP:Request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "request_id", v.RequestID, "error", v.Error)
				return nil
			}
			logger.Info("HTTP:Request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "request_id", v.RequestID)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": cfg.App.Version})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	store, err := activity.NewStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("build store: %w", err)
	}

	authService := auth.GetService(store)
	mw := middleware.NewMiddleware(authService)

	api := e.Group("/api/v1")
	api.Use(mw.CurrentUser())

	notifications := notification.GetService()
	notification.Init(api, notifications, mw)

	activities := activity.Init(api, store, cfg, mw, activityService.WithNotifier(notifications))
	auth.Init(api, authService)
	drafts := generation.Init(api, cfg.Generation, activities, mw)

	return &Server{echo: e, cfg: cfg, drafts: drafts}, nil
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Address(),
		Handler:      s.echo,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server:Start", "address", srv.Addr)
		if err := s.echo.StartServer(srv); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = constants.DefaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info("Server:Shutdown")
	s.drafts.Close()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Run loads config, initializes logging and serves until SIGINT or SIGTERM.
func Run(configPath string) error {
	cfg, err := config.Init(configPath)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := New(ctx, cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	err = srv.Start(ctx)
	logger.Info("Server:Stopped", "uptime", time.Since(start).String())
	return err
}
