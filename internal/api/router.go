package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nikicasio/traffic-alert-app/internal/api/handlers/http/admin"
	"github.com/nikicasio/traffic-alert-app/internal/api/handlers/http/public"
	"github.com/nikicasio/traffic-alert-app/internal/api/handlers/http/system"
	"github.com/nikicasio/traffic-alert-app/internal/config"
	"github.com/nikicasio/traffic-alert-app/internal/middleware"
	"github.com/nikicasio/traffic-alert-app/internal/service"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

// Deps are the non-REST collaborators mounted next to the API.
type Deps struct {
	Auth     middleware.Authenticator
	Realtime http.Handler
	Metrics  http.Handler
	Ready    map[string]system.Pinger
}

func NewServer(cfg *config.Config, logger *slog.Logger, svc *service.Service, deps Deps) *Server {
	adminHandler := admin.NewHandler(logger, svc.Alerts, svc.Stats)
	publicHandler := public.NewHandler(logger, svc.Alerts, svc.Gateway)
	systemHandler := system.NewHandler(logger, deps.Ready)

	r := InitRouter(cfg, adminHandler, publicHandler, systemHandler, deps, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func InitRouter(cfg *config.Config, adminHandler *admin.Handler, publicHandler *public.Handler, systemHandler *system.Handler, deps Deps, logger *slog.Logger) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}
	if deps.Realtime != nil {
		r.With(middleware.Limit(5, 10, 10*time.Minute, logger)).Method(http.MethodGet, "/ws", deps.Realtime)
	}

	r.Route("/api/v1", func(api chi.Router) {
		// ADMIN
		api.Route("/admin", func(ar chi.Router) {
			ar.Use(middleware.APIKeyMiddleware(cfg.APIKey))
			ar.Use(middleware.Limit(2, 5, 10*time.Minute, logger))

			ar.Get("/stats", adminHandler.AdminStats)
			ar.Get("/alerts/{id}", adminHandler.AdminAlertGet)
			ar.Patch("/alerts/{id}/toggle", adminHandler.AdminAlertToggle)
			ar.Delete("/alerts/{id}", adminHandler.AdminAlertDelete)
		})

		// AUTHENTICATED
		api.Group(func(ur chi.Router) {
			ur.Use(middleware.RequireUser(deps.Auth, logger))
			ur.Use(middleware.Limit(10, 20, 5*time.Minute, logger))

			ur.Route("/alerts", func(ar chi.Router) {
				ar.Get("/", publicHandler.AlertsNearby)
				ar.Post("/", publicHandler.AlertReport)
				ar.Get("/directional", publicHandler.AlertsDirectional)

				ar.Route("/{id}", func(rr chi.Router) {
					rr.Get("/", publicHandler.AlertGet)
					rr.Put("/", publicHandler.AlertUpdate)
					rr.Delete("/", publicHandler.AlertDelete)
					rr.Post("/confirm", publicHandler.AlertConfirm)
				})
			})

			ur.Get("/user/reports", publicHandler.UserReports)
		})

		// SYSTEM
		api.Get("/health", systemHandler.SystemHealth)
		api.Get("/ready", systemHandler.SystemReady)
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
