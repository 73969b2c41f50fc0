// Package httpapi is the REST boundary of the session server: a chi router
// with uniform CORS, request metadata, logging and panic recovery in front of
// the login, refresh, logout and protected-route handlers.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/crmauth/internal/logging"
	"github.com/dmitrijs2005/crmauth/internal/server/auth"
	"github.com/dmitrijs2005/crmauth/internal/server/config"
	"github.com/dmitrijs2005/crmauth/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 10 * time.Second

// SessionService is what the handlers need from the service layer.
// *services.UserService implements it.
type SessionService interface {
	Login(ctx context.Context, email, password string, rememberMe bool) (*services.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*services.Session, error)
	Logout(ctx context.Context, refreshToken string) error
	Authenticate(accessToken string) (*auth.Claims, error)
}

type Server struct {
	address        string
	users          SessionService
	logger         logging.Logger
	frontendOrigin string
	secureCookies  bool
	handler        http.Handler
}

func NewServer(cfg *config.Config, l logging.Logger, us SessionService) *Server {
	s := &Server{
		address:        cfg.EndpointAddrHTTP,
		users:          us,
		logger:         l.With("module", "http_server"),
		frontendOrigin: cfg.FrontendOrigin,
		secureCookies:  cfg.SecureCookies,
	}
	s.handler = s.routes()
	return s
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(s.cors)
	r.Use(middleware.RealIP)
	r.Use(s.requestMeta)
	r.Use(s.logRequests)
	r.Use(s.recoverer)

	r.Get("/healthz", s.healthz)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.login)
		r.Post("/logout", s.logout)
		r.Post("/refresh", s.refresh)
		r.Get("/protected", s.protected)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-done
	return nil
}
