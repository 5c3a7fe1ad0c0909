// Package httpapi is the JSON REST shell over the accounts model. It decodes
// requests into typed parameters, runs one model operation per request, and
// maps the resulting error kinds to HTTP statuses. The model does all the
// work; this layer is deliberately thin and swappable.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/jumpaku/accountd/internal/logging"
	"github.com/jumpaku/accountd/internal/server/accounts"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger   logging.Logger
	accounts *accounts.Service
	srv      *http.Server
}

func NewServer(addr string, logger logging.Logger, accountService *accounts.Service) *Server {
	s := &Server{logger: logger, accounts: accountService}
	s.srv = &http.Server{Addr: addr, Handler: s.routes()}
	return s
}

func (s *Server) routes() http.Handler {
	router := httprouter.New()
	router.POST("/accounts/signup", s.wrap(s.handleSignup))
	router.POST("/accounts/close", s.wrap(s.handleClose))
	router.POST("/token/issue", s.wrap(s.handleIssueToken))
	router.POST("/token/verify", s.wrap(s.handleVerifyToken))
	router.GET("/ping", s.wrap(s.handlePing))
	return router
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
