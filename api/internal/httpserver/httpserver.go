package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"span-checker/api/internal/handle"
)

// NewRouter wires the public routes. The returned router can take extra routes
// (the Telegram webhook) before it is served.
func NewRouter(h *handle.Handle) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestID, accessLog)

	router.HandleFunc("/", h.Index).Methods(http.MethodGet)
	router.HandleFunc("/api/ping", h.Ping).Methods(http.MethodGet)
	router.HandleFunc("/api/check", h.Check).Methods(http.MethodPost)
	router.PathPrefix("/static/").Handler(h.Static()).Methods(http.MethodGet, http.MethodHead)

	return router
}

type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration
}

func New(addr string, handler http.Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: 5 * time.Second,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logrus.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logrus.Info("server gracefully stopped")
	return nil
}
