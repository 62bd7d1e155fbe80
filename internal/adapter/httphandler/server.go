package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultHandlerTimeout = 5 * time.Second
	defaultIdleTimeout    = 30 * time.Second
)

// A ServerConfig used for setup [HTTPServer].
//
// Zero timeouts are replaced with defaults.
type ServerConfig struct {
	Addr           string
	HandlerTimeout time.Duration
	IdleTimeout    time.Duration
}

type HTTPServer struct {
	httpServer *http.Server
}

func NewHTTPServer(config ServerConfig, handler http.Handler) HTTPServer {
	if config.HandlerTimeout <= 0 {
		config.HandlerTimeout = defaultHandlerTimeout
	}
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = defaultIdleTimeout
	}

	handler = http.TimeoutHandler(handler, config.HandlerTimeout, "unavailable")
	s := &http.Server{
		Addr:              config.Addr,
		Handler:           handler,
		ReadHeaderTimeout: config.HandlerTimeout,
		IdleTimeout:       config.IdleTimeout,
	}
	return HTTPServer{s}
}

func (s HTTPServer) Run(stopFn context.CancelFunc) {
	const op = "HTTPServer.Run"
	log := slog.With("op", op)

	defer stopFn()
	log.Info("http server is listening", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return
		}
		log.Error("unexpected server shutdown", "err", err)
	}
}

func (s HTTPServer) Close(ctx context.Context) {
	const op = "HTTPServer.Close"
	log := slog.With("op", op)

	log.Info("closing http server...")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		log.Error("failed to shutdown gracefully", "err", err)
	}
	log.Info("http server is closed")
}
