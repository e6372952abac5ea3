// Package server exposes the bot over HTTP.
//
// Endpoints:
//
//	POST /chat    - run one conversational turn
//	GET  /health  - liveness probe
//	GET  /ready   - readiness probe (pings the conversation store)
//
// File structure:
//   - server.go: server setup and lifecycle
//   - middleware.go: request ID, logging, recovery, CORS
//   - auth.go: bearer-token authentication
//   - chat.go: the chat endpoint
//   - health.go: probes
//   - response.go: JSON helpers
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/charla-ai/charla/bot/contract"
)

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout bounds header reads to keep slow clients from
	// holding connections open.
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is generous because a turn may ride out several backoff
	// rounds before answering.
	WriteTimeout = 2 * time.Minute

	// IdleTimeout is the keep-alive idle limit.
	IdleTimeout = 120 * time.Second
)

type Config struct {
	Addr string `envconfig:"ADDR" default:":8080"`
}

// ChatService runs one conversational turn. The orchestrator satisfies it.
type ChatService interface {
	HandleMessage(ctx context.Context, userID, message string, history []contractx.Turn) (contractx.Reply, []contractx.Turn, error)
}

// Pinger reports whether the conversation store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the HTTP front of the bot.
type Server struct {
	mux *http.ServeMux

	verifier contractx.TokenVerifier

	chat   *ChatHandler
	health *HealthHandler
}

// NewServer registers all routes. verifier may be nil, which serves every
// request anonymously; pinger may be nil when no store is configured.
func NewServer(svc ChatService, verifier contractx.TokenVerifier, pinger Pinger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		mux:      mux,
		verifier: verifier,
		chat:     NewChatHandler(svc),
		health:   NewHealthHandler(pinger),
	}

	s.chat.RegisterRoutes(mux, verifier)
	s.health.RegisterRoutes(mux)

	return s
}

// Handler returns the mux with the middleware chain applied.
// Order: recovery -> request ID -> logging -> CORS -> routes.
func (s *Server) Handler() http.Handler {
	return chain(s.mux, recoveryMiddleware, requestIDMiddleware, loggingMiddleware, corsMiddleware)
}

// Run starts the server and blocks until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("starting http server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
