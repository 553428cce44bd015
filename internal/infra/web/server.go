package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"telegram-birthday-app/internal/usecase"
)

// Server is the HTTP surface the Mini App and the bot talk to.
type Server struct {
	userUC    usecase.UserUseCase
	profileUC usecase.ProfileUseCase
	log       *zerolog.Logger

	srv *http.Server
}

func NewServer(port int, userUC usecase.UserUseCase, profileUC usecase.ProfileUseCase, logger *zerolog.Logger) *Server {
	s := &Server{
		userUC:    userUC,
		profileUC: profileUC,
		log:       logger,
	}
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router builds the chi mux. Exposed separately so tests can drive the full
// middleware chain through httptest without binding a port.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.StripSlashes)
	r.Use(chimiddleware.Recoverer)
	r.Use(corsMiddleware)
	r.Use(traceMiddleware)
	r.Use(requestLogger(s.log))
	r.Use(metricsMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/stats", s.handleStats)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/user", func(r chi.Router) {
		r.Post("/user_data", s.handleCreateUser)
		r.Get("/user_data/{userID}", s.handleGetUser)
		r.Post("/save_birthdate", s.handleSaveBirthdate)
	})

	// Aliases the bot calls.
	r.Post("/api/user_data", s.handleCreateUser)
	r.Get("/api/user_data/{userID}", s.handleGetUser)

	r.Get("/profile/{userID}", s.handleGetProfile)

	return r
}

// Start blocks until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.srv.Addr).Msg("http server listening")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
