// Package rpc exposes the coordinator's JSON HTTP surface: the login
// handshake, the poll lifecycle up to group creation, and the read side
// (lists, results, rosters, on-chain tallies). Handlers stay stateless and
// orchestrate the store, the identity projection and the chain gateway;
// chain-derived facts are never written here.
package rpc

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/althof3/votara/coordinator/auth"
	"github.com/althof3/votara/coordinator/chain"
	"github.com/althof3/votara/coordinator/db"
)

var log = logrus.WithField("prefix", "rpc")

type config struct {
	listenAddr     string
	allowedOrigins []string
	rosterTTL      time.Duration
}

// Service serves the coordinator API over HTTP.
type Service struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    *config

	db    db.Database
	chain chain.Gateway
	gate  *auth.Gate

	router *mux.Router
	server *http.Server

	// rosterCache keeps rendered group-member responses for a short TTL.
	// Rosters are immutable once set, so staleness only delays first sight.
	rosterCache *cache.Cache

	startFailure error
}

// New builds the API service and wires its routes.
func New(ctx context.Context, opts ...Option) (*Service, error) {
	ctx, cancel := context.WithCancel(ctx)
	s := &Service{
		ctx:    ctx,
		cancel: cancel,
		cfg: &config{
			listenAddr: "127.0.0.1:8080",
			rosterTTL:  30 * time.Second,
		},
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			cancel()
			return nil, err
		}
	}
	if s.db == nil {
		cancel()
		return nil, errors.New("api service requires a database")
	}
	if s.chain == nil {
		cancel()
		return nil, errors.New("api service requires a chain gateway")
	}
	if s.gate == nil {
		cancel()
		return nil, errors.New("api service requires an auth gate")
	}
	s.rosterCache = cache.New(s.cfg.rosterTTL, 2*s.cfg.rosterTTL)

	s.router = mux.NewRouter()
	s.registerRoutes(s.router)
	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowCredentials: true,
		MaxAge:           600,
		AllowedHeaders:   []string{"*"},
	})
	s.server = &http.Server{
		Addr:              s.cfg.listenAddr,
		Handler:           c.Handler(s.router),
		ReadHeaderTimeout: time.Second,
	}
	return s, nil
}

func (s *Service) registerRoutes(r *mux.Router) {
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/nonce", s.GetNonce).Methods(http.MethodGet)
	api.HandleFunc("/auth/verify", s.Login).Methods(http.MethodPost)

	api.Handle("/polls", s.gate.RequireAuth(http.HandlerFunc(s.CreatePoll))).Methods(http.MethodPost)
	api.HandleFunc("/polls", s.ListPolls).Methods(http.MethodGet)
	api.HandleFunc("/polls/{id}", s.GetPoll).Methods(http.MethodGet)
	api.Handle("/polls/{id}", s.gate.RequireAuth(http.HandlerFunc(s.UpdatePoll))).Methods(http.MethodPut)
	api.Handle("/polls/{id}/create-group", s.gate.RequireAuth(http.HandlerFunc(s.CreateGroup))).Methods(http.MethodPost)
	api.HandleFunc("/polls/{id}/results", s.GetResults).Methods(http.MethodGet)
	api.HandleFunc("/polls/{id}/group-members", s.GetGroupMembers).Methods(http.MethodGet)
	api.HandleFunc("/polls/{id}/onchain", s.GetPollOnChain).Methods(http.MethodGet)

	api.HandleFunc("/version", s.GetVersion).Methods(http.MethodGet)
}

// Start launches the HTTP listener.
func (s *Service) Start() {
	go func() {
		log.WithField("address", s.cfg.listenAddr).Info("Starting coordinator API")
		if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
			log.WithError(err).Error("Could not start coordinator API")
			s.startFailure = err
		}
	}()
}

// Stop shuts the listener down gracefully.
func (s *Service) Stop() error {
	defer s.cancel()
	if s.server != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(s.ctx, 2*time.Second)
		defer shutdownCancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				log.Warn("Existing connections terminated")
			} else {
				log.WithError(err).Error("Could not gracefully shut down coordinator API")
			}
		}
	}
	return nil
}

// Status returns an error when the listener failed to come up.
func (s *Service) Status() error {
	return s.startFailure
}
