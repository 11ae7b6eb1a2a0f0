package rpc

import (
	"time"

	"github.com/pkg/errors"

	"github.com/althof3/votara/coordinator/auth"
	"github.com/althof3/votara/coordinator/chain"
	"github.com/althof3/votara/coordinator/db"
)

// Option configures the API service.
type Option func(s *Service) error

// WithListenAddr sets the host:port the HTTP server binds.
func WithListenAddr(addr string) Option {
	return func(s *Service) error {
		if addr == "" {
			return errors.New("listen address must not be empty")
		}
		s.cfg.listenAddr = addr
		return nil
	}
}

// WithAllowedOrigins sets the CORS origin allowlist.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Service) error {
		s.cfg.allowedOrigins = origins
		return nil
	}
}

// WithDatabase sets the metadata store handlers read and write.
func WithDatabase(d db.Database) Option {
	return func(s *Service) error {
		if d == nil {
			return errors.New("api service requires a database")
		}
		s.db = d
		return nil
	}
}

// WithChainGateway sets the gateway behind group creation and the on-chain
// read endpoints.
func WithChainGateway(g chain.Gateway) Option {
	return func(s *Service) error {
		if g == nil {
			return errors.New("api service requires a chain gateway")
		}
		s.chain = g
		return nil
	}
}

// WithAuthGate sets the gate guarding mutating routes.
func WithAuthGate(g *auth.Gate) Option {
	return func(s *Service) error {
		if g == nil {
			return errors.New("api service requires an auth gate")
		}
		s.gate = g
		return nil
	}
}

// WithRosterCacheTTL overrides how long rendered group-member responses are
// kept.
func WithRosterCacheTTL(d time.Duration) Option {
	return func(s *Service) error {
		if d <= 0 {
			return errors.New("roster cache TTL must be positive")
		}
		s.cfg.rosterTTL = d
		return nil
	}
}
