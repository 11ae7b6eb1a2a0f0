package tail

import (
	"time"

	"github.com/althof3/votara/coordinator/chain"
	"github.com/althof3/votara/coordinator/db"
	"github.com/pkg/errors"
)

// Option configures the tail service.
type Option func(s *Service) error

// WithDatabase sets the store the tail applies events to.
func WithDatabase(d db.Database) Option {
	return func(s *Service) error {
		if d == nil {
			return errors.New("tail requires a database")
		}
		s.db = d
		return nil
	}
}

// WithChainReader sets the gateway the tail fetches blocks and logs from.
func WithChainReader(r chain.Reader) Option {
	return func(s *Service) error {
		if r == nil {
			return errors.New("tail requires a chain reader")
		}
		s.chain = r
		return nil
	}
}

// WithDeploymentBlock sets the block the first window starts from when the
// store holds no cursor yet. No voting event can precede the contract's
// deployment.
func WithDeploymentBlock(block uint64) Option {
	return func(s *Service) error {
		s.cfg.deploymentBlock = block
		return nil
	}
}

// WithPollInterval sets how long the tail sleeps once it has caught up.
func WithPollInterval(d time.Duration) Option {
	return func(s *Service) error {
		s.cfg.pollInterval = d
		return nil
	}
}

// WithMaxWindow bounds how many blocks one pass may cover.
func WithMaxWindow(blocks uint64) Option {
	return func(s *Service) error {
		if blocks == 0 {
			return errors.New("tail window must cover at least one block")
		}
		s.cfg.maxWindow = blocks
		return nil
	}
}

// WithConfirmations sets how many blocks behind the head the tail follows.
func WithConfirmations(depth uint64) Option {
	return func(s *Service) error {
		s.cfg.confirmations = depth
		return nil
	}
}

// WithBackoffCeiling caps the exponential retry delay after RPC failures.
func WithBackoffCeiling(d time.Duration) Option {
	return func(s *Service) error {
		if d <= 0 {
			return errors.New("backoff ceiling must be positive")
		}
		s.cfg.backoffCeiling = d
		return nil
	}
}

// WithLeaseTTL sets the tail lease duration. The lease is renewed once per
// pass, so the TTL must comfortably exceed the poll interval.
func WithLeaseTTL(d time.Duration) Option {
	return func(s *Service) error {
		s.cfg.leaseTTL = d
		return nil
	}
}

// WithMaxGoroutines sets the goroutine count tolerated before the service
// reports itself unhealthy. Zero disables the check.
func WithMaxGoroutines(n int) Option {
	return func(s *Service) error {
		s.cfg.maxRoutines = n
		return nil
	}
}
