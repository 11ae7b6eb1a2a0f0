// Package tail implements the chain tail: the background follower that turns
// confirmed Voting contract logs into store facts. The tail is the only
// writer of ACTIVE transitions and vote records, so every tally served by the
// API traces back to an on-chain event.
package tail

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/althof3/votara/config/params"
	"github.com/althof3/votara/coordinator/chain"
	"github.com/althof3/votara/coordinator/db"
	"github.com/althof3/votara/coordinator/types"
)

var log = logrus.WithField("prefix", "tail")

// backoffInitial is the first retry delay after an RPC failure. Each further
// failure doubles the delay up to the configured ceiling.
const backoffInitial = 2 * time.Second

// nullifierCacheSize bounds the set of recently applied vote nullifiers kept
// in memory to drop replayed VoteCast logs before they reach the store.
const nullifierCacheSize = 1 << 14

type config struct {
	deploymentBlock uint64
	pollInterval    time.Duration
	maxWindow       uint64
	confirmations   uint64
	backoffCeiling  time.Duration
	leaseTTL        time.Duration
	maxRoutines     int
}

// passResult tells the run loop how to follow up one window pass.
type passResult int

const (
	// passIdle means the tail has caught up to the follow distance and
	// should sleep for a poll interval.
	passIdle passResult = iota
	// passAdvanced means the window was capped and more confirmed blocks
	// remain, so the next pass starts immediately.
	passAdvanced
	// passRetry means an RPC call failed. The cursor did not move and the
	// same window is retried after a backoff.
	passRetry
)

// Service follows the chain and applies decoded events to the store. Exactly
// one instance may lead at a time: leadership is a store lease that is
// renewed before every pass and respected by standing by when another owner
// holds it.
type Service struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    *config

	db      db.Database
	chain   chain.Reader
	decoder *eventDecoder

	// seen caches nullifiers of recently applied votes. Replayed VoteCast
	// logs are dropped here instead of costing a store transaction.
	seen  *lru.Cache
	owner string

	lock     sync.RWMutex
	runError error

	done chan struct{}
}

// New constructs the tail around a store and a chain reader. Defaults come
// from the active coordinator config; options override them.
func New(ctx context.Context, opts ...Option) (*Service, error) {
	base := params.CoordinatorConfig()
	ctx, cancel := context.WithCancel(ctx)
	s := &Service{
		ctx:    ctx,
		cancel: cancel,
		cfg: &config{
			deploymentBlock: base.DeploymentBlock,
			pollInterval:    time.Duration(base.SecondsPerTailPoll) * time.Second,
			maxWindow:       base.TailMaxWindow,
			confirmations:   base.Confirmations,
			backoffCeiling:  time.Duration(base.TailBackoffCeilingSeconds) * time.Second,
			leaseTTL:        time.Duration(base.TailLeaseTTLSeconds) * time.Second,
		},
		owner: uuid.New().String(),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			cancel()
			return nil, err
		}
	}
	if s.db == nil {
		cancel()
		return nil, errors.New("tail requires a database")
	}
	if s.chain == nil {
		cancel()
		return nil, errors.New("tail requires a chain reader")
	}
	decoder, err := newEventDecoder()
	if err != nil {
		cancel()
		return nil, err
	}
	s.decoder = decoder
	seen, err := lru.New(nullifierCacheSize)
	if err != nil {
		cancel()
		return nil, errors.Wrap(err, "could not build nullifier cache")
	}
	s.seen = seen
	return s, nil
}

// Start launches the follower goroutine.
func (s *Service) Start() {
	log.WithFields(logrus.Fields{
		"owner":         s.owner,
		"confirmations": s.cfg.confirmations,
		"maxWindow":     s.cfg.maxWindow,
	}).Info("Starting chain tail")
	go s.run()
}

// Stop halts the follower and waits for it to release the tail lease.
func (s *Service) Stop() error {
	s.cancel()
	<-s.done
	return nil
}

// Status reports nil while the tail is healthy. Standing by behind another
// lease owner is healthy; a storage failure is not.
func (s *Service) Status() error {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.runError != nil {
		return s.runError
	}
	if s.cfg.maxRoutines > 0 && runtime.NumGoroutine() > s.cfg.maxRoutines {
		return fmt.Errorf("too many goroutines %d", runtime.NumGoroutine())
	}
	return nil
}

func (s *Service) recordError(err error) {
	log.WithError(err).Error("Chain tail halted")
	s.lock.Lock()
	defer s.lock.Unlock()
	s.runError = err
}

func (s *Service) run() {
	defer close(s.done)
	defer s.releaseLease()
	for s.ctx.Err() == nil {
		if !s.standby() {
			return
		}
		if !s.lead() {
			return
		}
	}
}

// standby blocks until this instance owns the tail lease. It returns false
// when the service is shutting down or the store failed.
func (s *Service) standby() bool {
	for {
		if s.ctx.Err() != nil {
			return false
		}
		held, err := s.db.AcquireTailLease(s.ctx, s.owner, s.cfg.leaseTTL)
		if err != nil {
			s.recordError(errors.Wrap(err, "could not acquire tail lease"))
			return false
		}
		if held {
			log.WithField("owner", s.owner).Info("Acquired tail lease, following chain")
			return true
		}
		log.Debug("Another instance holds the tail lease, standing by")
		if !s.sleep(s.cfg.leaseTTL) {
			return false
		}
	}
}

// lead runs window passes while the lease holds. It returns true when the
// lease was lost and the caller should stand by again, false on shutdown or
// storage failure.
func (s *Service) lead() bool {
	backoff := backoffInitial
	for {
		if s.ctx.Err() != nil {
			return false
		}
		if err := s.db.RenewTailLease(s.ctx, s.owner, s.cfg.leaseTTL); err != nil {
			if errors.Is(err, db.ErrLeaseLost) {
				leaseRenewFailures.Inc()
				log.Warn("Tail lease lost, standing by")
				return true
			}
			s.recordError(errors.Wrap(err, "could not renew tail lease"))
			return false
		}
		res, err := s.processWindow(s.ctx)
		if err != nil {
			s.recordError(err)
			return false
		}
		switch res {
		case passAdvanced:
			backoff = backoffInitial
		case passIdle:
			backoff = backoffInitial
			if !s.sleep(s.cfg.pollInterval) {
				return false
			}
		case passRetry:
			backoffCount.Inc()
			if backoff > s.cfg.backoffCeiling {
				backoff = s.cfg.backoffCeiling
			}
			log.Debugf("Retrying window in %v", backoff)
			if !s.sleep(backoff) {
				return false
			}
			backoff *= 2
		}
	}
}

// processWindow fetches and applies one window of confirmed logs. Errors are
// reserved for storage and decoding failures that must halt the tail; RPC
// failures map to passRetry so the same window is retried without moving the
// cursor.
func (s *Service) processWindow(ctx context.Context) (passResult, error) {
	cursor, err := s.db.TailCursor(ctx)
	if err != nil {
		return passIdle, errors.Wrap(err, "could not read tail cursor")
	}
	from := s.cfg.deploymentBlock
	if cursor != nil && cursor.LastProcessedBlock >= from {
		from = cursor.LastProcessedBlock + 1
	}

	head, err := s.chain.BlockNumber(ctx)
	if err != nil {
		log.WithError(err).Warn("Could not fetch chain head")
		return passRetry, nil
	}
	if head < s.cfg.confirmations {
		return passIdle, nil
	}
	follow := head - s.cfg.confirmations
	followBlockGauge.Set(float64(follow))
	if follow < from {
		return passIdle, nil
	}
	to := follow
	if to-from+1 > s.cfg.maxWindow {
		to = from + s.cfg.maxWindow - 1
	}

	logs, err := s.chain.FilterVotingLogs(ctx, from, to)
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"from": from,
			"to":   to,
		}).Warn("Could not filter voting logs")
		return passRetry, nil
	}

	events := make([]*types.ChainEvent, 0, len(logs))
	for _, lg := range logs {
		ev, err := s.decoder.decode(lg)
		if err != nil {
			return passIdle, errors.Wrapf(err, "could not decode log %d in block %d", lg.Index, lg.BlockNumber)
		}
		if ev == nil {
			continue
		}
		if ev.Kind == types.EventVoteCast && ev.NullifierHash != nil && s.seen.Contains(ev.NullifierHash.String()) {
			votesSkippedByCache.Inc()
			continue
		}
		events = append(events, ev)
	}
	sortEvents(events)

	start := time.Now()
	summary, err := s.db.ApplyEventBatch(ctx, events, to)
	if err != nil {
		return passIdle, errors.Wrapf(err, "could not apply events for blocks %d to %d", from, to)
	}
	batchApplyLatency.Observe(time.Since(start).Seconds())
	cursorBlockGauge.Set(float64(to))

	// Nullifiers enter the cache only after their batch is durable, so a
	// crash cannot leave the cache ahead of the store.
	for _, ev := range events {
		if ev.Kind == types.EventVoteCast && ev.NullifierHash != nil {
			s.seen.Add(ev.NullifierHash.String(), true)
		}
	}

	eventsApplied.WithLabelValues("poll_created").Add(float64(summary.CreationsStamped))
	eventsApplied.WithLabelValues("pending_creator").Add(float64(summary.CreationsPending))
	eventsApplied.WithLabelValues("poll_activated").Add(float64(summary.ActivationsApplied))
	eventsApplied.WithLabelValues("vote_cast").Add(float64(summary.VotesApplied))
	eventsSkipped.Add(float64(summary.Skipped))

	if summary.Total() > 0 {
		log.WithFields(logrus.Fields{
			"from":        from,
			"to":          to,
			"creations":   summary.CreationsStamped,
			"pending":     summary.CreationsPending,
			"activations": summary.ActivationsApplied,
			"votes":       summary.VotesApplied,
			"skipped":     summary.Skipped,
		}).Info("Applied voting events")
	}

	if to < follow {
		return passAdvanced, nil
	}
	return passIdle, nil
}

// sleep waits d or until shutdown, reporting whether the service should keep
// running.
func (s *Service) sleep(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-s.ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// releaseLease hands the lease back on shutdown so a peer can take over
// before the TTL runs out. The service context is already canceled here.
func (s *Service) releaseLease() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.db.ReleaseTailLease(ctx, s.owner); err != nil {
		log.WithError(err).Debug("Could not release tail lease")
	}
}
