package infra

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Breaker guards calls to a flaky provider (the spreadsheet API). After
// FailureThreshold consecutive failures it opens and fails fast for
// OpenTimeout, then lets a single probe through. It never retries.
type Breaker struct {
	name             string
	failureThreshold int
	openTimeout      time.Duration

	mu       sync.Mutex
	state    BreakerState
	failures int
	openedAt time.Time
	probing  bool
	now      func() time.Time
}

type BreakerState int

const (
	BreakerClosed BreakerState = iota
	BreakerOpen
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrBreakerOpen is returned while the breaker fails fast.
var ErrBreakerOpen = errors.New("circuit breaker is open")

func NewBreaker(name string, failureThreshold int, openTimeout time.Duration) *Breaker {
	if failureThreshold <= 0 {
		failureThreshold = 5
	}
	if openTimeout <= 0 {
		openTimeout = time.Minute
	}
	return &Breaker{
		name:             name,
		failureThreshold: failureThreshold,
		openTimeout:      openTimeout,
		now:              time.Now,
	}
}

func (b *Breaker) Name() string { return b.name }

// State reports the current state; an open breaker whose timeout elapsed reads as half-open.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentLocked()
}

func (b *Breaker) currentLocked() BreakerState {
	if b.state == BreakerOpen && b.now().Sub(b.openedAt) >= b.openTimeout {
		b.state = BreakerHalfOpen
		b.probing = false
	}
	return b.state
}

// Do runs fn unless the breaker is open or a half-open probe is already in flight.
func (b *Breaker) Do(fn func() error) error {
	b.mu.Lock()
	switch b.currentLocked() {
	case BreakerOpen:
		b.mu.Unlock()
		return ErrBreakerOpen
	case BreakerHalfOpen:
		if b.probing {
			b.mu.Unlock()
			return ErrBreakerOpen
		}
		b.probing = true
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.probing = false
	if err == nil {
		if b.state != BreakerClosed {
			log.Info().Str("breaker", b.name).Msg("circuit breaker closed")
		}
		b.state = BreakerClosed
		b.failures = 0
		return nil
	}

	b.failures++
	if b.state == BreakerHalfOpen || b.failures >= b.failureThreshold {
		if b.state != BreakerOpen {
			log.Warn().Str("breaker", b.name).Int("failures", b.failures).Msg("circuit breaker opened")
		}
		b.state = BreakerOpen
		b.openedAt = b.now()
		b.failures = 0
	}
	return err
}
