// Package breaker provides a circuit breaker for host metric probes. When a
// probe fails repeatedly, the breaker "opens" and the probe is skipped for
// increasing intervals, so a broken counter does not cost a full query
// timeout on every sampling tick and does not flood the log.
package breaker

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// ErrOpen is returned by Call when the circuit is open and the probe was
// not executed.
var ErrOpen = errors.New("breaker: circuit open")

// State represents the circuit breaker state.
type State int

const (
	// StateClosed is normal operation; calls pass through to the probe.
	StateClosed State = iota
	// StateOpen means failures exceeded the threshold; calls are skipped.
	StateOpen
	// StateHalfOpen lets a single call through to test whether the probe
	// has recovered.
	StateHalfOpen
)

// String returns the human-readable state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Config configures the circuit breaker behavior.
type Config struct {
	// MaxFailures is the number of consecutive failures before opening the circuit.
	MaxFailures int
	// ResetTimeout is the initial wait duration before transitioning from Open to HalfOpen.
	ResetTimeout time.Duration
	// MaxResetTimeout caps the exponential backoff.
	MaxResetTimeout time.Duration
	// BackoffMultiplier is the factor by which ResetTimeout increases on each re-open.
	BackoffMultiplier float64
	// Logger for circuit breaker events. Nil is safe (a discard logger is used).
	Logger *slog.Logger
}

// DefaultConfig returns the defaults used for host probes sampled about
// once per second.
func DefaultConfig() Config {
	return Config{
		MaxFailures:       5,
		ResetTimeout:      10 * time.Second,
		MaxResetTimeout:   5 * time.Minute,
		BackoffMultiplier: 2.0,
	}
}

// Validate reports the first configuration value that would make the
// breaker misbehave.
func (c Config) Validate() error {
	if c.MaxFailures < 1 {
		return fmt.Errorf("breaker: max_failures must be at least 1, got %d", c.MaxFailures)
	}
	if c.ResetTimeout <= 0 {
		return fmt.Errorf("breaker: reset_timeout must be positive, got %s", c.ResetTimeout)
	}
	if c.MaxResetTimeout < c.ResetTimeout {
		return fmt.Errorf("breaker: max_reset_timeout %s is below reset_timeout %s", c.MaxResetTimeout, c.ResetTimeout)
	}
	if c.BackoffMultiplier < 1 {
		return fmt.Errorf("breaker: backoff_multiplier must be >= 1, got %g", c.BackoffMultiplier)
	}
	return nil
}

// Stats holds circuit breaker statistics for external inspection.
type Stats struct {
	State            State
	ConsecutiveFails int
	TotalFailures    int
	TotalSuccesses   int
	LastFailure      time.Time
	LastSuccess      time.Time
	CurrentTimeout   time.Duration
	ConsecutiveSkips int
}

// Breaker tracks failures of a single named probe.
type Breaker struct {
	name   string
	config Config
	logger *slog.Logger
	now    func() time.Time

	mu               sync.Mutex
	state            State
	failures         int
	lastFailure      time.Time
	lastSuccess      time.Time
	currentTimeout   time.Duration
	totalFailures    int
	totalSuccesses   int
	consecutiveSkips int
}

// New returns a closed breaker for the named probe.
// If cfg.Logger is nil, a discard logger is used.
func New(name string, cfg Config) *Breaker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Breaker{
		name:           name,
		config:         cfg,
		logger:         logger,
		now:            time.Now,
		state:          StateClosed,
		currentTimeout: cfg.ResetTimeout,
	}
}

// Name returns the probe name the breaker guards.
func (b *Breaker) Name() string {
	return b.name
}

// Allow reports whether the probe may run now. An open circuit whose
// timeout has elapsed moves to half-open and allows exactly one call.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed, StateHalfOpen:
		return true
	case StateOpen:
		elapsed := b.now().Sub(b.lastFailure)
		if elapsed < b.currentTimeout {
			b.consecutiveSkips++
			b.logger.Debug("circuit breaker open, skipping probe",
				"probe", b.name,
				"failures", b.failures,
				"retry_in", b.currentTimeout-elapsed,
				"skips", b.consecutiveSkips,
			)
			return false
		}
		b.state = StateHalfOpen
		b.logger.Info("circuit breaker transitioning to half-open", "probe", b.name)
		return true
	default:
		return false
	}
}

// Success records a successful call and closes the circuit.
func (b *Breaker) Success() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateHalfOpen {
		b.logger.Info("circuit breaker closed after successful probe", "probe", b.name)
	}
	b.state = StateClosed
	b.failures = 0
	b.consecutiveSkips = 0
	b.totalSuccesses++
	b.lastSuccess = b.now()
	b.currentTimeout = b.config.ResetTimeout
}

// Failure records a failed call. In the closed state it opens the circuit
// once MaxFailures consecutive failures have been seen; in the half-open
// state it re-opens immediately with a longer timeout.
func (b *Breaker) Failure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	b.totalFailures++
	b.lastFailure = b.now()

	switch b.state {
	case StateHalfOpen:
		b.currentTimeout = time.Duration(float64(b.currentTimeout) * b.config.BackoffMultiplier)
		if b.currentTimeout > b.config.MaxResetTimeout {
			b.currentTimeout = b.config.MaxResetTimeout
		}
		b.state = StateOpen
		b.logger.Warn("circuit breaker re-opened after half-open failure",
			"probe", b.name,
			"failures", b.failures,
			"next_timeout", b.currentTimeout,
		)
	case StateClosed:
		if b.failures >= b.config.MaxFailures {
			b.state = StateOpen
			b.currentTimeout = b.config.ResetTimeout
			b.logger.Warn("circuit breaker opened",
				"probe", b.name,
				"failures", b.failures,
				"timeout", b.currentTimeout,
			)
		}
	}
}

// Call runs fn if the circuit allows it and records the outcome. It returns
// ErrOpen without calling fn while the circuit is open.
func (b *Breaker) Call(fn func() error) error {
	if !b.Allow() {
		return ErrOpen
	}
	if err := fn(); err != nil {
		b.Failure()
		return err
	}
	b.Success()
	return nil
}

// State returns the current circuit breaker state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Stats returns a snapshot of the circuit breaker statistics.
func (b *Breaker) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Stats{
		State:            b.state,
		ConsecutiveFails: b.failures,
		TotalFailures:    b.totalFailures,
		TotalSuccesses:   b.totalSuccesses,
		LastFailure:      b.lastFailure,
		LastSuccess:      b.lastSuccess,
		CurrentTimeout:   b.currentTimeout,
		ConsecutiveSkips: b.consecutiveSkips,
	}
}

// Reset forces the breaker back to the closed state, clearing all failure
// counters and restoring the initial timeout.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state = StateClosed
	b.failures = 0
	b.consecutiveSkips = 0
	b.currentTimeout = b.config.ResetTimeout
	b.logger.Info("circuit breaker manually reset", "probe", b.name)
}
