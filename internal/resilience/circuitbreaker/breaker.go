// Package circuitbreaker stops calling a dependency that keeps failing.
// It wraps github.com/sony/gobreaker and publishes state changes as metrics.
package circuitbreaker

import (
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"content-api/internal/observability/metrics"
)

// TripFunc decides from the counts of the current interval whether to open.
type TripFunc func(gobreaker.Counts) bool

// ConsecutiveFailures opens after n failures in a row.
func ConsecutiveFailures(n uint32) TripFunc {
	return func(c gobreaker.Counts) bool {
		return c.ConsecutiveFailures >= n
	}
}

// FailureRatio opens once at least minRequests were made and the share of
// failures reached ratio.
func FailureRatio(ratio float64, minRequests uint32) TripFunc {
	return func(c gobreaker.Counts) bool {
		if c.Requests < minRequests {
			return false
		}
		return float64(c.TotalFailures)/float64(c.Requests) >= ratio
	}
}

// Config describes one breaker.
type Config struct {
	Name string
	// MaxRequests may pass while half-open.
	MaxRequests uint32
	// Interval clears the closed-state counts. Zero never clears them.
	Interval time.Duration
	// Timeout is how long the breaker stays open.
	Timeout time.Duration
	Trip    TripFunc
	// Ignore reports errors that are returned to the caller but not held
	// against the dependency.
	Ignore func(error) bool
}

// Breaker guards calls to a single dependency.
type Breaker struct {
	cb   *gobreaker.CircuitBreaker
	name string
}

// New creates a closed breaker.
func New(cfg Config) *Breaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			metrics.RecordBreakerState(name, int(to))
		},
	}
	if cfg.Trip != nil {
		settings.ReadyToTrip = cfg.Trip
	}
	if cfg.Ignore != nil {
		ignore := cfg.Ignore
		settings.IsSuccessful = func(err error) bool {
			return err == nil || ignore(err)
		}
	}

	metrics.RecordBreakerState(cfg.Name, int(gobreaker.StateClosed))
	return &Breaker{cb: gobreaker.NewCircuitBreaker(settings), name: cfg.Name}
}

// Do runs fn unless the breaker is open. A rejected call returns
// gobreaker.ErrOpenState (or ErrTooManyRequests while half-open) without
// calling fn.
func (b *Breaker) Do(fn func() error) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, fn()
	})
	b.countRejection(err)
	return err
}

// Call is Do for functions with a result.
func Call[T any](b *Breaker, fn func() (T, error)) (T, error) {
	var out T
	err := b.Do(func() error {
		v, err := fn()
		out = v
		return err
	})
	return out, err
}

func (b *Breaker) countRejection(err error) {
	if IsRejected(err) {
		metrics.RecordBreakerRejection(b.name)
	}
}

// IsRejected reports whether err means the breaker refused the call.
func IsRejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// State returns the current state.
func (b *Breaker) State() gobreaker.State { return b.cb.State() }

// Name returns the breaker name.
func (b *Breaker) Name() string { return b.name }
