// Package mongodb implements the repository interfaces on top of the
// official MongoDB Go driver. Every call runs under a bounded operation
// timeout and through a shared database circuit breaker.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/attribute"

	"content-api/internal/domain/entity"
	"content-api/internal/observability/metrics"
	"content-api/internal/observability/tracing"
	"content-api/internal/resilience/circuitbreaker"
)

// DefaultOpTimeout bounds a single database call when no timeout is configured.
const DefaultOpTimeout = 5 * time.Second

// Options configures the repositories.
type Options struct {
	// OpTimeout bounds every database call. Zero means DefaultOpTimeout.
	OpTimeout time.Duration
	// Breaker is shared by all repositories of a process. Nil creates a new one.
	Breaker *circuitbreaker.Breaker
	// Now is the clock used for timestamps. Nil means time.Now.
	Now func() time.Time
}

type executor struct {
	collection string
	timeout    time.Duration
	breaker    *circuitbreaker.Breaker
	now        func() time.Time
}

func newExecutor(collection string, opts Options) executor {
	e := executor{
		collection: collection,
		timeout:    opts.OpTimeout,
		breaker:    opts.Breaker,
		now:        opts.Now,
	}
	if e.timeout <= 0 {
		e.timeout = DefaultOpTimeout
	}
	if e.breaker == nil {
		e.breaker = circuitbreaker.NewMongo()
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// run executes fn with the operation timeout and through the breaker.
// mongo.ErrNoDocuments becomes entity.ErrNotFound without counting as a failure;
// every other error is wrapped with entity.ErrPersistence.
func (e executor) run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	ctx, span := tracing.StartSpan(ctx, "mongodb."+e.collection+"."+op,
		attribute.String("db.system", "mongodb"),
		attribute.String("db.collection.name", e.collection),
		attribute.String("db.operation.name", op),
	)

	notFound := false
	start := time.Now()
	err := e.breaker.Do(func() error {
		err := fn(ctx)
		if errors.Is(err, mongo.ErrNoDocuments) {
			notFound = true
			return nil
		}
		return err
	})
	metrics.RecordDBOperation(e.collection, op, time.Since(start), err)
	tracing.EndSpan(span, err)

	switch {
	case err != nil:
		return fmt.Errorf("%w: %s %s: %w", entity.ErrPersistence, e.collection, op, err)
	case notFound:
		return entity.ErrNotFound
	}
	return nil
}

func (e executor) timestamp() time.Time {
	// BSON dates carry millisecond precision
	return e.now().UTC().Truncate(time.Millisecond)
}
