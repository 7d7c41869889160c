package circuitbreaker

import (
	"context"
	"errors"
	"time"
)

// MongoConfig is shared by every repository of a process. It opens after 5
// consecutive failures and probes again after 30 seconds.
// A caller that gave up (context.Canceled) is not the database's fault.
func MongoConfig() Config {
	return Config{
		Name:        "mongodb",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		Trip:        ConsecutiveFailures(5),
		Ignore: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},
	}
}

// FeedConfig guards RSS feed downloads. Publishers fail intermittently, so
// it trips on a failure ratio rather than a streak.
func FeedConfig() Config {
	return Config{
		Name:        "feed-fetch",
		MaxRequests: 5,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		Trip:        FailureRatio(0.7, 10),
	}
}

// PageConfig guards full-article page fetches.
func PageConfig() Config {
	return Config{
		Name:        "content-fetch",
		MaxRequests: 5,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		Trip:        FailureRatio(0.6, 5),
	}
}

// NewMongo returns a breaker with MongoConfig.
func NewMongo() *Breaker {
	return New(MongoConfig())
}
