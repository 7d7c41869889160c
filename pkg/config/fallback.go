package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadResult is the outcome of loading one value with LoadWithFallback.
type LoadResult[T any] struct {
	Value T
	// Warning is set when the environment value was rejected.
	Warning         string
	FallbackApplied bool
}

// LoadWithFallback reads key, parses it and validates it. An unset variable
// yields the default silently; a value that fails parsing or validation
// yields the default together with a warning. It never fails, which lets
// long-running daemons start with a safe configuration.
//
// Example:
//
//	res := LoadWithFallback("INGEST_CRON_SCHEDULE", "0 */6 * * *", ParseString, ValidateCronSchedule)
//	if res.FallbackApplied {
//	    logger.Warn("configuration fallback applied", slog.String("warning", res.Warning))
//	}
func LoadWithFallback[T any](key string, defaultValue T, parse func(string) (T, error), validate func(T) error) LoadResult[T] {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return LoadResult[T]{Value: defaultValue}
	}

	value, err := parse(raw)
	if err == nil && validate != nil {
		err = validate(value)
	}
	if err != nil {
		return LoadResult[T]{
			Value:           defaultValue,
			Warning:         fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'", key, raw, err, defaultValue),
			FallbackApplied: true,
		}
	}
	return LoadResult[T]{Value: value}
}

// ParseString is the identity parser for LoadWithFallback.
func ParseString(s string) (string, error) { return s, nil }

// ParseInt parses a base-10 integer for LoadWithFallback.
func ParseInt(s string) (int, error) { return strconv.Atoi(s) }

// ParseFloat parses a float64 for LoadWithFallback.
func ParseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

// ParseDuration parses a Go duration string for LoadWithFallback.
func ParseDuration(s string) (time.Duration, error) { return time.ParseDuration(s) }
