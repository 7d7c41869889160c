// Package observability groups the logging, metrics and tracing subpackages.
//
// Subpackages:
//   - logging: slog construction and request-scoped loggers
//   - metrics: Prometheus business and MongoDB metrics
//   - tracing: OpenTelemetry provider setup and HTTP middleware
package observability
