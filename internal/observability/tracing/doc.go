// Package tracing provides OpenTelemetry tracing integration.
//
// Setup installs a global TracerProvider and the W3C trace-context
// propagator. When an OTLP endpoint is configured spans are batched to it
// over gRPC; otherwise spans are still created (so trace IDs appear in logs
// and the X-Trace-Id header) but never exported.
//
// Example usage:
//
//	shutdown, err := tracing.Setup(ctx, tracing.Config{ServiceName: "content-api"})
//	defer shutdown(context.Background())
//
//	ctx, span := tracing.StartSpan(ctx, "mongodb.articles.find")
//	defer span.End()
package tracing
