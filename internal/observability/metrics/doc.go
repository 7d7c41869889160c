// Package metrics provides Prometheus business metrics and recording utilities.
//
// This package centralizes the application-level metrics:
//   - Content writes (articles created, updated, deleted; source articles stored)
//   - Like count reads
//   - MongoDB operation latency and failures
//   - Bulk import and feed ingest outcomes
//
// HTTP request metrics live next to the middleware in internal/handler/http.
// All metrics are registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "content-api/internal/observability/metrics"
//
//	start := time.Now()
//	err := coll.FindOne(ctx, filter).Decode(&doc)
//	metrics.RecordDBOperation("articles", "find_one", time.Since(start), err)
package metrics
