package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func installExporter(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)))
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(resetGlobals)
	return exporter
}

func resetGlobals() {
	otel.SetTracerProvider(sdktrace.NewTracerProvider())
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())
}

func attrMap(kvs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(kvs))
	for _, kv := range kvs {
		m[kv.Key] = kv.Value
	}
	return m
}

func serve(status int, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})).ServeHTTP(rr, req)
	return rr
}

func TestMiddleware_CreatesSpanWithNormalizedRoute(t *testing.T) {
	exporter := installExporter(t)

	rr := serve(http.StatusOK, httptest.NewRequest(http.MethodGet, "/contents/654c609c1d32906852a3b01e", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "GET /contents/:id", span.Name)

	attrs := attrMap(span.Attributes)
	assert.Equal(t, int64(200), attrs["http.response.status_code"].AsInt64())
	assert.Equal(t, "/contents/:id", attrs["http.route"].AsString())
	assert.Equal(t, span.SpanContext.TraceID().String(), rr.Header().Get("X-Trace-Id"))
	assert.Equal(t, codes.Unset, span.Status.Code)
}

func TestMiddleware_PropagatesTraceContext(t *testing.T) {
	exporter := installExporter(t)

	const traceID = "4bf92f3577b34da6a3ce929d0e0e4736"
	req := httptest.NewRequest(http.MethodGet, "/contents", nil)
	req.Header.Set("traceparent", "00-"+traceID+"-00f067aa0ba902b7-01")
	serve(http.StatusOK, req)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, traceID, spans[0].SpanContext.TraceID().String())
	assert.Equal(t, "00f067aa0ba902b7", spans[0].Parent.SpanID().String())
}

func TestMiddleware_StatusCodes(t *testing.T) {
	tests := []struct {
		status int
		want   codes.Code
	}{
		{http.StatusNotFound, codes.Unset},
		{http.StatusInternalServerError, codes.Error},
		{http.StatusGatewayTimeout, codes.Error},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			exporter := installExporter(t)
			serve(tt.status, httptest.NewRequest(http.MethodDelete, "/contents/654c609c1d32906852a3b01e", nil))

			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.want, spans[0].Status.Code)
		})
	}
}

func TestStartSpanAndEndSpan(t *testing.T) {
	exporter := installExporter(t)

	_, span := StartSpan(context.Background(), "mongodb.articles.insert", attribute.String("db.collection", "articles"))
	EndSpan(span, errors.New("connection refused"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "mongodb.articles.insert", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "articles", attrMap(spans[0].Attributes)["db.collection"].AsString())
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "exception", spans[0].Events[0].Name)
}

func TestSetup_NoEndpoint(t *testing.T) {
	t.Cleanup(resetGlobals)

	shutdown, err := Setup(context.Background(), Config{ServiceName: "content-api", Version: "test"})
	require.NoError(t, err)

	_, span := StartSpan(context.Background(), "probe")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}
