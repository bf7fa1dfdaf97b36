package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// installTestTracer swaps in an in-memory exporter for the duration of the
// test and restores the previous global provider afterwards.
func installTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})

	return exporter
}

// traceGallery serves one request against a traced gallery route and
// returns the recorder plus the exported spans.
func traceGallery(t *testing.T, exporter *tracetest.InMemoryExporter, status int, mutate func(*http.Request)) (*httptest.ResponseRecorder, tracetest.SpanStubs) {
	t.Helper()

	r := chi.NewRouter()
	r.Use(Tracing("portfolio"))
	r.Get("/api/v1/gallery/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/gallery/42", nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	spans := exporter.GetSpans()
	require.NotEmpty(t, spans)
	return rec, spans
}

func TestTracing_SpanNameUsesRoutePattern(t *testing.T) {
	exporter := installTestTracer(t)

	rec, spans := traceGallery(t, exporter, http.StatusOK, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "GET /api/v1/gallery/{id}", spans[0].Name)
}

func TestTracing_RecordsStatusCodeAttribute(t *testing.T) {
	exporter := installTestTracer(t)

	_, spans := traceGallery(t, exporter, http.StatusNotFound, nil)

	var got int64 = -1
	for _, attr := range spans[0].Attributes {
		if string(attr.Key) == "http.status_code" {
			got = attr.Value.AsInt64()
		}
	}
	assert.Equal(t, int64(404), got)
}

func TestTracing_5xxMarksSpanAsError(t *testing.T) {
	exporter := installTestTracer(t)

	_, spans := traceGallery(t, exporter, http.StatusInternalServerError, nil)

	assert.Equal(t, otelcodes.Error, spans[0].Status.Code)
}

func TestTracing_4xxLeavesSpanUnset(t *testing.T) {
	exporter := installTestTracer(t)

	_, spans := traceGallery(t, exporter, http.StatusNotFound, nil)

	assert.Equal(t, otelcodes.Unset, spans[0].Status.Code)
}

func TestTracing_HonorsInboundTraceparent(t *testing.T) {
	exporter := installTestTracer(t)

	const wantTraceID = "4bf92f3577b34da6a3ce929d0e0e4736"
	rec, spans := traceGallery(t, exporter, http.StatusOK, func(req *http.Request) {
		req.Header.Set("traceparent", "00-"+wantTraceID+"-00f067aa0ba902b7-01")
	})

	assert.Equal(t, wantTraceID, spans[0].SpanContext.TraceID().String())
	assert.NotEmpty(t, rec.Header().Get("traceparent"), "trace context should be injected into the response")
}

func TestTracing_InjectsTraceparentWithoutInbound(t *testing.T) {
	exporter := installTestTracer(t)

	rec, _ := traceGallery(t, exporter, http.StatusOK, nil)

	assert.NotEmpty(t, rec.Header().Get("traceparent"))
}
