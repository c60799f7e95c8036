package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	domjob "github.com/kailas-cloud/jobdex/internal/domain/job"
	"github.com/kailas-cloud/jobdex/internal/logger"
	"github.com/kailas-cloud/jobdex/internal/metrics"
	"github.com/kailas-cloud/jobdex/internal/transport/api"
)

func TestRecoverer_PanicBecomesJSON500(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := Recoverer(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/jobs", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	var resp api.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != api.ErrorCodeInternalError {
		t.Errorf("expected internal_error, got %q", resp.Code)
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Error("expected panic to be logged")
	}
}

func TestRequestLogger_CanonicalLine(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	var fromCtx *zap.Logger
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = logger.FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})
	h := chiMiddleware.RequestID(RequestLogger(zap.New(core))(inner))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/jobs?q=nurse", http.NoBody))

	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
	if fromCtx == nil || fromCtx.Core() == zap.NewNop().Core() {
		t.Error("expected request-scoped logger in context")
	}

	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 request line, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) {
		t.Errorf("expected status 418, got %v", fields["status"])
	}
	if fields["query"] != "q=nurse" {
		t.Errorf("expected query logged, got %v", fields["query"])
	}
	if fields["request_id"] == "" {
		t.Error("expected request_id field")
	}
}

func TestHandler_MetricsUseRoutePatterns(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware())
	jobs := &mockJobs{getFn: func(_ context.Context, id string) (domjob.Job, error) {
		return domjob.Empty(id), nil
	}}
	h := Handler(NewServer(jobs, &mockHealth{}), ServerOptions{BaseRouter: r})

	do(t, h, "GET", "/jobs/7d3e", "")
	do(t, h, "GET", "/nowhere", "")

	routes := map[string]bool{}
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "jobdex_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "route" {
					routes[l.GetValue()] = true
				}
			}
		}
	}
	if !routes["/jobs/{id}"] {
		t.Errorf("expected /jobs/{id} route label, have %v", routes)
	}
	if !routes[metrics.UnmatchedRoute] {
		t.Errorf("expected %q label for unknown path, have %v", metrics.UnmatchedRoute, routes)
	}
	if routes["/jobs/7d3e"] || routes["/nowhere"] {
		t.Errorf("raw paths leaked into labels: %v", routes)
	}
}
