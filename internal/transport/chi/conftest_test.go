package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	domjob "github.com/kailas-cloud/jobdex/internal/domain/job"
	"github.com/kailas-cloud/jobdex/internal/domain/search/page"
	"github.com/kailas-cloud/jobdex/internal/domain/search/request"
	"github.com/kailas-cloud/jobdex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/jobdex/internal/usecase/health"
)

// mockJobs implements JobService for tests.
type mockJobs struct {
	searchFn func(ctx context.Context, req *request.Request) (result.Page, error)
	getFn    func(ctx context.Context, id string) (domjob.Job, error)
	createFn func(ctx context.Context, d domjob.Draft) (domjob.Job, error)

	lastSearch *request.Request
}

func (m *mockJobs) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	m.lastSearch = req
	if m.searchFn != nil {
		return m.searchFn(ctx, req)
	}
	return result.New(nil, 0, req.Page()), nil
}

func (m *mockJobs) Get(ctx context.Context, id string) (domjob.Job, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domjob.Empty(id), nil
}

func (m *mockJobs) Create(ctx context.Context, d domjob.Draft) (domjob.Job, error) {
	if m.createFn != nil {
		return m.createFn(ctx, d)
	}
	return d.ToJob("generated-id"), nil
}

func (m *mockJobs) Limits() page.Limits { return page.DefaultLimits() }

// mockHealth implements HealthChecker for tests.
type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report { return m.report }

func newTestHandler(t *testing.T, jobs *mockJobs, apiKeys ...string) http.Handler {
	t.Helper()
	h := &mockHealth{report: healthuc.Report{
		Status:          healthuc.Healthy,
		SearchConnected: true,
		Checks:          map[string]healthuc.CheckResult{"search": healthuc.CheckOK},
		Timestamp:       time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}}
	return Handler(NewServer(jobs, h), ServerOptions{
		WriteMiddlewares: []func(http.Handler) http.Handler{BearerAuthMiddleware(apiKeys)},
	})
}

func do(t *testing.T, h http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
