package job

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/jobdex/internal/domain"
	"github.com/kailas-cloud/jobdex/internal/domain/search/page"
	"github.com/kailas-cloud/jobdex/internal/domain/search/query"
	"github.com/kailas-cloud/jobdex/internal/domain/search/request"
	"github.com/kailas-cloud/jobdex/internal/domain/search/result"
	"github.com/kailas-cloud/jobdex/internal/logger"
	"github.com/kailas-cloud/jobdex/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterSearchMetrics()
	os.Exit(m.Run())
}

func TestInstrumented_RecordsKind(t *testing.T) {
	svc := NewInstrumented(New(&mockRepo{}))

	if _, err := svc.Search(context.Background(), newRequest(t, svc.Service, request.Params{Query: "nurse"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Search(context.Background(), newRequest(t, svc.Service, request.Params{})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One series each for "text" and "browse".
	if n := testutil.CollectAndCount(metrics.SearchDuration, "jobdex_search_duration_seconds"); n < 2 {
		t.Errorf("expected at least 2 series, got %d", n)
	}
}

func TestInstrumented_PropagatesError(t *testing.T) {
	repo := &mockRepo{searchFn: func(_ context.Context, _ query.Expression, _ page.Page) (result.Page, error) {
		return result.Page{}, domain.ErrSearchUnavailable
	}}
	svc := NewInstrumented(New(repo))

	_, err := svc.Search(context.Background(), newRequest(t, svc.Service, request.Params{}))
	if !errors.Is(err, domain.ErrSearchUnavailable) {
		t.Fatalf("expected ErrSearchUnavailable, got %v", err)
	}
}

func TestInstrumented_CreateLogsID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := logger.ContextWithLogger(context.Background(), zap.New(core))
	svc := NewInstrumented(New(&mockRepo{}).WithIDGenerator(func() string { return "job-7" }))

	j, err := svc.Create(ctx, validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if j.ID != "job-7" {
		t.Errorf("expected id job-7, got %q", j.ID)
	}
	entries := logs.FilterMessage("Job created").All()
	if len(entries) != 1 || entries[0].ContextMap()["job_id"] != "job-7" {
		t.Errorf("expected creation logged with job_id, got %v", entries)
	}
}
