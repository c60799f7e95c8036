package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	domjob "github.com/kailas-cloud/jobdex/internal/domain/job"
	"github.com/kailas-cloud/jobdex/internal/domain/search/request"
	"github.com/kailas-cloud/jobdex/internal/domain/search/result"
	"github.com/kailas-cloud/jobdex/internal/logger"
	"github.com/kailas-cloud/jobdex/internal/metrics"
)

// InstrumentedService wraps Service with search latency metrics and logging.
type InstrumentedService struct {
	*Service
}

// NewInstrumented wraps a service. Search metrics must be registered by the caller.
func NewInstrumented(s *Service) *InstrumentedService {
	return &InstrumentedService{Service: s}
}

// Search delegates to the inner service and records its duration.
func (p *InstrumentedService) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	kind := "browse"
	if req.Expression().Ranked() {
		kind = "text"
	}

	start := time.Now()
	res, err := p.Service.Search(ctx, req)
	duration := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.SearchDuration.WithLabelValues(kind, status).Observe(duration.Seconds())

	log := logger.FromContext(ctx)
	if err != nil {
		log.Error("Job search failed",
			zap.String("kind", kind),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return res, err
	}

	log.Debug("Job search completed",
		zap.String("kind", kind),
		zap.Duration("duration", duration),
		zap.Int("total", res.Total()),
		zap.Int("returned", len(res.Jobs())),
		zap.Int("page", res.Number()),
	)
	return res, nil
}

// Create delegates to the inner service and logs the assigned ID.
func (p *InstrumentedService) Create(ctx context.Context, d domjob.Draft) (domjob.Job, error) {
	j, err := p.Service.Create(ctx, d)
	if err != nil {
		return j, err
	}
	ctx = logger.With(ctx, zap.String("job_id", j.ID))
	logger.FromContext(ctx).Info("Job created", zap.String("title", j.Title))
	return j, nil
}
