package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "healthy"
	// Degraded indicates the search engine is unreachable or not ready.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckMissing indicates a reachable engine without the job index.
	CheckMissing CheckResult = "missing"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status          Status
	SearchConnected bool
	Checks          map[string]CheckResult
	Timestamp       time.Time
}

// Service coordinates health checks.
type Service struct {
	search SearchPinger
	index  IndexChecker
	ensure IndexEnsurer
	now    func() time.Time
}

// New creates a Service. index can be nil.
func New(search SearchPinger, index IndexChecker) *Service {
	return &Service{search: search, index: index, now: time.Now}
}

// WithEnsurer lets Check create a missing index instead of reporting it
// until the first /jobs request does.
func (s *Service) WithEnsurer(e IndexEnsurer) *Service {
	s.ensure = e
	return s
}

// Check runs health checks against all components. It never fails; problems
// are reported as a degraded status.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	connected := s.search.Ping(ctx) == nil
	if connected {
		checks["search"] = CheckOK
	} else {
		checks["search"] = CheckError
	}

	// Without a connection the index lookup would fail the same way.
	if s.index != nil && connected {
		checks["index"] = s.checkIndex(ctx)
	}

	status := Healthy
	for _, v := range checks {
		if v != CheckOK {
			status = Degraded
			break
		}
	}

	return Report{
		Status:          status,
		SearchConnected: connected,
		Checks:          checks,
		Timestamp:       s.now().UTC(),
	}
}

func (s *Service) checkIndex(ctx context.Context) CheckResult {
	exists, err := s.index.IndexExists(ctx)
	switch {
	case err != nil:
		return CheckError
	case exists:
		return CheckOK
	case s.ensure == nil:
		return CheckMissing
	}
	if err := s.ensure.EnsureIndex(ctx); err != nil {
		return CheckMissing
	}
	return CheckOK
}
