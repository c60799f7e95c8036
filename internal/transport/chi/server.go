package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/jobdex/internal/domain"
	domjob "github.com/kailas-cloud/jobdex/internal/domain/job"
	"github.com/kailas-cloud/jobdex/internal/domain/search/page"
	"github.com/kailas-cloud/jobdex/internal/domain/search/request"
	"github.com/kailas-cloud/jobdex/internal/domain/search/result"
	"github.com/kailas-cloud/jobdex/internal/logger"
	"github.com/kailas-cloud/jobdex/internal/transport/api"
	healthuc "github.com/kailas-cloud/jobdex/internal/usecase/health"
	"github.com/kailas-cloud/jobdex/internal/version"
)

// maxBodyBytes caps POST /jobs payloads.
const maxBodyBytes = 1 << 20

// JobService is the job use case consumed by the server.
type JobService interface {
	Search(ctx context.Context, req *request.Request) (result.Page, error)
	Get(ctx context.Context, id string) (domjob.Job, error)
	Create(ctx context.Context, d domjob.Draft) (domjob.Job, error)
	Limits() page.Limits
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the job search HTTP API.
type Server struct {
	jobs          JobService
	health        HealthChecker
	name          string
	docsURL       string
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(jobs JobService, health HealthChecker) *Server {
	s := &Server{
		jobs:   jobs,
		health: health,
		name:   "jobdex",
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, api.ErrorCodeInvalidRequest, detailMessage),
		sentinelHandler(domain.ErrJobNotFound, http.StatusNotFound, api.ErrorCodeJobNotFound,
			staticMessage(domain.ErrJobNotFound.Error())),
		sentinelHandler(domain.ErrSearchUnavailable, http.StatusInternalServerError,
			api.ErrorCodeSearchUnavailable, detailMessage),
	}
	return s
}

// WithInfo sets the service name and documentation link reported by GET /.
func (s *Server) WithInfo(name, docsURL string) *Server {
	if name != "" {
		s.name = name
	}
	s.docsURL = docsURL
	return s
}

// Info handles GET /.
func (s *Server) Info(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.InfoResponse{
		Name:    s.name,
		Version: version.Version,
		Docs:    s.docsURL,
	})
}

// SearchJobs handles GET /jobs.
func (s *Server) SearchJobs(w http.ResponseWriter, r *http.Request, params api.SearchJobsParams) {
	if err := explicitPaging(params); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	req, err := request.New(requestParams(params), s.jobs.Limits())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	res, err := s.jobs.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.SearchResponse{
		Results:        res.Jobs(),
		Total:          res.Total(),
		Page:           res.Number(),
		PageSize:       res.Size(),
		TotalPages:     res.TotalPages(),
		Query:          params.Q,
		AppliedFilters: req.AppliedFilters(),
	})
}

// GetJob handles GET /jobs/{id}.
func (s *Server) GetJob(w http.ResponseWriter, r *http.Request, id string) {
	j, err := s.jobs.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, j)
}

// CreateJob handles POST /jobs.
func (s *Server) CreateJob(w http.ResponseWriter, r *http.Request) {
	var d domjob.Draft
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest, "invalid request body: "+err.Error())
		return
	}

	j, err := s.jobs.Create(r.Context(), d)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Location", "/jobs/"+j.ID)
	writeJSON(w, http.StatusCreated, j)
}

// HealthCheck handles GET /health. The status code is always 200; callers
// read the status field.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := api.HealthStatusHealthy
	if report.Status != healthuc.Healthy {
		status = api.HealthStatusDegraded
	}

	writeJSON(w, http.StatusOK, api.HealthResponse{
		Status:          status,
		SearchConnected: report.SearchConnected,
		Checks:          checks,
		Version:         version.Version,
		Timestamp:       report.Timestamp,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// explicitPaging rejects page or pageSize given as zero; absent values take defaults.
func explicitPaging(p api.SearchJobsParams) error {
	if p.Page != nil && *p.Page < 1 {
		return fmt.Errorf("%w: page must be >= 1", domain.ErrInvalidRequest)
	}
	if p.PageSize != nil && *p.PageSize < 1 {
		return fmt.Errorf("%w: pageSize must be >= 1", domain.ErrInvalidRequest)
	}
	return nil
}

func requestParams(p api.SearchJobsParams) request.Params {
	return request.Params{
		Query:           deref(p.Q),
		Organisation:    deref(p.Organisation),
		Location:        deref(p.Location),
		Grade:           deref(p.Grade),
		AssignmentType:  deref(p.AssignmentType),
		Profession:      deref(p.Profession),
		Professions:     deref(p.Professions),
		Grades:          deref(p.Grades),
		Assignments:     deref(p.Assignments),
		WorkingPatterns: deref(p.WorkingPatterns),
		WorkLocations:   deref(p.WorkLocations),
		SalaryMin:       p.SalaryMin,
		SalaryMax:       p.SalaryMax,
		Page:            deref(p.Page),
		PageSize:        deref(p.PageSize),
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// writeJSON encodes v before sending the status, so an unencodable body
// becomes a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(api.ErrorResponse{
			Code:    api.ErrorCodeInternalError,
			Message: "failed to encode response",
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, code api.ErrorCode, message string) {
	writeJSON(w, status, api.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// detailMessage exposes the full error chain to the caller.
func detailMessage(err error) string {
	return err.Error()
}

func staticMessage(msg string) func(error) string {
	return func(error) string { return msg }
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code api.ErrorCode, message func(error) string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, message(err))
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	log.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, api.ErrorCodeInternalError, "internal error")
}
