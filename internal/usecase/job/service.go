// Package job coordinates searching, reading and creating job postings.
package job

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/kailas-cloud/jobdex/internal/domain"
	domjob "github.com/kailas-cloud/jobdex/internal/domain/job"
	"github.com/kailas-cloud/jobdex/internal/domain/search/page"
	"github.com/kailas-cloud/jobdex/internal/domain/search/request"
	"github.com/kailas-cloud/jobdex/internal/domain/search/result"
)

// Service handles job search and creation on top of the search index.
type Service struct {
	repo   Repository
	limits page.Limits
	newID  func() string
	ready  atomic.Bool
}

// New creates a job service.
func New(repo Repository) *Service {
	return &Service{
		repo:   repo,
		limits: page.DefaultLimits(),
		newID:  uuid.NewString,
	}
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.limits.DefaultSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.limits.MaxSize = maxPageSize
	}
	if s.limits.DefaultSize > s.limits.MaxSize {
		s.limits.DefaultSize = s.limits.MaxSize
	}
	return s
}

// WithIDGenerator overrides how new job IDs are minted.
func (s *Service) WithIDGenerator(fn func() string) *Service {
	if fn != nil {
		s.newID = fn
	}
	return s
}

// Limits returns the page size limits requests are validated against.
func (s *Service) Limits() page.Limits {
	return s.limits
}

// EnsureIndex creates the search index if needed. Once it succeeds later
// calls are no-ops; until then every search or create retries it.
func (s *Service) EnsureIndex(ctx context.Context) error {
	if s.ready.Load() {
		return nil
	}
	if err := s.repo.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("ensure index: %w", err)
	}
	s.ready.Store(true)
	return nil
}

// Search returns one page of jobs matching req.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	if err := s.EnsureIndex(ctx); err != nil {
		return result.Page{}, err
	}
	res, err := s.repo.Search(ctx, req.Expression(), req.Page())
	if err != nil {
		return result.Page{}, fmt.Errorf("search jobs: %w", err)
	}
	return res, nil
}

// Get returns a single job by ID.
func (s *Service) Get(ctx context.Context, id string) (domjob.Job, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domjob.Job{}, fmt.Errorf("id is required: %w", domain.ErrInvalidRequest)
	}
	j, err := s.repo.Get(ctx, id)
	if err != nil {
		return domjob.Job{}, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

// Create sanitises and validates d, assigns a new ID and stores the job.
// The stored job is searchable as soon as Create returns.
func (s *Service) Create(ctx context.Context, d domjob.Draft) (domjob.Job, error) {
	clean := d.Sanitized()
	if err := clean.Validate(); err != nil {
		return domjob.Job{}, err
	}
	if err := s.EnsureIndex(ctx); err != nil {
		return domjob.Job{}, err
	}

	j := clean.ToJob(s.newID())
	if err := s.repo.Create(ctx, j); err != nil {
		return domjob.Job{}, fmt.Errorf("create job: %w", err)
	}
	return j, nil
}
