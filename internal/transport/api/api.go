// Package api holds the HTTP wire types shared by the server and its clients.
package api

import (
	"time"

	domjob "github.com/kailas-cloud/jobdex/internal/domain/job"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.Code.
const (
	ErrorCodeInvalidRequest    ErrorCode = "invalid_request"
	ErrorCodeJobNotFound       ErrorCode = "job_not_found"
	ErrorCodeSearchUnavailable ErrorCode = "search_unavailable"
	ErrorCodeUnauthorized      ErrorCode = "unauthorized"
	ErrorCodeNotFound          ErrorCode = "not_found"
	ErrorCodeMethodNotAllowed  ErrorCode = "method_not_allowed"
	ErrorCodeInternalError     ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Job is a single posting as returned to the frontend.
type Job = domjob.Job

// SearchJobsParams are the query parameters of GET /jobs.
type SearchJobsParams struct {
	Q               *string   `form:"q"`
	Organisation    *string   `form:"organisation"`
	Location        *string   `form:"location"`
	Grade           *string   `form:"grade"`
	AssignmentType  *string   `form:"assignmentType"`
	Profession      *string   `form:"profession"`
	Professions     *[]string `form:"professions"`
	Grades          *[]string `form:"grades"`
	Assignments     *[]string `form:"assignments"`
	WorkingPatterns *[]string `form:"workingPatterns"`
	WorkLocations   *[]string `form:"workLocations"`
	SalaryMin       *float64  `form:"salaryMin"`
	SalaryMax       *float64  `form:"salaryMax"`
	Page            *int      `form:"page"`
	PageSize        *int      `form:"pageSize"`
}

// SearchResponse is the body of GET /jobs.
type SearchResponse struct {
	Results        []Job          `json:"results"`
	Total          int            `json:"total"`
	Page           int            `json:"page"`
	PageSize       int            `json:"pageSize"`
	TotalPages     int            `json:"totalPages"`
	Query          *string        `json:"query"`
	AppliedFilters map[string]any `json:"appliedFilters"`
}

// HealthStatus is the aggregated service status.
type HealthStatus string

// Health statuses.
const (
	HealthStatusHealthy  HealthStatus = "healthy"
	HealthStatusDegraded HealthStatus = "degraded"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status          HealthStatus      `json:"status"`
	SearchConnected bool              `json:"search_connected"`
	Checks          map[string]string `json:"checks"`
	Version         string            `json:"version"`
	Timestamp       time.Time         `json:"timestamp"`
}

// InfoResponse is the body of GET /.
type InfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Docs    string `json:"docs,omitempty"`
}
