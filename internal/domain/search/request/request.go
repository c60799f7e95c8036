// Package request validates raw search parameters into a Request.
package request

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/jobdex/internal/domain"
	"github.com/kailas-cloud/jobdex/internal/domain/job"
	"github.com/kailas-cloud/jobdex/internal/domain/search/filter"
	"github.com/kailas-cloud/jobdex/internal/domain/search/page"
	"github.com/kailas-cloud/jobdex/internal/domain/search/query"
)

// MaxQueryLength is the maximum allowed search text length.
const MaxQueryLength = 4096

// Params are the raw search inputs as received from a caller.
type Params struct {
	Query string

	Organisation   string
	Location       string
	Grade          string
	AssignmentType string
	Profession     string

	Professions     []string
	Grades          []string
	Assignments     []string
	WorkingPatterns []string
	WorkLocations   []string

	SalaryMin *float64
	SalaryMax *float64

	Page     int
	PageSize int
}

// Request is a validated job search.
type Request struct {
	text    string
	filters filter.Expression
	page    page.Page
	applied map[string]any
}

// New validates p against limits. Failures wrap domain.ErrInvalidRequest.
func New(p Params, limits page.Limits) (Request, error) {
	if len(p.Query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidRequest, MaxQueryLength)
	}
	pg, err := page.New(p.Page, p.PageSize, limits)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	b := builder{applied: map[string]any{}}

	b.single("organisation", "organisation", p.Organisation, nil)
	b.single("location", "location", p.Location, nil)
	b.single("grade", "grade", p.Grade, canonicalGrade)
	b.single("assignmentType", "assignmentType", p.AssignmentType, nil)
	b.single("profession", "profession", p.Profession, canonicalProfession)

	b.list("professions", "profession", p.Professions, canonicalProfession)
	b.list("grades", "grade", p.Grades, canonicalGrade)
	b.list("assignments", "assignmentType", p.Assignments, nil)
	b.list("workingPatterns", "workingPattern", p.WorkingPatterns, canonicalWorkingPattern)
	b.list("workLocations", "workLocation", p.WorkLocations, canonicalWorkLocation)

	b.salary(p.SalaryMin, p.SalaryMax)

	if b.err != nil {
		return Request{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, b.err)
	}
	if len(b.applied) == 0 {
		b.applied = nil
	}

	return Request{
		text:    p.Query,
		filters: filter.NewExpression(b.conditions...),
		page:    pg,
		applied: b.applied,
	}, nil
}

// Text returns the free-text query.
func (r *Request) Text() string { return r.text }

// Filters returns the filter conjunction.
func (r *Request) Filters() filter.Expression { return r.filters }

// Page returns the requested page window.
func (r *Request) Page() page.Page { return r.page }

// Expression builds the search expression for this request.
func (r *Request) Expression() query.Expression { return query.Build(r.text, r.filters) }

// AppliedFilters echoes the filters that were set, keyed by parameter name.
// Nil when no filter was given.
func (r *Request) AppliedFilters() map[string]any { return r.applied }

type builder struct {
	conditions []filter.Condition
	applied    map[string]any
	err        error
}

func (b *builder) single(param, key, value string, canon func(string) string) {
	if b.err != nil || value == "" {
		return
	}
	if canon != nil {
		value = canon(value)
	}
	c, err := filter.NewMatch(key, value)
	if err != nil {
		b.err = fmt.Errorf("%s: %w", param, err)
		return
	}
	b.conditions = append(b.conditions, c)
	b.applied[param] = value
}

func (b *builder) list(param, key string, values []string, canon func(string) string) {
	if b.err != nil || len(values) == 0 {
		return
	}
	if canon != nil {
		mapped := make([]string, len(values))
		for i, v := range values {
			mapped[i] = canon(v)
		}
		values = mapped
	}
	c, err := filter.NewAnyOf(key, values)
	if err != nil {
		b.err = fmt.Errorf("%s: %w", param, err)
		return
	}
	b.conditions = append(b.conditions, c)
	b.applied[param] = c.Values()
}

func (b *builder) salary(lo, hi *float64) {
	if b.err != nil || (lo == nil && hi == nil) {
		return
	}
	if !finite(lo) || !finite(hi) {
		b.err = fmt.Errorf("salary bounds must be finite numbers")
		return
	}
	if (lo != nil && *lo < 0) || (hi != nil && *hi < 0) {
		b.err = fmt.Errorf("salary bounds must not be negative")
		return
	}
	r, err := filter.NewRangeFilter(lo, hi)
	if err != nil {
		b.err = fmt.Errorf("salary: %w", err)
		return
	}
	c, err := filter.NewRange("salary", r)
	if err != nil {
		b.err = fmt.Errorf("salary: %w", err)
		return
	}
	b.conditions = append(b.conditions, c)
	if lo != nil {
		b.applied["salaryMin"] = *lo
	}
	if hi != nil {
		b.applied["salaryMax"] = *hi
	}
}

func finite(f *float64) bool {
	return f == nil || (!math.IsNaN(*f) && !math.IsInf(*f, 0))
}

// Enum-backed filters accept aliases; unrecognised values pass through untouched.

func canonicalGrade(s string) string {
	if g, ok := job.ParseGrade(s); ok {
		return string(g)
	}
	return s
}

func canonicalProfession(s string) string {
	if p, ok := job.ParseProfession(s); ok {
		return string(p)
	}
	return s
}

func canonicalWorkingPattern(s string) string {
	if wp, ok := job.ParseWorkingPattern(s); ok {
		return string(wp)
	}
	return s
}

func canonicalWorkLocation(s string) string {
	if wl, ok := job.ParseWorkLocation(s); ok {
		return string(wl)
	}
	return s
}
