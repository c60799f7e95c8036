// Package result holds one page of search hits.
package result

import (
	"github.com/kailas-cloud/jobdex/internal/domain/job"
	"github.com/kailas-cloud/jobdex/internal/domain/search/page"
)

// Page is one page of search hits.
type Page struct {
	jobs  []job.Job
	total int
	page  page.Page
}

// New creates a result page. total is the engine's match count across all pages.
func New(jobs []job.Job, total int, p page.Page) Page {
	if jobs == nil {
		jobs = []job.Job{}
	}
	return Page{jobs: jobs, total: total, page: p}
}

// Jobs returns the mapped postings on this page.
func (r *Page) Jobs() []job.Job { return r.jobs }

// Total returns the total match count.
func (r *Page) Total() int { return r.total }

// Number returns the 1-based page number.
func (r *Page) Number() int { return r.page.Number() }

// Size returns the requested page size.
func (r *Page) Size() int { return r.page.Size() }

// TotalPages returns the number of pages needed for Total.
func (r *Page) TotalPages() int { return page.TotalPages(r.total, r.page.Size()) }
