package job

import (
	"context"

	domjob "github.com/kailas-cloud/jobdex/internal/domain/job"
	"github.com/kailas-cloud/jobdex/internal/domain/search/page"
	"github.com/kailas-cloud/jobdex/internal/domain/search/query"
	"github.com/kailas-cloud/jobdex/internal/domain/search/result"
)

// Repository defines the storage contract for jobs.
type Repository interface {
	EnsureIndex(ctx context.Context) error
	Create(ctx context.Context, j domjob.Job) error
	Get(ctx context.Context, id string) (domjob.Job, error)
	Search(ctx context.Context, expr query.Expression, p page.Page) (result.Page, error)
}
