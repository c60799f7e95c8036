package job

import (
	"context"
	"fmt"

	dombatch "github.com/kailas-cloud/jobdex/internal/domain/batch"
	domjob "github.com/kailas-cloud/jobdex/internal/domain/job"
)

// CreateBatch creates each draft in order and reports a result per item.
// A failed item does not stop the batch; cancellation does, and every
// remaining item reports the context error.
func (s *Service) CreateBatch(ctx context.Context, drafts []domjob.Draft) []dombatch.Result {
	results := make([]dombatch.Result, len(drafts))

	if err := s.EnsureIndex(ctx); err != nil {
		for i := range drafts {
			results[i] = dombatch.NewError(i, err)
		}
		return results
	}

	for i, d := range drafts {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(drafts); j++ {
				results[j] = dombatch.NewError(j, fmt.Errorf("batch aborted: %w", err))
			}
			break
		}
		j, err := s.Create(ctx, d)
		if err != nil {
			results[i] = dombatch.NewError(i, err)
			continue
		}
		results[i] = dombatch.NewOK(i, j.ID)
	}
	return results
}
