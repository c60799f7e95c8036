package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	dombatch "github.com/kailas-cloud/jobdex/internal/domain/batch"
	domjob "github.com/kailas-cloud/jobdex/internal/domain/job"
	"github.com/kailas-cloud/jobdex/internal/logger"
)

type batchCreator interface {
	CreateBatch(ctx context.Context, drafts []domjob.Draft) []dombatch.Result
}

func readDraftsFile(path string) ([]domjob.Draft, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readDrafts(f)
}

func readDrafts(r io.Reader) ([]domjob.Draft, error) {
	var drafts []domjob.Draft
	if err := json.NewDecoder(r).Decode(&drafts); err != nil {
		return nil, fmt.Errorf("decode payloads: %w", err)
	}
	return drafts, nil
}

// seed loads drafts in chunks of batchSize and logs every failed item.
func seed(ctx context.Context, c batchCreator, drafts []domjob.Draft, batchSize int) (created, failed int) {
	log := logger.FromContext(ctx)
	if batchSize <= 0 {
		batchSize = len(drafts)
	}
	for start := 0; start < len(drafts); start += batchSize {
		end := min(start+batchSize, len(drafts))
		results := c.CreateBatch(ctx, drafts[start:end])
		for _, r := range results {
			if r.Status() == dombatch.StatusOK {
				continue
			}
			idx := start + r.Index()
			log.Warn("Skip payload",
				zap.Int("index", idx),
				zap.String("title", drafts[idx].Title),
				zap.Error(r.Err()),
			)
		}
		ok, bad := dombatch.Count(results)
		created += ok
		failed += bad
		log.Debug("Batch done", zap.Int("from", start), zap.Int("to", end), zap.Int("created", ok))
	}
	return created, failed
}
