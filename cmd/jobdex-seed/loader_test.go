package main

import (
	"context"
	"strings"
	"testing"

	"github.com/kailas-cloud/jobdex/internal/domain"
	dombatch "github.com/kailas-cloud/jobdex/internal/domain/batch"
	domjob "github.com/kailas-cloud/jobdex/internal/domain/job"
)

type mockBatchCreator struct {
	batches [][]string
}

// CreateBatch fails every draft titled "bad".
func (m *mockBatchCreator) CreateBatch(_ context.Context, drafts []domjob.Draft) []dombatch.Result {
	titles := make([]string, len(drafts))
	results := make([]dombatch.Result, len(drafts))
	for i, d := range drafts {
		titles[i] = d.Title
		if d.Title == "bad" {
			results[i] = dombatch.NewError(i, domain.ErrInvalidRequest)
			continue
		}
		results[i] = dombatch.NewOK(i, "id-"+d.Title)
	}
	m.batches = append(m.batches, titles)
	return results
}

func TestReadDraftsFile_Sample(t *testing.T) {
	drafts, err := readDraftsFile("testdata/jobs.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}
	for i, d := range drafts {
		clean := d.Sanitized()
		if err := clean.Validate(); err != nil {
			t.Errorf("draft %d invalid: %v", i, err)
		}
	}
	if drafts[0].Salary == nil || drafts[0].Salary.Minimum != 52000 {
		t.Errorf("salary not decoded: %+v", drafts[0].Salary)
	}
}

func TestReadDrafts_RejectsNonArray(t *testing.T) {
	if _, err := readDrafts(strings.NewReader(`{"title":"x"}`)); err == nil {
		t.Fatal("expected error for object payload")
	}
}

func TestReadDraftsFile_Missing(t *testing.T) {
	if _, err := readDraftsFile("testdata/nope.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSeed_ChunksAndCounts(t *testing.T) {
	c := &mockBatchCreator{}
	drafts := []domjob.Draft{{Title: "a"}, {Title: "bad"}, {Title: "c"}, {Title: "d"}, {Title: "e"}}

	created, failed := seed(context.Background(), c, drafts, 2)

	if created != 4 || failed != 1 {
		t.Errorf("seed() = %d created, %d failed; want 4, 1", created, failed)
	}
	if len(c.batches) != 3 || len(c.batches[2]) != 1 {
		t.Errorf("expected chunks of 2,2,1, got %v", c.batches)
	}
}

func TestSeed_ZeroBatchSizeLoadsAtOnce(t *testing.T) {
	c := &mockBatchCreator{}
	created, failed := seed(context.Background(), c, []domjob.Draft{{Title: "a"}, {Title: "b"}}, 0)

	if created != 2 || failed != 0 {
		t.Errorf("seed() = %d, %d", created, failed)
	}
	if len(c.batches) != 1 {
		t.Errorf("expected a single batch, got %d", len(c.batches))
	}
}
