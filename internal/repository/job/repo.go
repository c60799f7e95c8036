// Package job stores job postings as JSON documents and searches them through
// the engine's full-text index.
package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/jobdex/internal/db"
	"github.com/kailas-cloud/jobdex/internal/domain"
	domjob "github.com/kailas-cloud/jobdex/internal/domain/job"
	"github.com/kailas-cloud/jobdex/internal/domain/search/page"
	"github.com/kailas-cloud/jobdex/internal/domain/search/query"
	"github.com/kailas-cloud/jobdex/internal/domain/search/result"
	"github.com/kailas-cloud/jobdex/internal/logger"
)

// store is the consumer interface for jobs (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
}

// counter is satisfied by prometheus.Counter.
type counter interface {
	Inc()
}

// Repo implements usecase/job.Repository.
type Repo struct {
	store          store
	index          string
	prefix         string
	decodeFailures counter
}

// New creates a job repository. Documents live under "<keyPrefix>jobs:<id>".
func New(s store, index, keyPrefix string) *Repo {
	return &Repo{store: s, index: index, prefix: keyPrefix + "jobs:"}
}

// WithDecodeFailures counts documents dropped from results because they could not be decoded.
func (r *Repo) WithDecodeFailures(c counter) *Repo {
	r.decodeFailures = c
	return r
}

// EnsureIndex creates the search index unless it already exists.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.index)
	if err != nil {
		return unavailable("index info "+r.index, err)
	}
	if exists {
		return nil
	}
	return r.createIndex(ctx)
}

// IndexExists reports whether the search index has been created.
func (r *Repo) IndexExists(ctx context.Context) (bool, error) {
	exists, err := r.store.IndexExists(ctx, r.index)
	if err != nil {
		return false, unavailable("index info "+r.index, err)
	}
	return exists, nil
}

// RecreateIndex drops the index (keeping documents) and builds it again.
func (r *Repo) RecreateIndex(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, r.index); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return unavailable("drop index "+r.index, err)
	}
	return r.createIndex(ctx)
}

func (r *Repo) createIndex(ctx context.Context) error {
	def, err := buildIndex(r.index, r.prefix)
	if err != nil {
		return fmt.Errorf("build index %s: %w", r.index, err)
	}
	if err := r.store.CreateIndex(ctx, def); err != nil {
		// Another instance won the race.
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return unavailable("create index "+r.index, err)
	}
	return nil
}

// Create stores a job document. JSON.SET is visible to FT.SEARCH once it returns.
func (r *Repo) Create(ctx context.Context, j domjob.Job) error {
	data, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	key := r.key(j.ID)
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return unavailable("json.set "+key, err)
	}
	return nil
}

// Get returns a job by ID.
func (r *Repo) Get(ctx context.Context, id string) (domjob.Job, error) {
	key := r.key(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domjob.Job{}, domain.ErrJobNotFound
		}
		return domjob.Job{}, unavailable("json.get "+key, err)
	}

	decoded, err := domjob.Decode(id, raw)
	if err != nil {
		r.countFailure()
		return domjob.Job{}, fmt.Errorf("decode %s: %w", key, err)
	}
	logWarnings(ctx, decoded)
	return decoded.Job, nil
}

// Search runs expr against the index and returns one page of jobs. Documents
// that cannot be decoded are skipped; the total still counts them.
func (r *Repo) Search(ctx context.Context, expr query.Expression, p page.Page) (result.Page, error) {
	q := &db.SearchQuery{
		IndexName:    r.index,
		Expr:         expr,
		Offset:       p.Offset(),
		Limit:        p.Size(),
		ReturnFields: []string{"$"},
	}
	if !expr.Ranked() {
		q.SortBy = query.SortField
		q.SortAsc = true
	}

	res, err := r.store.Search(ctx, q)
	if err != nil {
		return result.Page{}, unavailable("search "+r.index, err)
	}
	if res == nil {
		return result.New(nil, 0, p), nil
	}

	log := logger.FromContext(ctx)
	jobs := make([]domjob.Job, 0, len(res.Entries))
	for _, entry := range res.Entries {
		id := strings.TrimPrefix(entry.Key, r.prefix)
		raw, ok := entry.Fields["$"]
		if !ok || raw == "" {
			r.countFailure()
			log.Warn("search hit without document body", zap.String("key", entry.Key))
			continue
		}
		decoded, err := domjob.Decode(id, []byte(raw))
		if err != nil {
			r.countFailure()
			log.Warn("skip undecodable job", zap.String("key", entry.Key), zap.Error(err))
			continue
		}
		logWarnings(ctx, decoded)
		jobs = append(jobs, decoded.Job)
	}

	return result.New(jobs, res.Total, p), nil
}

func (r *Repo) key(id string) string {
	return r.prefix + id
}

func (r *Repo) countFailure() {
	if r.decodeFailures != nil {
		r.decodeFailures.Inc()
	}
}

func logWarnings(ctx context.Context, d domjob.Decoded) {
	if d.Clean() {
		return
	}
	warnings := make([]string, len(d.Warnings))
	for i, w := range d.Warnings {
		warnings[i] = w.String()
	}
	logger.FromContext(ctx).Debug("job decoded with defaults",
		zap.String("id", d.Job.ID),
		zap.Strings("warnings", warnings),
	)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrSearchUnavailable, err)
}
