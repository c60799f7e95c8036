package job

import (
	"context"

	domjob "github.com/kailas-cloud/jobdex/internal/domain/job"
	"github.com/kailas-cloud/jobdex/internal/domain/search/page"
	"github.com/kailas-cloud/jobdex/internal/domain/search/query"
	"github.com/kailas-cloud/jobdex/internal/domain/search/result"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	ensureIndexFn func(ctx context.Context) error
	createFn      func(ctx context.Context, j domjob.Job) error
	getFn         func(ctx context.Context, id string) (domjob.Job, error)
	searchFn      func(ctx context.Context, expr query.Expression, p page.Page) (result.Page, error)

	ensureCalls int
}

func (m *mockRepo) EnsureIndex(ctx context.Context) error {
	m.ensureCalls++
	if m.ensureIndexFn != nil {
		return m.ensureIndexFn(ctx)
	}
	return nil
}

func (m *mockRepo) Create(ctx context.Context, j domjob.Job) error {
	if m.createFn != nil {
		return m.createFn(ctx, j)
	}
	return nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (domjob.Job, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domjob.Empty(id), nil
}

func (m *mockRepo) Search(ctx context.Context, expr query.Expression, p page.Page) (result.Page, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, expr, p)
	}
	return result.New(nil, 0, p), nil
}

func validDraft() domjob.Draft {
	return domjob.Draft{
		Title:          "Software Developer",
		Organisation:   "Ministry of Justice",
		Location:       []domjob.LocationPoint{{TownName: "Leeds", Latitude: 53.8, Longitude: -1.55}},
		AssignmentType: "Permanent",
		Grade:          "G7",
		Profession:     domjob.ProfessionDigitalAndData,
		ClosingDate:    "2026-11-30",
	}
}
