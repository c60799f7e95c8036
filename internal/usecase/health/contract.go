package health

import "context"

// SearchPinger checks search engine connectivity.
type SearchPinger interface {
	Ping(ctx context.Context) error
}

// IndexChecker reports whether the job index exists.
type IndexChecker interface {
	IndexExists(ctx context.Context) (bool, error)
}

// IndexEnsurer creates the job index when it is absent.
type IndexEnsurer interface {
	EnsureIndex(ctx context.Context) error
}
