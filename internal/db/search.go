package db

import "github.com/kailas-cloud/jobdex/internal/domain/search/query"

// SearchQuery is the input for a paginated FT.SEARCH.
type SearchQuery struct {
	IndexName    string
	Expr         query.Expression
	Offset       int
	Limit        int
	SortBy       string // empty: engine relevance order
	SortAsc      bool
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
