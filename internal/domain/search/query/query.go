// Package query turns free text and filters into one engine-neutral search expression.
package query

import (
	"strings"
	"unicode"

	"github.com/kailas-cloud/jobdex/internal/domain/search/filter"
)

// WeightedField is a full-text field and its relevance weight.
type WeightedField struct {
	Name   string
	Weight float64
}

// TextFields are the fields free text is matched against, with their weights.
var TextFields = []WeightedField{
	{Name: "title", Weight: 3},
	{Name: "organisation", Weight: 2},
	{Name: "description", Weight: 1},
	{Name: "location", Weight: 1},
	{Name: "summary", Weight: 1},
	{Name: "profession", Weight: 1},
	{Name: "grade_text", Weight: 1},
}

// ExactSuffix names the non-analysed sub-field of a text field.
const ExactSuffix = "_exact"

// exactFields are analysed text fields whose filters match the exact sub-field.
var exactFields = map[string]bool{
	"title":        true,
	"organisation": true,
	"location":     true,
	"profession":   true,
	"salary":       true,
	"closingDate":  true,
}

// rangeFields maps a filter key to the numeric attribute its range applies to.
var rangeFields = map[string]string{
	"salary": "salaryMinimum",
}

// SortField is the tiebreak ordering used when nothing ranks results.
const SortField = "id"

// FilterAttribute returns the index attribute a match filter on key compares against.
func FilterAttribute(key string) string {
	if exactFields[key] {
		return key + ExactSuffix
	}
	return key
}

// RangeAttribute returns the numeric index attribute a range filter on key compares against.
func RangeAttribute(key string) string {
	if attr, ok := rangeFields[key]; ok {
		return attr
	}
	return key
}

// Term is a single free-text token with its allowed edit distance.
type Term struct {
	Text     string
	Distance int
}

// Expression is the built query: optional fuzzy text plus a conjunction of filters.
type Expression struct {
	text    string
	terms   []Term
	filters filter.Expression
}

// Build combines text and filters. Blank text and an empty filter set yield match-all.
func Build(text string, filters filter.Expression) Expression {
	text = strings.TrimSpace(text)
	return Expression{text: text, terms: Tokenize(text), filters: filters}
}

// MatchAll returns the expression matching every document.
func MatchAll() Expression { return Expression{} }

// Text returns the trimmed free text.
func (e Expression) Text() string { return e.text }

// Terms returns the fuzzy terms of the free text, OR'd together.
func (e Expression) Terms() []Term { return e.terms }

// Filters returns the filter conjunction.
func (e Expression) Filters() filter.Expression { return e.filters }

// HasText reports whether the expression carries a relevance clause.
func (e Expression) HasText() bool { return len(e.terms) > 0 }

// IsMatchAll reports whether the expression selects every document.
func (e Expression) IsMatchAll() bool { return !e.HasText() && e.filters.IsEmpty() }

// Ranked reports whether results are ordered by relevance. Unranked expressions
// are ordered by SortField ascending.
func (e Expression) Ranked() bool { return e.HasText() }

// Tokenize splits text into lowercase terms on any non letter or digit rune and
// assigns each an automatic edit distance.
func Tokenize(text string) []Term {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return nil
	}
	terms := make([]Term, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		terms = append(terms, Term{Text: w, Distance: AutoDistance(w)})
	}
	return terms
}

// AutoDistance returns the edit distance allowed for a term: none up to two
// characters, one up to five, two beyond.
func AutoDistance(term string) int {
	n := len([]rune(term))
	switch {
	case n <= 2:
		return 0
	case n <= 5:
		return 1
	default:
		return 2
	}
}
