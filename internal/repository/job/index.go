package job

import (
	"github.com/kailas-cloud/jobdex/internal/db"
	"github.com/kailas-cloud/jobdex/internal/domain/search/query"
)

// exactSeparator splits TAG values. Commas occur in organisation and town
// names, so "|" is used instead of the engine default.
const exactSeparator = "|"

// textPaths maps every weighted text attribute to its JSON path.
var textPaths = map[string]string{
	"title":        "$.title",
	"organisation": "$.organisation",
	"description":  "$.description",
	"location":     "$.location[*].townName",
	"summary":      "$.summary",
	"profession":   "$.profession",
	"grade_text":   "$.grade",
}

// exactPaths maps attributes indexed as whole values for filtering.
var exactPaths = []struct {
	path string
	attr string
}{
	{"$.title", "title"},
	{"$.organisation", "organisation"},
	{"$.location[*].townName", "location"},
	{"$.profession", "profession"},
	{"$.salary.currency", "salary"},
	{"$.closingDate", "closingDate"},
}

// buildIndex returns the FT.CREATE definition for job documents stored as
// JSON under prefix.
func buildIndex(name, prefix string) (*db.IndexDefinition, error) {
	b := db.NewIndex(name).OnJSON().Prefix(prefix).
		SortableTag("$.id", query.SortField)

	for _, f := range query.TextFields {
		b.Text(textPaths[f.Name], f.Name, f.Weight)
	}
	for _, e := range exactPaths {
		b.TagWithOpts(e.path, query.FilterAttribute(e.attr), exactSeparator, false)
	}

	b.Tag("$.grade", "grade").
		Tag("$.assignmentType", "assignmentType").
		Tag("$.workingPattern[*]", "workingPattern").
		Tag("$.workLocation[*]", "workLocation").
		Tag("$.approach", "approach").
		Numeric("$.salary.minimum", query.RangeAttribute("salary")).
		Numeric("$.jobNumbers", "jobNumbers").
		Tag("$.contacts", "contacts")

	return b.Build()
}
