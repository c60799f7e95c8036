package db

import (
	"strings"
	"testing"
)

func TestIndexBuilder_Simple(t *testing.T) {
	idx := NewIndex("test-idx").
		Prefix("doc:").
		Tag("category", "").
		Numeric("price", "").
		MustBuild()

	if err := idx.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Name != "test-idx" {
		t.Errorf("name = %q, want test-idx", idx.Name)
	}
	if idx.StorageType != StorageHash {
		t.Errorf("storage = %q, want HASH", idx.StorageType)
	}
	if len(idx.Fields) != 2 {
		t.Fatalf("fields count = %d, want 2", len(idx.Fields))
	}
	if idx.Fields[0].Name != "category" || idx.Fields[0].Type != IndexFieldTag {
		t.Errorf("field[0] = %+v, want category TAG", idx.Fields[0])
	}
	if idx.Fields[1].Name != "price" || idx.Fields[1].Type != IndexFieldNumeric {
		t.Errorf("field[1] = %+v, want price NUMERIC", idx.Fields[1])
	}
}

func TestIndexBuilder_JSONWithAliases(t *testing.T) {
	idx := NewIndex("jobs").
		OnJSON().
		Prefix("jobdex:jobs:").
		SortableTag("$.id", "id").
		Text("$.title", "title", 3).
		Text("$.grade", "grade_text", 0).
		Tag("$.grade", "grade").
		MustBuild()

	if idx.StorageType != StorageJSON {
		t.Errorf("storage = %q, want JSON", idx.StorageType)
	}
	if !idx.Fields[0].Sortable {
		t.Error("id should be sortable")
	}
	if idx.Fields[1].Weight != 3 || idx.Fields[1].Attribute() != "title" {
		t.Errorf("title field = %+v", idx.Fields[1])
	}
	if idx.Fields[2].Attribute() == idx.Fields[3].Attribute() {
		t.Error("same path under two aliases must yield distinct attributes")
	}
}

func TestIndexBuilder_TagOptions(t *testing.T) {
	idx := NewIndex("tag-idx").
		Prefix("t:").
		TagWithOpts("tags", "", "|", true).
		MustBuild()

	f := idx.Fields[0]
	if f.TagSeparator != "|" {
		t.Errorf("separator = %q, want |", f.TagSeparator)
	}
	if !f.TagCaseSensitive {
		t.Error("expected TagCaseSensitive=true")
	}
}

func TestIndexBuilder_MultiplePrefixes(t *testing.T) {
	idx := NewIndex("multi-idx").
		Prefix("a:", "b:", "c:").
		Tag("x", "").
		MustBuild()

	if len(idx.Prefixes) != 3 {
		t.Errorf("prefix count = %d, want 3", len(idx.Prefixes))
	}
}

func TestIndexBuilder_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		builder func() (*IndexDefinition, error)
		wantErr string
	}{
		{
			name: "empty name",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("").Tag("x", "").Build()
			},
			wantErr: "index name is required",
		},
		{
			name: "no fields",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Build()
			},
			wantErr: "at least one field",
		},
		{
			name: "negative weight",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Text("t", "", -1).Build()
			},
			wantErr: "negative weight",
		},
		{
			name: "weight on tag",
			builder: func() (*IndexDefinition, error) {
				return (&IndexBuilder{def: IndexDefinition{
					Name:   "idx",
					Fields: []IndexField{{Name: "g", Type: IndexFieldTag, Weight: 2}},
				}}).Build()
			},
			wantErr: "only valid on TEXT",
		},
		{
			name: "long separator",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").TagWithOpts("t", "", "||", false).Build()
			},
			wantErr: "single character",
		},
		{
			name: "invalid characters",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx with spaces").Tag("x", "").Build()
			},
			wantErr: "invalid characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got error %q, want containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestIndexDefinition_String(t *testing.T) {
	idx := NewIndex("my-idx").
		OnJSON().
		Prefix("doc:").
		Text("$.title", "title", 3).
		SortableTag("$.id", "id").
		MustBuild()

	s := idx.String()
	if !strings.HasPrefix(s, "FT.CREATE ") {
		t.Errorf("expected FT.CREATE prefix, got %q", s)
	}
	for _, want := range []string{"my-idx", "ON JSON", "$.title AS title TEXT WEIGHT 3", "$.id AS id TAG SORTABLE"} {
		if !strings.Contains(s, want) {
			t.Errorf("string output %q missing %q", s, want)
		}
	}
}

func TestIndexBuilder_DuplicateFields(t *testing.T) {
	idx := &IndexDefinition{
		Name: "dup-idx",
		Fields: []IndexField{
			{Name: "$.a", Alias: "field1", Type: IndexFieldTag},
			{Name: "$.b", Alias: "field1", Type: IndexFieldNumeric},
		},
	}

	if err := idx.Validate(); err == nil {
		t.Fatal("expected error for duplicate fields")
	}
}
