package page

import (
	"math"
	"strings"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	p, err := New(0, 0, DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Number() != 1 || p.Size() != DefaultSize || p.Offset() != 0 {
		t.Errorf("page = %d/%d offset %d", p.Number(), p.Size(), p.Offset())
	}
}

func TestNew_Offset(t *testing.T) {
	p, err := New(2, 10, DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Offset() != 10 {
		t.Errorf("Offset() = %d, want 10", p.Offset())
	}
	p, _ = New(3, 10, DefaultLimits())
	if p.Offset() != 20 {
		t.Errorf("Offset() = %d, want 20", p.Offset())
	}
}

func TestNew_Invalid(t *testing.T) {
	limits := Limits{DefaultSize: 10, MaxSize: 50}
	tests := []struct {
		name         string
		number, size int
		want         string
	}{
		{"negative page", -1, 10, "page must be"},
		{"negative size", 1, -5, "pageSize must be between 1 and 50"},
		{"size over max", 1, 51, "pageSize must be between 1 and 50"},
		{"offset overflows", math.MaxInt, 10, "page is too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.number, tt.size, limits)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q", err)
			}
		})
	}
}

func TestNew_MaxSizeAllowed(t *testing.T) {
	if _, err := New(1, MaxSize, DefaultLimits()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{50, 20, 3},
		{100, 100, 1},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestTotalPages_CeilProperty(t *testing.T) {
	for total := 1; total <= 500; total += 7 {
		for size := 1; size <= 100; size += 13 {
			tp := TotalPages(total, size)
			if (tp-1)*size >= total || tp*size < total {
				t.Fatalf("TotalPages(%d, %d) = %d violates ceil", total, size, tp)
			}
		}
	}
}

func TestNew_LargestPageKeepsOffsetPositive(t *testing.T) {
	p, err := New(math.MaxInt/10+1, 10, DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Offset() < 0 {
		t.Errorf("Offset() = %d, want non-negative", p.Offset())
	}
	if _, err := New(math.MaxInt, 1, DefaultLimits()); err != nil {
		t.Errorf("pageSize 1 allows any page: %v", err)
	}
}
