// Package page holds validated pagination: 1-based page number, size and offset.
package page

import (
	"fmt"
	"math"
)

// Default pagination limits.
const (
	DefaultSize = 10
	MaxSize     = 100
)

// Limits bounds the page size a caller may request.
type Limits struct {
	DefaultSize int
	MaxSize     int
}

// DefaultLimits returns the built-in limits.
func DefaultLimits() Limits {
	return Limits{DefaultSize: DefaultSize, MaxSize: MaxSize}
}

// Page is a validated 1-based page window.
type Page struct {
	number int
	size   int
}

// New validates a page request. Zero values select page 1 and the default size.
func New(number, size int, limits Limits) (Page, error) {
	if number == 0 {
		number = 1
	}
	if number < 1 {
		return Page{}, fmt.Errorf("page must be >= 1")
	}
	if size == 0 {
		size = limits.DefaultSize
	}
	if size < 1 || size > limits.MaxSize {
		return Page{}, fmt.Errorf("pageSize must be between 1 and %d", limits.MaxSize)
	}
	// Offset must stay representable.
	if number-1 > math.MaxInt/size {
		return Page{}, fmt.Errorf("page is too large for pageSize %d", size)
	}
	return Page{number: number, size: size}, nil
}

// Number returns the 1-based page number.
func (p Page) Number() int { return p.number }

// Size returns the page size.
func (p Page) Size() int { return p.size }

// Offset returns the number of results skipped before this page.
func (p Page) Offset() int { return (p.number - 1) * p.size }

// TotalPages returns how many pages of size hold total results. Zero when total is zero.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
