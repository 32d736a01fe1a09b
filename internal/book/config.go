package book

import (
	"fmt"
	"math"
)

// Default book parameters, used until SetSize is called.
const (
	DefaultFirstPage   = 1
	DefaultLastPage    = 100
	DefaultSheetHeight = 0.2
	DefaultSheetDepth  = 0.1
)

// Config holds the physical parameters of the book. Lengths are in meters.
type Config struct {
	FirstPage   int
	LastPage    int
	SheetHeight float64
	SheetDepth  float64
}

// DefaultConfig returns the parameters of a freshly constructed book.
func DefaultConfig() Config {
	return Config{
		FirstPage:   DefaultFirstPage,
		LastPage:    DefaultLastPage,
		SheetHeight: DefaultSheetHeight,
		SheetDepth:  DefaultSheetDepth,
	}
}

// Validate rejects parameters that would produce NaN or negative geometry downstream.
func (c Config) Validate() error {
	if c.LastPage < c.FirstPage {
		return fmt.Errorf("%w: last page %d is before first page %d", ErrInvalidConfig, c.LastPage, c.FirstPage)
	}
	// The span wraps around when the pages sit far apart on both sides of zero.
	if span := c.LastPage - c.FirstPage; span < 0 || span == math.MaxInt {
		return fmt.Errorf("%w: page range %d..%d is too large", ErrInvalidConfig, c.FirstPage, c.LastPage)
	}
	if !positive(c.SheetHeight) {
		return fmt.Errorf("%w: sheet height must be positive, got %v", ErrInvalidConfig, c.SheetHeight)
	}
	if !positive(c.SheetDepth) {
		return fmt.Errorf("%w: sheet depth must be positive, got %v", ErrInvalidConfig, c.SheetDepth)
	}
	return nil
}

// PageCount is the number of pages between FirstPage and LastPage, inclusive.
func (c Config) PageCount() int {
	return c.LastPage - c.FirstPage + 1
}

// TotalSheets is the number of paper sheets; each sheet carries two pages.
func (c Config) TotalSheets() int {
	return (c.LastPage-c.FirstPage)/2 + 1
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
