package book

import (
	"fmt"
	"math"
)

// Opening is the angle, in degrees, the book is opened to when displayed.
type Opening int

const (
	Opening90  Opening = 90
	Opening180 Opening = 180
	Opening360 Opening = 360
)

func (o Opening) String() string {
	return fmt.Sprintf("%d°", int(o))
}

// Layout is the state derived from the book parameters and the attached
// pattern. It is recomputed as a whole, never field by field.
type Layout struct {
	// HorizontalMargin is the number of sheets left unused both before and after the pattern.
	HorizontalMargin int
	// VerticalMargin is the blank space, in meters, left both above and under the pattern.
	VerticalMargin float64
	// Opening preserves the aspect ratio of the pattern.
	Opening Opening
	// Shortfall is set when the pattern needs more sheets than the book has.
	Shortfall *CapacityWarning
}

func defaultLayout() Layout {
	return Layout{Opening: Opening180}
}

// computeLayout runs the margin pipeline: horizontal margin, then opening,
// then vertical margin. Each step only sees the results of the previous ones.
func computeLayout(cfg Config, p Pattern) (Layout, error) {
	width := p.Width(false)
	if width < 0 {
		return Layout{}, fmt.Errorf("%w: negative width %d", ErrInvalidPattern, width)
	}
	aspect := p.AspectRatio(true)
	if !positive(aspect) {
		return Layout{}, fmt.Errorf("%w: aspect ratio must be positive, got %v", ErrInvalidPattern, aspect)
	}

	total := cfg.TotalSheets()
	layout := defaultLayout()
	layout.HorizontalMargin = horizontalMargin(total, width)

	height360 := patternHeight360(cfg, layout.HorizontalMargin, aspect)
	layout.Opening = bookOpening(height360, cfg.SheetHeight)
	layout.VerticalMargin = verticalMargin(cfg.SheetHeight, height360, layout.Opening)

	if width > total {
		layout.Shortfall = &CapacityWarning{Available: total, Required: width}
	}
	return layout, nil
}

func horizontalMargin(totalSheets, patternWidth int) int {
	return max(0, totalSheets-patternWidth) / 2
}

func patternSheets(totalSheets, horizontalMargin int) int {
	return max(0, totalSheets-2*horizontalMargin)
}

// maxSpacing is the share of the book's circumference given to each sheet
// when the book is opened all the way around.
func maxSpacing(cfg Config) float64 {
	return 2 * math.Pi * cfg.SheetDepth / float64(cfg.TotalSheets())
}

// patternHeight360 is the height the pattern would need to keep its aspect
// ratio with the book fully opened.
func patternHeight360(cfg Config, horizontalMargin int, aspect float64) float64 {
	width360 := maxSpacing(cfg) * float64(patternSheets(cfg.TotalSheets(), horizontalMargin))
	return width360 / aspect
}

func bookOpening(height360, sheetHeight float64) Opening {
	ratio := height360 / sheetHeight
	switch {
	case ratio < 1.0:
		return Opening360
	case ratio < 2.0:
		return Opening180
	default:
		return Opening90
	}
}

func verticalMargin(sheetHeight, height360 float64, opening Opening) float64 {
	margin := 0.5 * sheetHeight
	switch opening {
	case Opening360:
		margin -= 0.5 * height360
	case Opening180:
		margin -= 0.25 * height360
	default:
		margin -= 0.125 * height360
	}
	return round3(max(0, margin))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
