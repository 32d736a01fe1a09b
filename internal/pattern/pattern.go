// Package pattern holds the shapes folded into books: one vertical band of
// pixel rows per sheet.
package pattern

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidPattern is returned for band data that cannot describe a pattern.
var ErrInvalidPattern = errors.New("invalid pattern")

// Band is the interval of pixel rows shown by one sheet. Start and End are
// row boundaries, so a band covering rows 3 and 4 is {3, 5}. A band with
// Start == End is blank.
type Band struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

// Blank reports whether the sheet shows nothing of the pattern.
func (b Band) Blank() bool {
	return b.Start == b.End
}

// Bands is a pattern made of one band per sheet over a pixel grid of a
// given height.
//
// Raw geometry covers every band and every row. The trimmed geometry, used
// when raw is false, drops blank bands at both ends and the rows above and
// under the inked area.
type Bands struct {
	name   string
	height int
	bands  []Band

	first, last int
	top, bottom int
}

// New validates bands and computes the trimmed geometry.
func New(name string, height int, bands []Band) (*Bands, error) {
	if height <= 0 {
		return nil, fmt.Errorf("%w: height must be positive, got %d", ErrInvalidPattern, height)
	}
	if len(bands) == 0 {
		return nil, fmt.Errorf("%w: no bands", ErrInvalidPattern)
	}
	for i, band := range bands {
		if band.Start < 0 || band.Start > band.End || band.End > height {
			return nil, fmt.Errorf("%w: band %d [%d, %d] outside [0, %d]", ErrInvalidPattern, i, band.Start, band.End, height)
		}
	}

	p := &Bands{
		name:   name,
		height: height,
		bands:  slices.Clone(bands),
		first:  0,
		last:   len(bands),
		top:    0,
		bottom: height,
	}

	inked := slices.IndexFunc(bands, func(b Band) bool { return !b.Blank() })
	if inked < 0 {
		return p, nil
	}
	p.first = inked
	for i := len(bands) - 1; i >= inked; i-- {
		if !bands[i].Blank() {
			p.last = i + 1
			break
		}
	}
	p.top, p.bottom = height, 0
	for _, band := range bands[p.first:p.last] {
		if band.Blank() {
			continue
		}
		p.top = min(p.top, band.Start)
		p.bottom = max(p.bottom, band.End)
	}
	return p, nil
}

func (p *Bands) Name() string {
	return p.name
}

// Height is the raw height of the pattern, in pixels.
func (p *Bands) Height() int {
	return p.height
}

// Width is the number of sheets the pattern needs.
func (p *Bands) Width(raw bool) int {
	first, last, _, _ := p.box(raw)
	return last - first
}

// AspectRatio is the width of the pattern over its height, one pixel
// column per sheet.
func (p *Bands) AspectRatio(raw bool) float64 {
	first, last, top, bottom := p.box(raw)
	return float64(last-first) / float64(bottom-top)
}

// VerticalCoordinateRatio maps pixelY to [0, 1] across the pattern height,
// starting from the top row or from the bottom row.
func (p *Bands) VerticalCoordinateRatio(pixelY int, fromTop, raw bool) float64 {
	_, _, top, bottom := p.box(raw)
	ratio := float64(pixelY-top) / float64(bottom-top)
	ratio = min(1, max(0, ratio))
	if !fromTop {
		ratio = 1 - ratio
	}
	return ratio
}

// Bands returns the trimmed bands, one per sheet needed by the pattern.
func (p *Bands) Bands() []Band {
	return slices.Clone(p.bands[p.first:p.last])
}

// All returns every band, blank ones at both ends included.
func (p *Bands) All() []Band {
	return slices.Clone(p.bands)
}

func (p *Bands) box(raw bool) (first, last, top, bottom int) {
	if raw {
		return 0, len(p.bands), 0, p.height
	}
	return p.first, p.last, p.top, p.bottom
}
