// Package book computes how the sheets of a book must be folded so that its
// page edges show a pattern when the book is opened.
package book

import (
	"strings"

	"github.com/lehigh-university-libraries/bookfold/internal/pattern"
)

// Pattern is the shape to fold into the book. Implementations are owned by
// their loader; the book only keeps a reference.
type Pattern interface {
	Name() string
	// Width is the number of sheets the pattern needs.
	Width(raw bool) int
	// AspectRatio is the pattern width over its height.
	AspectRatio(raw bool) float64
	// VerticalCoordinateRatio maps a pixel row to [0, 1].
	VerticalCoordinateRatio(pixelY int, fromTop, raw bool) float64
	// Bands returns one band per sheet, in sheet order.
	Bands() []pattern.Band
}

// SheetCount splits the sheets of the book around the pattern.
type SheetCount struct {
	Leading  int
	Pattern  int
	Trailing int
	Total    int
}

// HeightBreakdown splits the sheet height around the pattern, in meters.
type HeightBreakdown struct {
	MarginBelow float64
	Pattern     float64
	MarginAbove float64
	Sheet       float64
}

// Spacing is the horizontal extent of one sheet for the narrowest (90°),
// optimal (180°) and widest (360°) openings.
type Spacing struct {
	Min float64
	Opt float64
	Max float64
}

// AspectRatioEnvelope is the range of width over height ratios the folded
// pattern can show, at the current margins.
type AspectRatioEnvelope struct {
	Min float64
	Opt float64
	Max float64
}

// PageRanges are page numbers delimiting the folded pattern.
type PageRanges struct {
	First        int
	PatternStart int
	PatternEnd   int
	Last         int
}

// VerticalRanges are heights in meters, measured from the bottom of the sheet.
type VerticalRanges struct {
	Bottom        float64
	PatternBottom float64
	PatternTop    float64
	Top           float64
}

// Book models the whole book. The pattern aspect ratio is considered fixed;
// the book size, the margins around the pattern and the opening of the book
// are adjusted to match it.
//
// A Book is not safe for concurrent mutation.
type Book struct {
	cfg     Config
	pattern Pattern
	layout  Layout
}

// New returns a book with the default parameters and no pattern.
func New() *Book {
	return &Book{
		cfg:    DefaultConfig(),
		layout: defaultLayout(),
	}
}

// SetSize updates the physical parameters of the book.
func (b *Book) SetSize(firstPage, lastPage int, sheetHeight, sheetDepth float64) error {
	return b.SetConfig(Config{
		FirstPage:   firstPage,
		LastPage:    lastPage,
		SheetHeight: sheetHeight,
		SheetDepth:  sheetDepth,
	})
}

// SetConfig validates and applies cfg. The layout is recomputed when a
// pattern is already attached.
func (b *Book) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	layout := defaultLayout()
	if b.pattern != nil {
		var err error
		layout, err = computeLayout(cfg, b.pattern)
		if err != nil {
			return err
		}
	}
	b.cfg = cfg
	b.layout = layout
	return nil
}

// Config returns the physical parameters of the book.
func (b *Book) Config() Config {
	return b.cfg
}

// SetPattern attaches p and recomputes the margins and the opening.
// A pattern wider than the book is accepted; see Layout.Shortfall.
func (b *Book) SetPattern(p Pattern) error {
	if p == nil {
		return ErrNoPattern
	}
	layout, err := computeLayout(b.cfg, p)
	if err != nil {
		return err
	}
	b.pattern = p
	b.layout = layout
	return nil
}

// Pattern returns the attached pattern, or nil.
func (b *Book) Pattern() Pattern {
	return b.pattern
}

// Layout returns the margins and opening computed for the attached pattern.
func (b *Book) Layout() (Layout, error) {
	if b.pattern == nil {
		return Layout{}, ErrNoPattern
	}
	return b.layout, nil
}

// Name is the name of the attached pattern, or empty.
func (b *Book) Name() string {
	if b.pattern == nil {
		return ""
	}
	return b.pattern.Name()
}

func (b *Book) String() string {
	return padRight("= Book "+b.Name()+" ", '=', 50)
}

// SheetCount returns the number of sheets used by the pattern and left around it.
func (b *Book) SheetCount() SheetCount {
	total := b.cfg.TotalSheets()
	return SheetCount{
		Leading:  b.layout.HorizontalMargin,
		Pattern:  patternSheets(total, b.layout.HorizontalMargin),
		Trailing: b.layout.HorizontalMargin,
		Total:    total,
	}
}

// SheetHeight returns the height used by the pattern and left around it.
func (b *Book) SheetHeight() HeightBreakdown {
	height := round3(max(0, b.cfg.SheetHeight-2*b.layout.VerticalMargin))
	return HeightBreakdown{
		MarginBelow: b.layout.VerticalMargin,
		Pattern:     height,
		MarginAbove: b.layout.VerticalMargin,
		Sheet:       b.cfg.SheetHeight,
	}
}

// SheetSpacing returns the horizontal extent of one sheet for each opening.
func (b *Book) SheetSpacing() Spacing {
	spacing := maxSpacing(b.cfg)
	return Spacing{
		Min: 0.25 * spacing,
		Opt: 0.5 * spacing,
		Max: spacing,
	}
}

// AspectRatio gives the range of ratios the folded pattern can have by
// opening the book more or less, with fixed margins. The envelope is zero
// when no height is left for the pattern.
func (b *Book) AspectRatio() AspectRatioEnvelope {
	height := b.SheetHeight().Pattern
	if height <= 0 {
		return AspectRatioEnvelope{}
	}
	ratio := float64(b.SheetCount().Pattern) / height
	spacing := b.SheetSpacing()
	return AspectRatioEnvelope{
		Min: spacing.Min * ratio,
		Opt: spacing.Opt * ratio,
		Max: spacing.Max * ratio,
	}
}

// HorizontalRanges returns the first page, the pages where the pattern
// starts and ends, and the last page.
func (b *Book) HorizontalRanges() PageRanges {
	start := b.cfg.FirstPage + 2*b.layout.HorizontalMargin
	return PageRanges{
		First:        b.cfg.FirstPage,
		PatternStart: start,
		PatternEnd:   start + 2*b.SheetCount().Pattern,
		Last:         b.cfg.LastPage,
	}
}

// VerticalRanges returns the heights delimiting the pattern on a sheet.
func (b *Book) VerticalRanges() VerticalRanges {
	return VerticalRanges{
		Bottom:        0,
		PatternBottom: b.layout.VerticalMargin,
		PatternTop:    b.cfg.SheetHeight - b.layout.VerticalMargin,
		Top:           b.cfg.SheetHeight,
	}
}

// PixelToSheetCoordinate maps a pattern pixel row to a height on the sheet,
// in meters from the bottom edge.
func (b *Book) PixelToSheetCoordinate(pixelY int) (float64, error) {
	if b.pattern == nil {
		return 0, ErrNoPattern
	}
	return b.sheetCoordinate(pixelY), nil
}

func (b *Book) sheetCoordinate(pixelY int) float64 {
	ratio := b.pattern.VerticalCoordinateRatio(pixelY, false, false)
	return b.layout.VerticalMargin + ratio*b.SheetHeight().Pattern
}

func padRight(s string, fill rune, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(string(fill), width-n)
}
