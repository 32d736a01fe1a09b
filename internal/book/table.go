package book

// Kind classifies a line of the folding table.
type Kind int

const (
	// Folded sheets are folded between the lower and upper marks.
	Folded Kind = iota
	// Blank sheets show no pattern and are folded all the way.
	Blank
	// Black sheets are covered by the pattern over their whole height and are not folded.
	Black
)

func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Black:
		return "black"
	default:
		return "folded"
	}
}

// markTolerance is half a millimeter, in cm: the pattern height is rounded
// to the millimeter before marks are computed.
const markTolerance = 0.05

// Entry is one line of the folding table. Marks are in centimeters,
// measured from the bottom of the sheet.
type Entry struct {
	Page  int
	Lower float64
	Upper float64
	Kind  Kind
}

// Table is the folding table of a book for its attached pattern.
type Table struct {
	Pattern string
	// SheetHeight is the full height of a sheet, in centimeters.
	SheetHeight float64
	Opening     Opening
	Entries     []Entry
}

// FoldingTable builds one entry per pattern sheet, in page order. Bands
// beyond the capacity of the book are dropped.
func (b *Book) FoldingTable() (*Table, error) {
	if b.pattern == nil {
		return nil, ErrNoPattern
	}

	bands := b.pattern.Bands()
	if n := b.SheetCount().Pattern; len(bands) > n {
		bands = bands[:n]
	}

	full := 100 * b.cfg.SheetHeight
	table := &Table{
		Pattern:     b.pattern.Name(),
		SheetHeight: full,
		Opening:     b.layout.Opening,
		Entries:     make([]Entry, 0, len(bands)),
	}

	firstPage := b.cfg.FirstPage + 2*b.layout.HorizontalMargin
	for i, band := range bands {
		entry := Entry{Page: firstPage + 2*i}
		if band.Blank() {
			entry.Lower, entry.Upper, entry.Kind = 0, full, Blank
			table.Entries = append(table.Entries, entry)
			continue
		}

		// Pixel rows grow downwards, sheet heights grow upwards.
		entry.Lower = 100 * b.sheetCoordinate(band.End)
		entry.Upper = 100 * b.sheetCoordinate(band.Start)
		entry.Kind = Folded
		if entry.Lower <= markTolerance && entry.Upper >= full-markTolerance {
			entry.Lower, entry.Upper, entry.Kind = 0, full, Black
		}
		table.Entries = append(table.Entries, entry)
	}
	return table, nil
}
