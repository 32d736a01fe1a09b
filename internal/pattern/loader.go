package pattern

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"
)

// InkRune marks an inked pixel in text grids.
const InkRune = '#'

// File is the layout of YAML and JSON pattern files.
type File struct {
	Name   string `yaml:"name"`
	Height int    `yaml:"height"`
	Bands  []Band `yaml:"bands"`
}

// BandRow is one row of a Parquet pattern file.
type BandRow struct {
	Sheet  int64 `parquet:"sheet"`
	Start  int64 `parquet:"start"`
	End    int64 `parquet:"end"`
	Height int64 `parquet:"height"`
}

// Loader handles loading of pattern files
type Loader struct {
	path string
}

// NewLoader creates a new pattern loader
func NewLoader(path string) *Loader {
	return &Loader{
		path: path,
	}
}

// Load loads a pattern from a YAML, JSON, text grid or Parquet file
func (l *Loader) Load() (*Bands, error) {
	ext := strings.ToLower(filepath.Ext(l.path))

	switch ext {
	case ".yaml", ".yml", ".json":
		return l.loadYAML()
	case ".txt":
		return l.loadGrid()
	case ".parquet":
		return l.loadParquet()
	default:
		return nil, fmt.Errorf("unsupported pattern format: %s (supported: .yaml, .yml, .json, .txt, .parquet)", ext)
	}
}

// defaultName is the file name without directory and extension
func (l *Loader) defaultName() string {
	base := filepath.Base(l.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (l *Loader) loadYAML() (*Bands, error) {
	slog.Debug("Opening pattern file", "path", l.path)

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse pattern file: %w", err)
	}
	if file.Name == "" {
		file.Name = l.defaultName()
	}

	slog.Debug("Pattern file parsed", "name", file.Name, "height", file.Height, "bands", len(file.Bands))

	return New(file.Name, file.Height, file.Bands)
}

func (l *Loader) loadGrid() (*Bands, error) {
	slog.Debug("Opening text grid", "path", l.path)

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pattern file: %w", err)
	}
	defer file.Close()

	return ParseGrid(l.defaultName(), file)
}

// ParseGrid reads a text grid where each column is a sheet and each line a
// pixel row. A column's band spans from its first to its last inked row;
// columns without ink are blank.
func ParseGrid(name string, r io.Reader) (*Bands, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		rows = append(rows, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading pattern grid: %w", err)
	}

	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}

	width := 0
	for _, row := range rows {
		width = max(width, len([]rune(row)))
	}

	bands := make([]Band, width)
	for y, row := range rows {
		for x, c := range []rune(row) {
			if c != InkRune {
				continue
			}
			band := &bands[x]
			if band.Blank() {
				band.Start = y
			}
			band.End = y + 1
		}
	}

	slog.Debug("Pattern grid parsed", "name", name, "rows", len(rows), "columns", width)

	return New(name, len(rows), bands)
}

func (l *Loader) loadParquet() (*Bands, error) {
	slog.Debug("Opening Parquet pattern", "path", l.path)

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened successfully", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[BandRow](pf)
	defer reader.Close()

	var records []BandRow
	rows := make([]BandRow, 128)
	for {
		n, err := reader.Read(rows)
		records = append(records, rows[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].Sheet < records[j].Sheet })

	return bandsFromRows(l.defaultName(), records)
}

// bandsFromRows checks that rows number the sheets 0..n-1 exactly once and
// share one height.
func bandsFromRows(name string, records []BandRow) (*Bands, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no bands", ErrInvalidPattern)
	}

	height := records[0].Height
	bands := make([]Band, 0, len(records))
	for i, record := range records {
		if record.Sheet != int64(i) {
			if i > 0 && record.Sheet == records[i-1].Sheet {
				return nil, fmt.Errorf("%w: sheet %d listed twice", ErrInvalidPattern, record.Sheet)
			}
			return nil, fmt.Errorf("%w: expected sheet %d, got %d", ErrInvalidPattern, i, record.Sheet)
		}
		if record.Height != height {
			return nil, fmt.Errorf("%w: sheet %d has height %d, expected %d", ErrInvalidPattern, record.Sheet, record.Height, height)
		}
		bands = append(bands, Band{Start: int(record.Start), End: int(record.End)})
	}

	return New(name, int(height), bands)
}
