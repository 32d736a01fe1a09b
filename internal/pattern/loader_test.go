package pattern

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	path := "./heart.yaml"
	loader := NewLoader(path)

	assert.Equal(t, path, loader.path)
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "heart.yaml")

	testData := `name: Heart
height: 40
bands:
  - {start: 0, end: 0}
  - {start: 10, end: 30}
  - {start: 5, end: 35}
`
	require.NoError(t, os.WriteFile(path, []byte(testData), 0644))

	p, err := NewLoader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "Heart", p.Name())
	assert.Equal(t, 40, p.Height())
	assert.Equal(t, 3, p.Width(true))
	assert.Equal(t, 2, p.Width(false))
}

func TestLoadJSONDefaultsName(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "star.json")

	testData := `{"height": 8, "bands": [{"start": 1, "end": 7}, {"start": 2, "end": 6}]}`
	require.NoError(t, os.WriteFile(path, []byte(testData), 0644))

	p, err := NewLoader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "star", p.Name(), "name comes from the file")
	assert.Len(t, p.Bands(), 2)
}

func TestParseGrid(t *testing.T) {
	grid := strings.Join([]string{
		"  #  ",
		" ### ",
		"## ##",
		"",
	}, "\n")

	p, err := ParseGrid("crown", strings.NewReader(grid))
	require.NoError(t, err)

	assert.Equal(t, 3, p.Height())
	assert.Equal(t, []Band{{2, 3}, {1, 3}, {0, 2}, {1, 3}, {2, 3}}, p.All())
}

func TestParseGridBlankColumns(t *testing.T) {
	p, err := ParseGrid("dots", strings.NewReader("# .#\n#  #\n"))
	require.NoError(t, err)

	bands := p.All()
	assert.True(t, bands[1].Blank())
	assert.True(t, bands[2].Blank())
	assert.Equal(t, 4, p.Width(false), "inner blank columns are kept")
}

func writeParquetPattern(t *testing.T, rows []BandRow) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wave.parquet")
	require.NoError(t, parquet.WriteFile(path, rows))
	return path
}

func TestLoadParquet(t *testing.T) {
	path := writeParquetPattern(t, []BandRow{
		{Sheet: 1, Start: 4, End: 9, Height: 12},
		{Sheet: 0, Start: 2, End: 10, Height: 12},
		{Sheet: 2, Start: 0, End: 0, Height: 12},
	})

	p, err := NewLoader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "wave", p.Name())
	assert.Equal(t, 12, p.Height())
	assert.Equal(t, []Band{{2, 10}, {4, 9}, {0, 0}}, p.All(), "bands follow sheet order")
}

func TestLoadParquetRejectsInconsistentSheets(t *testing.T) {
	tests := []struct {
		name    string
		rows    []BandRow
		message string
	}{
		{
			name: "duplicate sheet",
			rows: []BandRow{
				{Sheet: 0, Start: 2, End: 10, Height: 12},
				{Sheet: 1, Start: 4, End: 9, Height: 12},
				{Sheet: 1, Start: 3, End: 8, Height: 12},
			},
			message: "sheet 1 listed twice",
		},
		{
			name: "missing sheet",
			rows: []BandRow{
				{Sheet: 0, Start: 2, End: 10, Height: 12},
				{Sheet: 2, Start: 4, End: 9, Height: 12},
			},
			message: "expected sheet 1, got 2",
		},
		{
			name: "not starting at zero",
			rows: []BandRow{
				{Sheet: 1, Start: 2, End: 10, Height: 12},
			},
			message: "expected sheet 0, got 1",
		},
		{
			name: "differing heights",
			rows: []BandRow{
				{Sheet: 0, Start: 2, End: 10, Height: 12},
				{Sheet: 1, Start: 4, End: 9, Height: 16},
			},
			message: "sheet 1 has height 16, expected 12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(writeParquetPattern(t, tt.rows)).Load()
			assert.ErrorIs(t, err, ErrInvalidPattern)
			assert.ErrorContains(t, err, tt.message)
		})
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := NewLoader("pattern.png").Load()
	assert.ErrorContains(t, err, "unsupported pattern format")
}
