package foldcmd

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/bookfold/internal/book"
	"github.com/lehigh-university-libraries/bookfold/internal/pattern"
	"github.com/lehigh-university-libraries/bookfold/internal/report"
)

func writePattern(t *testing.T, dir string, sheets int) string {
	t.Helper()
	file := pattern.File{Name: "uniform", Height: 40}
	for i := 0; i < sheets; i++ {
		file.Bands = append(file.Bands, pattern.Band{Start: 0, End: 40})
	}
	data, err := yaml.Marshal(&file)
	require.NoError(t, err)

	path := filepath.Join(dir, "uniform.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestExecuteFold(t *testing.T) {
	tmpDir := t.TempDir()
	patternPath := writePattern(t, tmpDir, 40)
	outputDir := filepath.Join(tmpDir, "patterns")

	var stderr bytes.Buffer
	path, err := executeFold(&stderr, patternPath, book.DefaultConfig(), outputDir, "", "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outputDir, "uniform_pattern.txt"), path)
	assert.Empty(t, stderr.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "= uniform ="))
	assert.Contains(t, text, "11  \t3.7  \t16.3 \n")
	assert.Contains(t, text, "89  \t3.7  \t16.3 \n")
	assert.NotContains(t, text, "91  \t")
}

func TestExecuteFoldInfersFormatFromOutput(t *testing.T) {
	tmpDir := t.TempDir()
	patternPath := writePattern(t, tmpDir, 40)

	var stderr bytes.Buffer
	path, err := executeFold(&stderr, patternPath, book.DefaultConfig(), tmpDir, filepath.Join(tmpDir, "table.CSV"), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "table_pattern.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 41)
	assert.Equal(t, "page,lower,upper,kind", lines[0])
	assert.Equal(t, "11,3.7,16.3,folded", lines[1])
}

func TestExecuteFoldWarnsWhenPatternDoesNotFit(t *testing.T) {
	tmpDir := t.TempDir()
	patternPath := writePattern(t, tmpDir, 60)

	var stderr bytes.Buffer
	path, err := executeFold(&stderr, patternPath, book.DefaultConfig(), tmpDir, "", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "The book has only 50 sheets of paper while the pattern requires 60")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 50, strings.Count(string(data), "- page:"))
}

func TestExecuteFoldWarnsOnce(t *testing.T) {
	var logs bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn})))
	t.Cleanup(func() { slog.SetDefault(previous) })

	tmpDir := t.TempDir()
	patternPath := writePattern(t, tmpDir, 60)

	var stderr bytes.Buffer
	_, err := executeFold(&stderr, patternPath, book.DefaultConfig(), tmpDir, "", "")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(stderr.String(), "The book has only 50 sheets"))
	assert.Empty(t, logs.String(), "the shortfall is not logged again at warn level")
}

func TestFoldCmdFormatUsageListsFormats(t *testing.T) {
	usage := NewFoldCmd().Flags().Lookup("format").Usage

	for _, format := range report.Formats {
		assert.Contains(t, usage, string(format))
	}
}

func TestExecuteFoldErrors(t *testing.T) {
	tmpDir := t.TempDir()
	patternPath := writePattern(t, tmpDir, 10)

	var stderr bytes.Buffer
	_, err := executeFold(&stderr, filepath.Join(tmpDir, "missing.yaml"), book.DefaultConfig(), tmpDir, "", "")
	assert.Error(t, err)

	_, err = executeFold(&stderr, patternPath, book.DefaultConfig(), tmpDir, "", "pdf")
	assert.ErrorContains(t, err, "unsupported format")

	_, err = executeFold(&stderr, patternPath, book.Config{FirstPage: 9, LastPage: 1, SheetHeight: 0.2, SheetDepth: 0.1}, tmpDir, "", "")
	assert.ErrorIs(t, err, book.ErrInvalidConfig)
}

func TestFoldCmdFlagsOverrideEnvironment(t *testing.T) {
	tmpDir := t.TempDir()
	patternPath := writePattern(t, tmpDir, 40)
	t.Setenv("BOOKFOLD_OUTPUT_DIR", tmpDir)
	t.Setenv("BOOKFOLD_LAST_PAGE", "60")

	cmd := NewFoldCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{patternPath, "--last-page", "200", "--format", "json"})
	require.NoError(t, cmd.Execute())

	path := filepath.Join(tmpDir, "uniform_pattern.json")
	assert.Contains(t, stdout.String(), "Your pattern has been saved to "+path+".")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// 100 sheets, 30 left before the pattern.
	assert.Contains(t, string(data), `"page": 61`)
}

func TestExecuteInspect(t *testing.T) {
	tmpDir := t.TempDir()
	patternPath := writePattern(t, tmpDir, 40)

	var stdout, stderr bytes.Buffer
	require.NoError(t, executeInspect(&stdout, &stderr, patternPath, book.DefaultConfig(), true))

	out := stdout.String()
	assert.Contains(t, out, "= Book uniform =")
	assert.Contains(t, out, "Sheets:           5 + 40 + 5 = 50")
	assert.Contains(t, out, "Pages:            1 | 11 - 91 | 100")
	assert.Contains(t, out, "Height (m):       0.037 + 0.126 + 0.037 = 0.200")
	assert.Contains(t, out, "Opening:          90°")
	assert.Contains(t, out, "Page\tLower\tUpper")
}
