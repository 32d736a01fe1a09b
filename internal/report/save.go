package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lehigh-university-libraries/bookfold/internal/book"
)

// DefaultDir is where folding tables are saved when no path is requested.
const DefaultDir = "patterns"

// Ext is the file extension written for the format, without the dot.
func (f Format) Ext() string {
	switch f {
	case Text, "":
		return "txt"
	default:
		return string(f)
	}
}

// OutputPath derives the file a folding table is saved to. The requested
// path wins over dir/patternName, dir defaulting to DefaultDir; its
// extension is kept, lower-cased, and "_pattern" is appended to the base name.
func OutputPath(dir, patternName, requested string, format Format) string {
	if dir == "" {
		dir = DefaultDir
	}
	path := filepath.Join(dir, patternName)
	if requested != "" {
		path = requested
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		ext = format.Ext()
	}
	return base + "_pattern." + ext
}

// Save writes table to path. The table is written to a temporary file next
// to path and renamed into place, so a failed save leaves nothing behind.
func Save(path string, format Format, table *book.Table) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = Write(tmp, format, table); err != nil {
		return fmt.Errorf("failed to write folding table: %w", err)
	}
	if err = tmp.Chmod(0644); err != nil {
		return fmt.Errorf("failed to set output file mode: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to save folding table: %w", err)
	}
	return nil
}
