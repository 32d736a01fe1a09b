// Package report renders folding tables for crafters: the canonical text
// table and structured exports.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/lehigh-university-libraries/bookfold/internal/book"
)

// Format is an output format for a folding table.
type Format string

const (
	Text    Format = "text"
	YAML    Format = "yaml"
	JSON    Format = "json"
	CSV     Format = "csv"
	Parquet Format = "parquet"
)

// Formats lists the supported formats.
var Formats = []Format{Text, YAML, JSON, CSV, Parquet}

// ParseFormat validates a format name. An empty name is Text.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return Text, nil
	case Text, YAML, JSON, CSV, Parquet:
		return f, nil
	case "yml":
		return YAML, nil
	case "txt":
		return Text, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", name)
	}
}

// FormatForExt picks the format matching a file extension, with or without
// the leading dot. Unknown extensions are written as Text.
func FormatForExt(ext string) Format {
	f, err := ParseFormat(strings.TrimPrefix(ext, "."))
	if err != nil {
		return Text
	}
	return f
}

// Write renders table to w in the given format.
func Write(w io.Writer, format Format, table *book.Table) error {
	switch format {
	case Text, "":
		return WriteText(w, table)
	case YAML:
		return writeYAML(w, table)
	case JSON:
		return writeJSON(w, table)
	case CSV:
		return writeCSV(w, table)
	case Parquet:
		return writeParquet(w, table)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
