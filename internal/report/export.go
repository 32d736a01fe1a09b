package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/bookfold/internal/book"
)

// Unit of every mark in exported tables.
const Unit = "cm"

// Document is the structured form of a folding table.
type Document struct {
	Pattern     string  `yaml:"pattern" json:"pattern"`
	Unit        string  `yaml:"unit" json:"unit"`
	SheetHeight float64 `yaml:"sheet_height_cm" json:"sheet_height_cm"`
	Opening     int     `yaml:"opening" json:"opening"`
	Entries     []Row   `yaml:"entries" json:"entries"`
}

// Row is one page of an exported folding table. Marks are rounded to the
// millimeter like the text table.
type Row struct {
	Page  int64   `yaml:"page" json:"page" parquet:"page"`
	Lower float64 `yaml:"lower" json:"lower" parquet:"lower"`
	Upper float64 `yaml:"upper" json:"upper" parquet:"upper"`
	Kind  string  `yaml:"kind" json:"kind" parquet:"kind"`
}

// NewDocument converts table for export.
func NewDocument(table *book.Table) Document {
	return Document{
		Pattern:     table.Pattern,
		Unit:        Unit,
		SheetHeight: roundMark(table.SheetHeight),
		Opening:     int(table.Opening),
		Entries:     rows(table),
	}
}

func rows(table *book.Table) []Row {
	out := make([]Row, 0, len(table.Entries))
	for _, entry := range table.Entries {
		out = append(out, Row{
			Page:  int64(entry.Page),
			Lower: roundMark(entry.Lower),
			Upper: roundMark(entry.Upper),
			Kind:  entry.Kind.String(),
		})
	}
	return out
}

func roundMark(v float64) float64 {
	return math.Round(v*10) / 10
}

func writeYAML(w io.Writer, table *book.Table) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(NewDocument(table)); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return encoder.Close()
}

func writeJSON(w io.Writer, table *book.Table) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewDocument(table))
}

func writeCSV(w io.Writer, table *book.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"page", "lower", "upper", "kind"}); err != nil {
		return err
	}

	for _, row := range rows(table) {
		record := []string{
			strconv.FormatInt(row.Page, 10),
			strconv.FormatFloat(row.Lower, 'f', 1, 64),
			strconv.FormatFloat(row.Upper, 'f', 1, 64),
			row.Kind,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeParquet(w io.Writer, table *book.Table) error {
	writer := parquet.NewGenericWriter[Row](w)
	if _, err := writer.Write(rows(table)); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
