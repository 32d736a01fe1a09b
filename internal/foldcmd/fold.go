package foldcmd

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/bookfold/internal/book"
	"github.com/lehigh-university-libraries/bookfold/internal/config"
	"github.com/lehigh-university-libraries/bookfold/internal/pattern"
	"github.com/lehigh-university-libraries/bookfold/internal/report"
)

// NewFoldCmd creates the fold command
func NewFoldCmd() *cobra.Command {
	var flags bookFlags
	var output string
	var format string

	cmd := &cobra.Command{
		Use:   "fold <pattern-file>",
		Short: "Compute the folding table of a pattern",
		Long: `Compute how each sheet of a book must be folded to show a pattern on its page edges.

The margins around the pattern and the opening of the book are chosen to preserve
the aspect ratio of the pattern. The folding table lists, for every folded page,
the lower and upper marks in centimeters, measured from the bottom of the page.

Patterns are read from YAML, JSON, text grids (# marks ink) or Parquet band files.`,
		Example: `  # Fold a pattern into the default 100 page book
  bookfold fold heart.txt

  # Fold into a 400 page book with 24 cm sheets and save as CSV
  bookfold fold heart.yaml --last-page 400 --sheet-height 0.24 --format csv

  # Choose where the table is saved
  bookfold fold heart.yaml --output ./tables/heart.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.Load()
			if err != nil {
				return err
			}
			cfg, err := flags.resolve(cmd, env)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				format = env.OutputFormat
			}

			path, err := executeFold(cmd.ErrOrStderr(), args[0], cfg, env.OutputDir, output, format)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Your pattern has been saved to %s.\n", path)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Path of the folding table (default: <output dir>/<pattern name>_pattern.<ext>)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Folding table format: "+formatNames()+" (default: from the output extension)")

	return cmd
}

func formatNames() string {
	names := make([]string, 0, len(report.Formats))
	for _, f := range report.Formats {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// executeFold computes the folding table of the pattern at patternPath and
// saves it. It returns the path of the saved table.
func executeFold(stderr io.Writer, patternPath string, cfg book.Config, outputDir, output, formatName string) (string, error) {
	slog.Info("Loading pattern", "path", patternPath)

	p, err := pattern.NewLoader(patternPath).Load()
	if err != nil {
		return "", fmt.Errorf("failed to load pattern: %w", err)
	}

	b, err := newBook(stderr, cfg, p)
	if err != nil {
		return "", err
	}

	table, err := b.FoldingTable()
	if err != nil {
		return "", fmt.Errorf("failed to build folding table: %w", err)
	}

	format, err := report.ParseFormat(formatName)
	if err != nil {
		return "", err
	}
	path := report.OutputPath(outputDir, p.Name(), output, format)
	if formatName == "" {
		format = report.FormatForExt(filepath.Ext(path))
	}

	slog.Info("Saving folding table", "path", path, "format", format, "pages", len(table.Entries))

	if err := report.Save(path, format, table); err != nil {
		return "", err
	}
	return path, nil
}

// newBook builds the book and attaches the pattern, reporting a pattern
// wider than the book on stderr.
func newBook(stderr io.Writer, cfg book.Config, p book.Pattern) (*book.Book, error) {
	b := book.New()
	if err := b.SetConfig(cfg); err != nil {
		return nil, err
	}
	if err := b.SetPattern(p); err != nil {
		return nil, fmt.Errorf("failed to attach pattern: %w", err)
	}

	layout, err := b.Layout()
	if err != nil {
		return nil, err
	}

	slog.Debug("Book layout computed",
		"pattern", b.Name(),
		"horizontal_margin", layout.HorizontalMargin,
		"vertical_margin", layout.VerticalMargin,
		"opening", layout.Opening.String())

	if w := layout.Shortfall; w != nil {
		slog.Debug("Pattern does not fit the book", "sheets", w.Available, "required", w.Required)
		fmt.Fprintf(stderr, "! The book has only %d sheets of paper while the pattern requires %d !\n", w.Available, w.Required)
	}
	return b, nil
}
