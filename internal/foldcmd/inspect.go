package foldcmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/bookfold/internal/book"
	"github.com/lehigh-university-libraries/bookfold/internal/config"
	"github.com/lehigh-university-libraries/bookfold/internal/pattern"
	"github.com/lehigh-university-libraries/bookfold/internal/report"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	var flags bookFlags
	var showTable bool

	cmd := &cobra.Command{
		Use:   "inspect <pattern-file>",
		Short: "Show how a pattern fits a book",
		Long: `Show the geometry computed for a pattern: sheets used and left around it,
vertical margins, sheet spacing, the range of aspect ratios the book can show,
and the opening that best preserves the pattern's aspect ratio.`,
		Example: `  # Inspect a pattern in the default book
  bookfold inspect heart.txt

  # Inspect and print the folding table
  bookfold inspect heart.yaml --last-page 400 --table`,
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
			return executeInspect(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], cfg, showTable)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&showTable, "table", false, "Print the folding table")

	return cmd
}

func executeInspect(stdout, stderr io.Writer, patternPath string, cfg book.Config, showTable bool) error {
	p, err := pattern.NewLoader(patternPath).Load()
	if err != nil {
		return fmt.Errorf("failed to load pattern: %w", err)
	}

	b, err := newBook(stderr, cfg, p)
	if err != nil {
		return err
	}

	if err := printSummary(stdout, b, p); err != nil {
		return err
	}

	if !showTable {
		return nil
	}
	table, err := b.FoldingTable()
	if err != nil {
		return fmt.Errorf("failed to build folding table: %w", err)
	}
	fmt.Fprintln(stdout)
	return report.WriteText(stdout, table)
}

func printSummary(w io.Writer, b *book.Book, p *pattern.Bands) error {
	layout, err := b.Layout()
	if err != nil {
		return err
	}
	count := b.SheetCount()
	height := b.SheetHeight()
	spacing := b.SheetSpacing()
	ratio := b.AspectRatio()
	pages := b.HorizontalRanges()
	vertical := b.VerticalRanges()

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, b.String())
	fmt.Fprintln(bw, strings.Repeat("-", 50))
	fmt.Fprintf(bw, "Pattern:          %d sheets (%d raw), %d pixel rows\n", p.Width(false), p.Width(true), p.Height())
	fmt.Fprintf(bw, "Pattern ratio:    %.3f (%.3f raw)\n", p.AspectRatio(false), p.AspectRatio(true))
	fmt.Fprintf(bw, "Sheets:           %d + %d + %d = %d\n", count.Leading, count.Pattern, count.Trailing, count.Total)
	fmt.Fprintf(bw, "Pages:            %d | %d - %d | %d\n", pages.First, pages.PatternStart, pages.PatternEnd, pages.Last)
	fmt.Fprintf(bw, "Height (m):       %.3f + %.3f + %.3f = %.3f\n", height.MarginBelow, height.Pattern, height.MarginAbove, height.Sheet)
	fmt.Fprintf(bw, "Pattern band (m): %.3f - %.3f of %.3f\n", vertical.PatternBottom, vertical.PatternTop, vertical.Top)
	fmt.Fprintf(bw, "Spacing (m):      %.5f / %.5f / %.5f\n", spacing.Min, spacing.Opt, spacing.Max)
	fmt.Fprintf(bw, "Book ratio:       %.3f / %.3f / %.3f\n", ratio.Min, ratio.Opt, ratio.Max)
	fmt.Fprintf(bw, "Opening:          %s\n", layout.Opening)
	return bw.Flush()
}
