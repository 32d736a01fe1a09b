package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lehigh-university-libraries/bookfold/internal/book"
)

const lineWidth = 80

var rule = strings.Repeat("=", lineWidth-1)

const disclaimer = `The folding marks are measured from the bottom of the page.
The blank pages are meant to be folded all the way, from top to bottom.
The measures are given in cm.`

const footer = `Generated by bookfold.
Licensed under GPL v3.
Enjoy your time folding !`

// Line annotations by kind.
const (
	blankNote = "This page is WHITE = folded all the way!"
	blackNote = "This page is BLACK = not folded !"
)

// WriteText writes the folding table a crafter follows page by page.
func WriteText(w io.Writer, table *book.Table) error {
	bw := bufio.NewWriter(w)

	title := "= " + table.Pattern + " "
	if n := len([]rune(title)); n < lineWidth {
		title += strings.Repeat("=", lineWidth-n)
	}
	fmt.Fprintln(bw, title)
	fmt.Fprintln(bw, disclaimer)
	fmt.Fprintln(bw, rule)
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, rule)
	fmt.Fprintf(bw, "%-4s\t%-5s\t%-5s\n", "Page", "Lower", "Upper")
	fmt.Fprintln(bw, rule)

	for _, entry := range table.Entries {
		fmt.Fprintln(bw, formatLine(entry))
	}

	fmt.Fprintln(bw, rule)
	fmt.Fprintln(bw, footer)

	return bw.Flush()
}

func formatLine(entry book.Entry) string {
	line := fmt.Sprintf("%-4d\t%-5.1f\t%-5.1f", entry.Page, entry.Lower, entry.Upper)
	switch entry.Kind {
	case book.Blank:
		line += "\t" + blankNote
	case book.Black:
		line += "\t" + blackNote
	}
	return line
}
