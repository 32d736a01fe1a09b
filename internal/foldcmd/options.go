package foldcmd

import (
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/bookfold/internal/book"
	"github.com/lehigh-university-libraries/bookfold/internal/config"
)

// bookFlags are the book parameters shared by every subcommand.
type bookFlags struct {
	firstPage   int
	lastPage    int
	sheetHeight float64
	sheetDepth  float64
}

func (f *bookFlags) register(cmd *cobra.Command) {
	defaults := book.DefaultConfig()
	cmd.Flags().IntVar(&f.firstPage, "first-page", defaults.FirstPage, "Number of the first page of the book")
	cmd.Flags().IntVar(&f.lastPage, "last-page", defaults.LastPage, "Number of the last page of the book")
	cmd.Flags().Float64Var(&f.sheetHeight, "sheet-height", defaults.SheetHeight, "Height of a sheet, in meters")
	cmd.Flags().Float64Var(&f.sheetDepth, "sheet-depth", defaults.SheetDepth, "Thickness of the book block, in meters")
}

// resolve overlays the flags the user set on the environment configuration.
func (f *bookFlags) resolve(cmd *cobra.Command, env config.EnvConfig) (book.Config, error) {
	if cmd.Flags().Changed("first-page") {
		env.FirstPage = f.firstPage
	}
	if cmd.Flags().Changed("last-page") {
		env.LastPage = f.lastPage
	}
	if cmd.Flags().Changed("sheet-height") {
		env.SheetHeight = f.sheetHeight
	}
	if cmd.Flags().Changed("sheet-depth") {
		env.SheetDepth = f.sheetDepth
	}
	return env.Book()
}
