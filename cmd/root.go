package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/bookfold/internal/config"
	"github.com/lehigh-university-libraries/bookfold/internal/foldcmd"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "bookfold",
		Short: "Folding tables for book folding patterns",
		Long: `Bookfold computes how the pages of a book must be folded so that, seen edge-on,
they show a pattern.

It chooses the margins around the pattern and the opening of the book to preserve
the pattern's aspect ratio, then writes the folding table: one line per page with
the lower and upper folding marks.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			level := cfg.SlogLevel()
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	// Add subcommands
	cmd.AddCommand(foldcmd.NewFoldCmd())
	cmd.AddCommand(foldcmd.NewInspectCmd())

	return cmd
}
