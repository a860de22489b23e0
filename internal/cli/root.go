// Package cli implements the mdsplit command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dgallion1/mdsplit/internal/chunker"
	"github.com/dgallion1/mdsplit/internal/config"
	"github.com/dgallion1/mdsplit/internal/parser"
)

// splitFlags are shared by every command that splits documents.
type splitFlags struct {
	out            string
	title          string
	tokenizer      string
	maxCost        int
	manifestSingle bool
	dryRun         bool
	verbose        bool
}

func (f *splitFlags) options(maxCost int) (chunker.Options, error) {
	if maxCost <= 0 {
		return chunker.Options{}, fmt.Errorf("%w: got %d", chunker.ErrInvalidBudget, maxCost)
	}
	cost, err := chunker.CostFuncByName(f.tokenizer)
	if err != nil {
		return chunker.Options{}, err
	}
	return chunker.Options{
		MaxCost:           maxCost,
		Cost:              cost,
		ManifestForSingle: f.manifestSingle,
	}, nil
}

func (f *splitFlags) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewRootCommand builds the mdsplit command tree. Flag defaults come from the
// same environment variables the server reads.
func NewRootCommand(version string) *cobra.Command {
	cfg := config.Load()
	flags := &splitFlags{}
	parserOpts := parser.Options{PDFFallback: cfg.PDFFallbackPdftotext}

	root := &cobra.Command{
		Use:   "mdsplit <file> [max-tokens]",
		Short: "Split large documents into token-bounded Markdown parts",
		Long: `mdsplit converts a document to Markdown and splits it into parts that each
fit a token budget. Parts are linked to their neighbours and listed in an
index file.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			maxCost := flags.maxCost
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("%w: %q is not a number", chunker.ErrInvalidBudget, args[1])
				}
				maxCost = n
			}
			opts, err := flags.options(maxCost)
			if err != nil {
				return err
			}
			log := flags.logger(cmd.ErrOrStderr())

			rep, err := splitFile(args[0], flags, opts, parserOpts, log)
			if err != nil {
				return err
			}
			newReport(cmd.OutOrStdout()).print(rep)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.out, "out", "o", "", "output directory (default: next to the input)")
	pf.StringVar(&flags.tokenizer, "tokenizer", cfg.Tokenizer, `cost model: "heuristic" or a tiktoken encoding`)
	pf.IntVar(&flags.maxCost, "max-tokens", cfg.DefaultMaxCost, "maximum tokens per part")
	pf.BoolVar(&flags.manifestSingle, "manifest-single", cfg.ManifestForSingle, "write navigation and an index even for one-part documents")
	pf.BoolVar(&flags.dryRun, "dry-run", false, "report the split without writing files")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log progress to stderr")
	root.Flags().StringVar(&flags.title, "title", "", "document title used for file names (default: input file name)")

	root.AddCommand(
		newBatchCommand(flags, parserOpts),
		newEstimateCommand(flags, parserOpts),
		newMCPCommand(version, flags, parserOpts),
		newVersionCommand(version),
	)
	return root
}

// Execute runs the command line with the process arguments.
func Execute(version string) error {
	return NewRootCommand(version).Execute()
}
