package cli

import (
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/mdsplit/internal/parser"
)

func newBatchCommand(flags *splitFlags, parserOpts parser.Options) *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "batch <file>...",
		Short: "Split many documents concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(flags.maxCost)
			if err != nil {
				return err
			}
			log := flags.logger(cmd.ErrOrStderr())

			// Titles always come from each file name in batch mode.
			perFile := *flags
			perFile.title = ""

			reports := make([]*fileReport, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(max(concurrency, 1))
			for i, path := range args {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					rep, err := splitFile(path, &perFile, opts, parserOpts, log)
					if err != nil {
						return err
					}
					reports[i] = rep
					return nil
				})
			}
			err = g.Wait()

			out := newReport(cmd.OutOrStdout())
			for _, rep := range reports {
				if rep != nil {
					out.print(rep)
				}
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", runtime.NumCPU(), "maximum files processed at once")
	return cmd
}
