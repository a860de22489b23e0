package cli

import (
	"github.com/spf13/cobra"

	"github.com/dgallion1/mdsplit/internal/parser"
)

func newEstimateCommand(flags *splitFlags, parserOpts parser.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "estimate <file>",
		Short: "Print the token cost of a document without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(flags.maxCost)
			if err != nil {
				return err
			}
			dry := *flags
			dry.dryRun = true

			rep, err := splitFile(args[0], &dry, opts, parserOpts, flags.logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			newReport(cmd.OutOrStdout()).printEstimate(args[0], rep)
			return nil
		},
	}
}
