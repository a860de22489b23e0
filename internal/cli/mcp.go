package cli

import (
	"github.com/spf13/cobra"

	"github.com/dgallion1/mdsplit/internal/mcp"
	"github.com/dgallion1/mdsplit/internal/parser"
)

func newMCPCommand(version string, flags *splitFlags, parserOpts parser.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the splitter as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(flags.maxCost)
			if err != nil {
				return err
			}
			// stdout carries the protocol.
			log := flags.logger(cmd.ErrOrStderr())
			return mcp.NewServer(version, opts, parserOpts, log).Serve(cmd.Context())
		},
	}
}
