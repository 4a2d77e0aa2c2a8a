package cmd

import (
	"fmt"

	"github.com/grovetools/git-log-pretty/cli"
	"github.com/grovetools/git-log-pretty/display"
	"github.com/grovetools/git-log-pretty/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetInfo()
			if cli.GetOptions(cmd).JSONOutput {
				return display.WriteJSON(cmd.OutOrStdout(), info)
			}
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return nil
		},
	}
}
