package main

import (
	"os"

	"github.com/grovetools/git-log-pretty/cli"
	"github.com/grovetools/git-log-pretty/cmd"
	"github.com/grovetools/git-log-pretty/errors"
	"github.com/grovetools/git-log-pretty/tui"
)

func main() {
	tui.InitializeTUI()

	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if errors.GetCode(err) == "" {
			// Flag and argument errors from cobra.
			cli.PrintError(rootCmd, err)
		} else {
			verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
			cli.NewErrorHandler(verbose).Handle(err)
		}
		os.Exit(cli.ExitCode(err))
	}
}
