// Package cmd holds the git-log-pretty commands.
package cmd

import (
	"fmt"
	"io"

	"github.com/grovetools/git-log-pretty/cli"
	"github.com/grovetools/git-log-pretty/config"
	"github.com/grovetools/git-log-pretty/pkg/profiling"
	"github.com/grovetools/git-log-pretty/tui/theme"
	"github.com/grovetools/git-log-pretty/version"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the git-log-pretty command tree. The root command
// itself shows the commits on --head that are not on --base.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand("git-log-pretty", "A pretty git log viewer with tree views")
	root.Long = `Show the commits on the current branch that are not on the base branch,
each with a tree of the files it touched.

Examples:
  git-log-pretty
  git-log-pretty --base develop -n 0
  git-log-pretty --watch --pager
  git-log-pretty diff main feature/login`
	root.Version = version.GetInfo().Short()
	root.Args = cobra.NoArgs

	profiler := profiling.NewCobraProfiler()
	profiler.AddFlags(root)
	root.PersistentPreRunE = profiler.PreRun
	root.PersistentPostRun = profiler.PostRun

	root.Flags().String("base", config.DefaultBaseBranch, "Base branch to compare against (defaults to base_branch from config)")
	root.Flags().String("head", "HEAD", "Ref whose commits are listed")
	root.Flags().IntP("limit", "n", config.DefaultLimit, "Maximum commits to show, 0 for all (defaults to limit from config)")
	addViewFlags(root)

	root.RunE = func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, profiler.Recorder())
		if err != nil {
			return err
		}

		opts, err := logOptionsFrom(cmd, s.cfg)
		if err != nil {
			return err
		}

		return s.present(cmd.Context(), "git-log-pretty "+opts.base+".."+opts.head, s.renderLog(opts))
	}

	root.AddCommand(newDiffCmd(profiler))
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	cli.ApplyStyledHelpRecursive(root)
	cli.SetStyledHelpWithExtras(root, configFilesHelp)

	return root
}

// addViewFlags registers the presentation flags shared by the log and diff views.
func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("watch", false, "Re-render when branches or HEAD change")
	cmd.Flags().Bool("pager", false, "Show output in a scrollable pager")
}

func configFilesHelp(w io.Writer, t *theme.Theme) {
	section := t.NewStyle().Italic(true).Foreground(t.Colors.Orange)
	fmt.Fprintln(w, "\n "+section.Render("CONFIG FILES"))
	fmt.Fprintf(w, "  %s  %s\n", "$XDG_CONFIG_HOME/git-log-pretty/config.yml", t.Muted.Render("global"))
	for _, name := range config.ProjectFileNames {
		fmt.Fprintf(w, "  %s  %s\n", name, t.Muted.Render("project, searched upward"))
	}
}
