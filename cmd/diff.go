package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/grovetools/git-log-pretty/display"
	"github.com/grovetools/git-log-pretty/pkg/profiling"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newDiffCmd(profiler *profiling.CobraProfiler) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff [base] [head]",
		Short: "Show the files that differ between two refs as a tree",
		Long: `Show every file whose content differs between the trees of base and head.
Base defaults to base_branch from config and head to HEAD.

Examples:
  git-log-pretty diff
  git-log-pretty diff develop
  git-log-pretty diff v1.2.0 v1.3.0 --json`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, profiler.Recorder())
			if err != nil {
				return err
			}

			base, head := s.cfg.BaseBranch, "HEAD"
			if len(args) > 0 {
				base = args[0]
			}
			if len(args) > 1 {
				head = args[1]
			}

			return s.present(cmd.Context(), fmt.Sprintf("git-log-pretty diff %s...%s", base, head), s.renderDiff(base, head))
		},
	}
	addViewFlags(cmd)
	return cmd
}

func (s *session) renderDiff(base, head string) renderFunc {
	return func(ctx context.Context, w io.Writer) error {
		baseHash, headHash, err := s.resolvePair(ctx, base, head)
		if err != nil {
			return err
		}

		stop := s.timings.Start("diff trees")
		files, err := s.repo.DiffFiles(ctx, baseHash, headHash)
		stop()
		if err != nil {
			return err
		}
		kept, excluded := s.filter.Apply(files)
		s.logger.WithFields(logrus.Fields{
			"base":     base,
			"head":     head,
			"files":    len(kept),
			"excluded": excluded,
		}).Debug("Collected diff")

		if s.opts.JSONOutput {
			if kept == nil {
				kept = []string{}
			}
			return display.WriteJSON(w, display.DiffReport{
				Base:     base,
				Head:     head,
				Files:    kept,
				Excluded: excluded,
			})
		}

		p := s.printer(w)
		if len(kept) == 0 {
			p.NoChanges()
			return nil
		}
		p.DiffHeader(len(kept), excluded, base, head)
		p.Tree(kept)
		fmt.Fprintln(w)
		return nil
	}
}
