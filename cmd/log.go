package cmd

import (
	"context"
	"io"
	"time"

	"github.com/grovetools/git-log-pretty/config"
	"github.com/grovetools/git-log-pretty/display"
	"github.com/grovetools/git-log-pretty/errors"
	"github.com/grovetools/git-log-pretty/git"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type logOptions struct {
	base  string
	head  string
	limit int
}

// logOptionsFrom merges the log flags over the loaded config. Flags only
// win when set explicitly so config and environment defaults still apply.
func logOptionsFrom(cmd *cobra.Command, cfg *config.Config) (logOptions, error) {
	opts := logOptions{
		base:  cfg.BaseBranch,
		limit: cfg.CommitLimit(),
	}
	opts.head, _ = cmd.Flags().GetString("head")

	if cmd.Flags().Changed("base") {
		opts.base, _ = cmd.Flags().GetString("base")
	}
	if cmd.Flags().Changed("limit") {
		opts.limit, _ = cmd.Flags().GetInt("limit")
	}

	if opts.base == "" || opts.head == "" {
		return opts, errors.New(errors.ErrCodeInvalidInput, "--base and --head must not be empty")
	}
	if opts.limit < 0 {
		return opts, errors.New(errors.ErrCodeInvalidInput, "--limit must be zero or positive").
			WithDetail("limit", opts.limit)
	}
	return opts, nil
}

// renderLog returns the log view for opts. Every render re-resolves the
// refs so --watch picks up moved branches.
func (s *session) renderLog(opts logOptions) renderFunc {
	return func(ctx context.Context, w io.Writer) error {
		baseHash, headHash, err := s.resolvePair(ctx, opts.base, opts.head)
		if err != nil {
			return err
		}

		var commits []*git.Commit
		if baseHash != headHash {
			stop := s.timings.Start("walk commits")
			commits, err = s.repo.Ahead(ctx, baseHash, headHash)
			stop()
			if err != nil {
				return err
			}
		}

		total := len(commits)
		if opts.limit > 0 && len(commits) > opts.limit {
			commits = commits[:opts.limit]
		}
		s.logger.WithFields(logrus.Fields{
			"base":  opts.base,
			"head":  opts.head,
			"total": total,
			"shown": len(commits),
		}).Debug("Collected commits")

		if s.opts.JSONOutput {
			return s.writeLogReport(ctx, w, opts, commits, total)
		}

		p := s.printer(w)
		if total == 0 {
			p.CaughtUp(opts.base)
			return nil
		}

		p.LogHeader(total, len(commits), opts.base)
		for _, c := range commits {
			files, err := s.commitFiles(ctx, c.Hash)
			if err != nil {
				return err
			}
			p.Commit(c, files)
		}
		return nil
	}
}

func (s *session) writeLogReport(ctx context.Context, w io.Writer, opts logOptions, commits []*git.Commit, total int) error {
	now := time.Now()
	report := display.LogReport{
		Base:    opts.base,
		Head:    opts.head,
		Total:   total,
		Shown:   len(commits),
		Commits: make([]display.CommitReport, 0, len(commits)),
	}
	for _, c := range commits {
		files, err := s.commitFiles(ctx, c.Hash)
		if err != nil {
			return err
		}
		report.Commits = append(report.Commits, display.NewCommitReport(c, files, s.pattern, now))
	}
	return display.WriteJSON(w, report)
}

// commitFiles lists the files a commit changed with excluded paths removed.
func (s *session) commitFiles(ctx context.Context, hash string) ([]string, error) {
	stop := s.timings.Start("changed files")
	files, err := s.repo.ChangedFiles(ctx, hash)
	stop()
	if err != nil {
		return nil, err
	}
	kept, excluded := s.filter.Apply(files)
	if excluded > 0 {
		s.logger.WithFields(logrus.Fields{"commit": hash, "excluded": excluded}).Debug("Excluded files")
	}
	return kept, nil
}

// resolvePair resolves base and head to commit hashes.
func (s *session) resolvePair(ctx context.Context, base, head string) (string, string, error) {
	defer s.timings.Start("resolve refs")()

	baseHash, err := s.repo.Resolve(ctx, base)
	if err != nil {
		return "", "", err
	}
	headHash, err := s.repo.Resolve(ctx, head)
	if err != nil {
		return "", "", err
	}
	return baseHash, headHash, nil
}
